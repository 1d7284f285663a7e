package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaSource string

// CompileError reports a CUE file that does not satisfy the schema.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadCUE reads federation settings from a CUE file.
func LoadCUE(path string) (Federation, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Federation{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return CompileCUE(src, path)
}

// CompileCUE unifies src with the #Federation schema and decodes the result.
// The settings are read from a top-level "federation" field when present,
// otherwise from the file root.
func CompileCUE(src []byte, filename string) (Federation, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Federation{}, formatCUEError(err)
	}

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return Federation{}, formatCUEError(err)
	}
	if fed := v.LookupPath(cue.ParsePath("federation")); fed.Exists() {
		v = fed
	}

	v = schema.LookupPath(cue.ParsePath("#Federation")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Federation{}, formatCUEError(err)
	}

	var f Federation
	if err := v.Decode(&f); err != nil {
		return Federation{}, formatCUEError(err)
	}
	return f, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
