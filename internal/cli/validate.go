package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/hlatime/internal/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	File   string                   `json:"file"`
	Errors []config.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a federation config file",
		Long: `Load a federation config file (.cue, .yaml, .yml or .json) and report
every invalid setting: name, time domain, epsilon and lookahead.

Exit codes:
  0 - Config is valid
  1 - Config has errors
  2 - Config could not be read`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	logger := opts.Logger(cmd.ErrOrStderr())

	if _, err := os.Stat(path); err != nil {
		if outErr := out.Error(ErrCodeNotFound, fmt.Sprintf("config file not found: %s", path), nil); outErr != nil {
			return outErr
		}
		return reportedExitError(ExitCommandError, "config file not found", err)
	}

	if err := config.LoadEnvFiles(opts.EnvFiles...); err != nil {
		return out.Fail(ExitCommandError, err)
	}

	fed, err := config.Load(path)
	if err != nil {
		var cerr *config.CompileError
		if !errors.As(err, &cerr) {
			if outErr := out.Error(ErrCodeConfig, err.Error(), nil); outErr != nil {
				return outErr
			}
			return reportedExitError(ExitCommandError, "failed to load config", err)
		}
		// Schema violations are reported like any other invalid setting.
		return outputValidationErrors(out, path, []config.ValidationError{{
			Field:   cerr.Field,
			Message: cerr.Error(),
			Code:    ErrCodeInvalid,
		}})
	}

	logger.Debug("config loaded", "file", path, "name", fed.Name, "domain", fed.TimeDomain)

	if errs := config.Validate(fed); len(errs) > 0 {
		return outputValidationErrors(out, path, errs)
	}

	return out.Success(fmt.Sprintf("✓ %s is valid", path), ValidationResult{Valid: true, File: path})
}

func outputValidationErrors(out *OutputFormatter, path string, errs []config.ValidationError) error {
	if out.Format == "json" {
		if err := out.encode(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, File: path, Errors: errs},
			Error: &CLIError{
				Code:    ErrCodeInvalid,
				Message: fmt.Sprintf("%d validation error(s)", len(errs)),
			},
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out.Writer, "✗ %s\n", path)
		for _, e := range errs {
			fmt.Fprintf(out.Writer, "  %s\n", e.Error())
		}
	}
	return reportedExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(errs)), nil)
}
