package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/hlatime/internal/config"
	"github.com/roach88/hlatime/internal/ltime"
)

// Scenario is a sequence of time operations run against one federation.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Federation configures the factory. Missing fields take config defaults.
	Federation config.Federation `yaml:"federation"`

	// SessionID fixes the journal session id. Generated when empty.
	SessionID string `yaml:"session_id,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions are checked against the journal after all steps ran.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one factory operation.
type Step struct {
	// Op names the operation, e.g. "add" or "decode_time".
	Op string `yaml:"op"`

	// Args are literals in the federation's domain (hex for decode steps).
	Args []string `yaml:"args"`

	// Expect is the expected outcome. Nil means the step must succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the expected outcome of a step. Exactly one of Value
// and Error is set.
type Expect struct {
	// Value is the expected formatted result.
	Value string `yaml:"value,omitempty"`

	// Error is the expected error code, e.g. "OVERFLOW".
	Error string `yaml:"error,omitempty"`
}

// Assertion checks counts in the session journal.
type Assertion struct {
	// Type is "trace_count" or "error_count".
	Type string `yaml:"type"`

	// Op filters trace_count to one operation. Empty counts all steps.
	Op string `yaml:"op,omitempty"`

	// Code filters error_count to one error code. Empty counts all failures.
	Code string `yaml:"code,omitempty"`

	// Count is the expected number of matching journal entries.
	Count int `yaml:"count"`
}

// Assertion type constants.
const (
	AssertTraceCount = "trace_count"
	AssertErrorCount = "error_count"
)

// Step operation names.
const (
	OpMakeTime          = "make_time"
	OpMakeInterval      = "make_interval"
	OpCompare           = "compare"
	OpCompareIntervals  = "compare_intervals"
	OpAdd               = "add"
	OpSubtract          = "subtract"
	OpDifference        = "difference"
	OpAddIntervals      = "add_intervals"
	OpSubtractIntervals = "subtract_intervals"
	OpIsZero            = "is_zero"
	OpIsInitial         = "is_initial"
	OpEncode            = "encode"
	OpDecodeTime        = "decode_time"
	OpDecodeInterval    = "decode_interval"
	OpValidateAdvance   = "validate_advance"
)

// opArity is the number of args each operation takes.
var opArity = map[string]int{
	OpMakeTime:          1,
	OpMakeInterval:      1,
	OpCompare:           2,
	OpCompareIntervals:  2,
	OpAdd:               2,
	OpSubtract:          2,
	OpDifference:        2,
	OpAddIntervals:      2,
	OpSubtractIntervals: 2,
	OpIsZero:            1,
	OpIsInitial:         1,
	OpEncode:            2,
	OpDecodeTime:        1,
	OpDecodeInterval:    1,
	OpValidateAdvance:   2,
}

var knownErrorCodes = map[string]bool{
	string(ltime.CodeDomainMismatch):    true,
	string(ltime.CodeInvalidInterval):   true,
	string(ltime.CodeOverflow):          true,
	string(ltime.CodeParse):             true,
	string(ltime.CodeMalformedEncoding): true,
	string(ltime.CodeInvalidTime):       true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	scenario := Scenario{Federation: config.Default()}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Federation.Name == "" {
		s.Federation.Name = s.Name
	}
	if errs := config.Validate(s.Federation); len(errs) > 0 {
		return fmt.Errorf("federation: %w", errs[0])
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, step Step) error {
	if step.Op == "" {
		return fmt.Errorf("steps[%d]: op is required", index)
	}

	arity, ok := opArity[step.Op]
	if !ok {
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}
	if len(step.Args) != arity {
		return fmt.Errorf("steps[%d]: %s takes %d args, got %d", index, step.Op, arity, len(step.Args))
	}

	if step.Op == OpEncode {
		if _, err := ltime.ParseKind(step.Args[0]); err != nil {
			return fmt.Errorf("steps[%d]: %w", index, err)
		}
	}

	if e := step.Expect; e != nil {
		if (e.Value == "") == (e.Error == "") {
			return fmt.Errorf("steps[%d].expect: exactly one of value or error is required", index)
		}
		if e.Error != "" && !knownErrorCodes[e.Error] {
			return fmt.Errorf("steps[%d].expect: unknown error code %q", index, e.Error)
		}
	}

	return nil
}

func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertTraceCount:
		if a.Code != "" {
			return fmt.Errorf("assertions[%d]: code is not allowed for trace_count", index)
		}
		if a.Op != "" {
			if _, ok := opArity[a.Op]; !ok {
				return fmt.Errorf("assertions[%d]: unknown op %q", index, a.Op)
			}
		}
	case AssertErrorCount:
		if a.Op != "" {
			return fmt.Errorf("assertions[%d]: op is not allowed for error_count", index)
		}
		if a.Code != "" && !knownErrorCodes[a.Code] {
			return fmt.Errorf("assertions[%d]: unknown error code %q", index, a.Code)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if a.Count < 0 {
		return fmt.Errorf("assertions[%d]: count must be non-negative", index)
	}
	return nil
}
