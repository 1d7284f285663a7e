package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/hlatime/internal/store"
)

// AssertionContext gives assertions access to the session journal.
type AssertionContext struct {
	Journal   *store.Journal
	SessionID string
	Ctx       context.Context
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		outcome := event.Result
		if event.Failed() {
			outcome = "error " + event.Error
		}
		fmt.Fprintf(&buf, "  [%d] %s %v -> %s\n", event.Seq, event.Op, event.Args, outcome)
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion and returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion, actx *AssertionContext) error {
	var (
		got      int
		err      error
		expected string
	)

	switch a.Type {
	case AssertTraceCount:
		got, err = actx.Journal.CountByOp(actx.Ctx, actx.SessionID, a.Op)
		expected = fmt.Sprintf("%d executions of %s", a.Count, orAll(a.Op, "any op"))
	case AssertErrorCount:
		got, err = actx.Journal.CountByError(actx.Ctx, actx.SessionID, a.Code)
		expected = fmt.Sprintf("%d failures with %s", a.Count, orAll(a.Code, "any code"))
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}

	if err != nil {
		return err
	}
	if got != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: expected,
			Actual:   fmt.Sprintf("%d", got),
			Trace:    result.Trace,
		}
	}
	return nil
}

func orAll(s, all string) string {
	if s == "" {
		return all
	}
	return s
}
