package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/roach88/hlatime/internal/factory"
	"github.com/roach88/hlatime/internal/ltime"
	"github.com/roach88/hlatime/internal/store"
	"github.com/roach88/hlatime/internal/wire"
)

// Harness executes the steps of one scenario.
type Harness struct {
	factory   *factory.Factory
	journal   *store.Journal
	sessionID string
	logger    *slog.Logger
}

// Run executes a scenario with logging discarded.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, nil)
}

// RunContext executes a scenario and returns the result.
//
// Each run uses a fresh in-memory journal, so scenarios are isolated and
// their traces deterministic. The returned error reports a scenario that
// could not be executed at all; failed expectations and assertions are
// reported in Result.Errors.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Scenarios built in code skip ParseScenario; step arity must hold before execute.
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	fac, err := scenario.Federation.Factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create factory: %w", err)
	}

	j, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}
	defer j.Close()

	sessionID := scenario.SessionID
	if sessionID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate session id: %w", err)
		}
		sessionID = id.String()
	}

	_, err = j.BeginSession(ctx, store.Session{
		ID:      sessionID,
		Name:    scenario.Federation.Name,
		Domain:  fac.Domain().String(),
		Epsilon: fac.Tolerance(),
	})
	if err != nil {
		return nil, err
	}

	h := &Harness{
		factory:   fac,
		journal:   j,
		sessionID: sessionID,
		logger:    logger.With("scenario", scenario.Name, "session", sessionID),
	}

	result := NewResult(sessionID)
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	actx := &AssertionContext{Journal: j, SessionID: sessionID, Ctx: ctx}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	h.logger.Debug("scenario finished", "pass", result.Pass, "steps", len(result.Trace))
	return result, nil
}

// executeSteps runs every step, records it in the journal and checks its
// expectation. Steps keep running after a mismatch so that the trace is
// complete.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		value, err := h.execute(step)
		code := ltime.CodeOf(err)
		if err != nil && code == "" {
			return fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}

		entry, err := h.journal.Record(ctx, store.Entry{
			SessionID: h.sessionID,
			Op:        step.Op,
			Args:      step.Args,
			Result:    value,
			ErrorCode: string(code),
		})
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}

		event := TraceEvent{
			Seq:    entry.Seq,
			Op:     entry.Op,
			Args:   entry.Args,
			Result: entry.Result,
			Error:  entry.ErrorCode,
		}
		result.AddTrace(event)

		if msg := checkExpect(i, step, event); msg != "" {
			result.AddError(msg)
		}

		h.logger.Debug("step executed",
			"step", i,
			"seq", event.Seq,
			"op", step.Op,
			"result", event.Result,
			"error", event.Error,
		)
	}
	return nil
}

func checkExpect(index int, step Step, event TraceEvent) string {
	e := step.Expect
	switch {
	case e == nil && event.Failed():
		return fmt.Sprintf("steps[%d] %s: unexpected error %s", index, step.Op, event.Error)
	case e == nil:
		return ""
	case e.Error != "" && event.Error != e.Error:
		return fmt.Sprintf("steps[%d] %s: expected error %s, got %s", index, step.Op, e.Error, describe(event))
	case e.Value != "" && (event.Failed() || event.Result != e.Value):
		return fmt.Sprintf("steps[%d] %s: expected %q, got %s", index, step.Op, e.Value, describe(event))
	}
	return ""
}

func describe(event TraceEvent) string {
	if event.Failed() {
		return "error " + event.Error
	}
	return strconv.Quote(event.Result)
}

// execute runs one step and formats its result.
func (h *Harness) execute(step Step) (string, error) {
	f := h.factory
	args := step.Args

	switch step.Op {
	case OpMakeTime:
		t, err := f.ParseTime(args[0])
		return format(t, err)

	case OpMakeInterval:
		i, err := f.ParseInterval(args[0])
		return format(i, err)

	case OpCompare:
		a, b, err := h.times(args[0], args[1])
		if err != nil {
			return "", err
		}
		ord, err := f.Compare(a, b)
		return format(ord, err)

	case OpCompareIntervals:
		a, b, err := h.intervals(args[0], args[1])
		if err != nil {
			return "", err
		}
		ord, err := f.CompareIntervals(a, b)
		return format(ord, err)

	case OpAdd, OpSubtract:
		t, err := f.ParseTime(args[0])
		if err != nil {
			return "", err
		}
		i, err := f.ParseInterval(args[1])
		if err != nil {
			return "", err
		}
		if step.Op == OpAdd {
			return format(f.Add(t, i))
		}
		return format(f.Subtract(t, i))

	case OpDifference:
		a, b, err := h.times(args[0], args[1])
		if err != nil {
			return "", err
		}
		return format(f.Difference(a, b))

	case OpAddIntervals:
		a, b, err := h.intervals(args[0], args[1])
		if err != nil {
			return "", err
		}
		return format(f.AddIntervals(a, b))

	case OpSubtractIntervals:
		a, b, err := h.intervals(args[0], args[1])
		if err != nil {
			return "", err
		}
		return format(f.SubtractIntervals(a, b))

	case OpIsZero:
		i, err := f.ParseInterval(args[0])
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(f.IsZero(i)), nil

	case OpIsInitial:
		t, err := f.ParseTime(args[0])
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(f.IsInitial(t)), nil

	case OpEncode:
		kind, err := ltime.ParseKind(args[0])
		if err != nil {
			return "", err
		}
		v, err := f.FromLiteral(f.Domain(), kind, args[1])
		if err != nil {
			return "", err
		}
		b, err := f.Encode(v)
		if err != nil {
			return "", err
		}
		return wire.FormatHex(b), nil

	case OpDecodeTime, OpDecodeInterval:
		b, err := wire.ParseHex(args[0])
		if err != nil {
			return "", err
		}
		kind := ltime.KindTime
		if step.Op == OpDecodeInterval {
			kind = ltime.KindInterval
		}
		return format(f.FromWire(kind, b))

	case OpValidateAdvance:
		current, requested, err := h.times(args[0], args[1])
		if err != nil {
			return "", err
		}
		if err := f.ValidateAdvance(current, requested); err != nil {
			return "", err
		}
		return "ok", nil

	default:
		return "", fmt.Errorf("unknown op %q", step.Op)
	}
}

func (h *Harness) times(a, b string) (ltime.Time, ltime.Time, error) {
	ta, err := h.factory.ParseTime(a)
	if err != nil {
		return ltime.Time{}, ltime.Time{}, err
	}
	tb, err := h.factory.ParseTime(b)
	if err != nil {
		return ltime.Time{}, ltime.Time{}, err
	}
	return ta, tb, nil
}

func (h *Harness) intervals(a, b string) (ltime.Interval, ltime.Interval, error) {
	ia, err := h.factory.ParseInterval(a)
	if err != nil {
		return ltime.Interval{}, ltime.Interval{}, err
	}
	ib, err := h.factory.ParseInterval(b)
	if err != nil {
		return ltime.Interval{}, ltime.Interval{}, err
	}
	return ia, ib, nil
}

func format(v fmt.Stringer, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
