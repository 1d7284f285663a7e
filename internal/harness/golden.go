package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures the trace of a scenario execution for golden
// comparison. The session id is included only when the scenario fixes it.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Domain       string       `json:"domain"`
	SessionID    string       `json:"session_id,omitempty"`
	Trace        []TraceEvent `json:"trace"`
}

// Snapshot builds the golden snapshot of a result.
func Snapshot(scenario *Scenario, result *Result) (*TraceSnapshot, error) {
	d, err := scenario.Federation.Domain()
	if err != nil {
		return nil, err
	}
	return &TraceSnapshot{
		ScenarioName: scenario.Name,
		Domain:       d.String(),
		SessionID:    scenario.SessionID,
		Trace:        result.Trace,
	}, nil
}

// toCanonicalMap converts the snapshot to plain values for canonical JSON.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	trace := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		m := map[string]any{
			"seq":  event.Seq,
			"op":   event.Op,
			"args": event.Args,
		}
		if event.Result != "" {
			m["result"] = event.Result
		}
		if event.Error != "" {
			m["error"] = event.Error
		}
		trace[i] = m
	}

	result := map[string]any{
		"scenario_name": s.ScenarioName,
		"domain":        s.Domain,
		"trace":         trace,
	}
	if s.SessionID != "" {
		result["session_id"] = s.SessionID
	}
	return result
}

// MarshalCanonical returns the snapshot as canonical JSON.
func (s *TraceSnapshot) MarshalCanonical() ([]byte, error) {
	return marshalCanonical(s.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the trace against a golden
// file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}
	traceJSON, err := snapshot.MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return nil
}
