package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/hlatime/internal/config"
)

func mustParse(t *testing.T, src string) *Scenario {
	t.Helper()
	s, err := ParseScenario([]byte(src))
	require.NoError(t, err)
	return s
}

func TestRun_Passing(t *testing.T) {
	s := mustParse(t, `
name: pass
description: d
federation: { time_domain: integer64 }
steps:
  - op: add
    args: ["100", "50"]
    expect: { value: "150" }
  - op: difference
    args: ["3", "10"]
    expect: { error: INVALID_INTERVAL }
assertions:
  - type: trace_count
    count: 2
  - type: error_count
    code: INVALID_INTERVAL
    count: 1
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, TraceEvent{Seq: 1, Op: "add", Args: []string{"100", "50"}, Result: "150"}, result.Trace[0])
	assert.Equal(t, TraceEvent{Seq: 2, Op: "difference", Args: []string{"3", "10"}, Error: "INVALID_INTERVAL"}, result.Trace[1])
}

func TestRun_GeneratesSessionID(t *testing.T) {
	s := mustParse(t, minimalScenario)

	a, err := Run(s)
	require.NoError(t, err)
	b, err := Run(s)
	require.NoError(t, err)

	id, err := uuid.Parse(a.SessionID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.NotEqual(t, a.SessionID, b.SessionID)
	assert.Equal(t, a.Trace, b.Trace, "traces must be deterministic")
}

func TestRun_FixedSessionID(t *testing.T) {
	s := mustParse(t, minimalScenario+"session_id: fixed\n")
	result, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, "fixed", result.SessionID)
}

func TestRun_ExpectationFailures(t *testing.T) {
	s := mustParse(t, `
name: mismatches
description: d
federation: { time_domain: integer64 }
steps:
  - op: add
    args: ["1", "1"]
    expect: { value: "3" }
  - op: add
    args: ["1", "1"]
    expect: { error: OVERFLOW }
  - op: make_interval
    args: ["-1"]
  - op: make_interval
    args: ["-1"]
    expect: { value: "1" }
  - op: make_time
    args: ["7"]
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], `steps[0] add: expected "3", got "2"`)
	assert.Contains(t, result.Errors[1], `steps[1] add: expected error OVERFLOW, got "2"`)
	assert.Contains(t, result.Errors[2], "steps[2] make_interval: unexpected error INVALID_INTERVAL")
	assert.Contains(t, result.Errors[3], `steps[3] make_interval: expected "1", got error INVALID_INTERVAL`)

	// Every step still runs and is traced.
	assert.Len(t, result.Trace, 5)
}

func TestRun_AssertionFailures(t *testing.T) {
	s := mustParse(t, minimalScenario+`
assertions:
  - type: trace_count
    op: make_time
    count: 2
  - type: error_count
    count: 1
  - type: trace_count
    op: make_time
    count: 1
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.True(t, strings.HasPrefix(result.Errors[0], "assertions[0]: Assertion failed: trace_count"))
	assert.Contains(t, result.Errors[0], "Expected: 2 executions of make_time")
	assert.Contains(t, result.Errors[0], "Actual: 1")
	assert.Contains(t, result.Errors[0], "[1] make_time [1] -> 1")
	assert.Contains(t, result.Errors[1], "Expected: 1 failures with any code")
}

func TestRun_AllOperations(t *testing.T) {
	s := mustParse(t, `
name: all_ops
description: every op once
federation: { time_domain: integer64 }
steps:
  - { op: make_time, args: ["5"], expect: { value: "5" } }
  - { op: make_interval, args: ["2"], expect: { value: "2" } }
  - { op: compare, args: ["5", "5"], expect: { value: equal } }
  - { op: compare_intervals, args: ["1", "2"], expect: { value: less } }
  - { op: add, args: ["5", "2"], expect: { value: "7" } }
  - { op: subtract, args: ["5", "2"], expect: { value: "3" } }
  - { op: difference, args: ["5", "2"], expect: { value: "3" } }
  - { op: add_intervals, args: ["1", "2"], expect: { value: "3" } }
  - { op: subtract_intervals, args: ["1", "2"], expect: { error: INVALID_INTERVAL } }
  - { op: is_zero, args: ["0"], expect: { value: "true" } }
  - { op: is_initial, args: ["1"], expect: { value: "false" } }
  - { op: encode, args: ["lookahead", "255"], expect: { value: "0200000000000000ff" } }
  - { op: decode_time, args: ["0x0200000000000000ff"], expect: { value: "255" } }
  - { op: decode_interval, args: ["0200000000000000ff"], expect: { value: "255" } }
  - { op: validate_advance, args: ["5", "6"], expect: { value: ok } }
  - { op: compare, args: ["x", "1"], expect: { error: PARSE } }
  - { op: subtract, args: ["1", "x"], expect: { error: PARSE } }
assertions:
  - { type: trace_count, count: 17 }
  - { type: error_count, code: PARSE, count: 2 }
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Len(t, opArity, 15, "every op is exercised above")
}

func TestRunContext_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := RunContext(context.Background(), mustParse(t, minimalScenario), logger)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "step executed")
	assert.Contains(t, out, "op=make_time")
	assert.Contains(t, out, "scenario=minimal")
	assert.Contains(t, out, "scenario finished")
}

func TestRun_InvalidFederation(t *testing.T) {
	s := mustParse(t, minimalScenario)
	s.Federation.Epsilon = -1

	_, err := Run(s)
	assert.ErrorContains(t, err, "invalid scenario: federation: [E122] epsilon")
}

func TestRun_RejectsScenarioBuiltInCode(t *testing.T) {
	tests := []struct {
		name   string
		steps  []Step
		errMsg string
	}{
		{"short args", []Step{{Op: OpAdd, Args: []string{"1"}}}, "steps[0]"},
		{"extra args", []Step{{Op: OpMakeTime, Args: []string{"1", "2"}}}, "steps[0]"},
		{"unknown op", []Step{{Op: "warp", Args: []string{"1"}}}, "steps[0]"},
		{"no steps", nil, "steps list is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scenario{Name: "in_code", Description: "d", Federation: config.Default(), Steps: tt.steps}

			var (
				result *Result
				err    error
			)
			require.NotPanics(t, func() { result, err = Run(s) })
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorContains(t, err, "invalid scenario")
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestGoldenFixtures(t *testing.T) {
	for _, name := range []string{"integer_advance", "float_lookahead", "wire_rejections"} {
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("testdata", "golden", name+".golden"))
			require.NoError(t, err)
			require.NotEmpty(t, data)

			var snap struct {
				ScenarioName string           `json:"scenario_name"`
				Trace        []map[string]any `json:"trace"`
			}
			require.NoError(t, json.Unmarshal(data, &snap))
			assert.Equal(t, name, snap.ScenarioName)
			assert.NotEmpty(t, snap.Trace)
		})
	}
}

func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"integer_advance", "float_lookahead", "wire_rejections"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}
