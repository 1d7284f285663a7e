package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"sorted keys", map[string]any{"b": 1, "a": int64(2)}, `{"a":2,"b":1}`},
		{"no html escape", "<a&b>", `"<a&b>"`},
		{"string slice", []string{"x", "y"}, `["x","y"]`},
		{"empty slice", []string{}, `[]`},
		{"nested", map[string]any{"z": []any{true, "q"}}, `{"z":[true,"q"]}`},
		{"nfc", "e\u0301", "\"\u00e9\""},
		{"utf16 order", map[string]any{"\U0001F600": 1, "\uFFFD": 2}, "{\"\U0001F600\":1,\"\uFFFD\":2}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := marshalCanonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalCanonical_Rejects(t *testing.T) {
	_, err := marshalCanonical(nil)
	assert.ErrorContains(t, err, "null is forbidden")

	_, err = marshalCanonical(map[string]any{"f": 1.5})
	assert.ErrorContains(t, err, "unsupported type")
}

func TestTraceSnapshot_MarshalCanonical(t *testing.T) {
	snap := &TraceSnapshot{
		ScenarioName: "s",
		Domain:       "integer64",
		Trace: []TraceEvent{
			{Seq: 1, Op: "add", Args: []string{"1", "2"}, Result: "3"},
			{Seq: 2, Op: "make_time", Args: []string{"x"}, Error: "PARSE"},
		},
	}

	got, err := snap.MarshalCanonical()
	require.NoError(t, err)
	assert.Equal(t,
		`{"domain":"integer64","scenario_name":"s","trace":[`+
			`{"args":["1","2"],"op":"add","result":"3","seq":1},`+
			`{"args":["x"],"error":"PARSE","op":"make_time","seq":2}]}`,
		string(got))
}
