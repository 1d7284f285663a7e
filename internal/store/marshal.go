package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalArgs converts operand literals to a JSON array for storage.
// HTML escaping is disabled so stored text matches the input byte for byte.
func marshalArgs(args []string) (string, error) {
	if args == nil {
		args = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(args); err != nil {
		return "", fmt.Errorf("marshal args: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalArgs parses a stored JSON array back into operand literals.
func unmarshalArgs(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return []string{}, nil
	}
	var args []string
	if err := json.Unmarshal([]byte(data), &args); err != nil {
		return nil, fmt.Errorf("unmarshal args: %w", err)
	}
	return args, nil
}
