package domain

import (
	"encoding/json"
	"fmt"
)

// Candidate is one loosely typed question object decoded from model output.
// Nothing about its shape is trusted until the option-count filter has run.
type Candidate map[string]any

// Options returns the options field when it is a JSON array.
func (c Candidate) Options() ([]any, bool) {
	options, ok := c["options"].([]any)
	return options, ok
}

// Text returns field as a string. Strings are returned unchanged, missing or
// null fields as "", and any other JSON value in its compact encoding.
func (c Candidate) Text(field string) string {
	v, ok := c[field]
	if !ok || v == nil {
		return ""
	}
	return StringifyJSONValue(v)
}

// StringifyJSONValue renders a decoded JSON value as display text.
func StringifyJSONValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return fmt.Sprintf("%t", val)
	case nil:
		return "null"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
