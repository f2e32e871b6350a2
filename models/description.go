package models

import "encoding/json"

// Flatten extracts the plain text of a rich-text description. Invalid JSON
// flattens to the empty string.
func Flatten(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return FlattenValue(v)
}

// FlattenValue extracts the plain text of a decoded rich-text value:
// strings are kept, arrays are concatenated, objects contribute their
// "text" followed by their "extra". Everything else is dropped.
//
// Nodes are visited with an explicit stack, so depth is only bounded by
// what the JSON decoder accepted.
func FlattenValue(v interface{}) string {
	var (
		out   []byte
		stack = []interface{}{v}
	)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node := top.(type) {
		case string:
			out = append(out, node...)
		case []interface{}:
			for i := len(node) - 1; i >= 0; i-- {
				stack = append(stack, node[i])
			}
		case map[string]interface{}:
			if extra, ok := node["extra"]; ok {
				stack = append(stack, extra)
			}
			if text, ok := node["text"]; ok {
				stack = append(stack, text)
			}
		}
	}
	return string(out)
}
