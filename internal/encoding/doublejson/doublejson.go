// Package doublejson decodes API bodies that may be JSON encoded twice.
//
// The Hansard API answers some endpoints with a JSON string whose contents
// are the real JSON document. Unmarshal unwraps at most one such layer
// before decoding into the caller's value, so both single- and
// double-encoded bodies land in the same structs.
package doublejson

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Unmarshal decodes data into v, unwrapping one string layer when the body
// itself is a JSON-encoded string.
func Unmarshal(data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return fmt.Errorf("unwrap outer string: %w", err)
		}
		data = []byte(inner)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
