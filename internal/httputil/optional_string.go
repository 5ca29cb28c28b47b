package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent JSON field from an explicit null,
// which a plain *string cannot. PATCH bodies need all three states: leave the
// column alone (field absent), clear it (null), or set it (string value).
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only invoked when the field appears in the payload, so
// Present flips to true here and stays false for absent fields.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
