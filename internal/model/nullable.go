package model

import "encoding/json"

// NullableString is an optional JSON string that tells an omitted field apart
// from an explicit null. Set is false when the field was absent; Value is nil
// when it was null.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only called when the field is present, including for null.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// clearable returns the update value for a clearable column: nil leaves it
// unchanged, "" clears it to NULL.
func (n NullableString) clearable() *string {
	if !n.Set {
		return nil
	}
	if n.Value == nil {
		empty := ""
		return &empty
	}
	return n.Value
}
