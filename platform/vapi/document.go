package vapi

import "encoding/json"

// Document is an opaque structured upstream object. Fields the gateway does
// not address are carried as raw JSON so a read-modify-write resubmits them
// byte-for-byte instead of reconstructing the object from a partial literal.
type Document map[string]json.RawMessage

// Set replaces exactly one field of the document.
func (d Document) Set(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	d[key] = encoded
	return nil
}

// Get decodes one field of the document into out. Returns false if the
// field is absent.
func (d Document) Get(key string, out any) (bool, error) {
	raw, ok := d[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}
