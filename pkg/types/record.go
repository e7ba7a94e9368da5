package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a schema-free resource representation: a mapping from field
// names to decoded JSON values that preserves the key order of its source
// document. Values are one of string, json.Number, bool, nil, *Record
// (nested mapping), or []any (sequence).
//
// Preserving insertion order matters in two places: report items must
// round-trip resource documents verbatim, and the changelog walks mapping
// keys in source order.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty record
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Get returns the value stored under key and whether the key is present
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Set stores a value. First insertion of a key fixes its position; setting
// an existing key overwrites the value in place.
func (r *Record) Set(key string, value any) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Keys returns the field names in insertion order. The returned slice is
// shared with the record and must not be modified.
func (r *Record) Keys() []string {
	return r.keys
}

// Len returns the number of fields
func (r *Record) Len() int {
	return len(r.keys)
}

// UnmarshalJSON decodes a JSON object, preserving key order and keeping
// numbers as json.Number so they re-encode verbatim.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object, got %v", tok)
	}

	if r.values == nil {
		r.values = make(map[string]any)
	}
	return decodeObjectInto(dec, r)
}

// MarshalJSON encodes the record with its fields in insertion order
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyData, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyData)
		buf.WriteByte(':')
		valueData, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, fmt.Errorf("failed to encode field %q: %w", key, err)
		}
		buf.Write(valueData)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeObjectInto consumes object members up to and including the closing
// brace. The opening brace has already been consumed.
func decodeObjectInto(dec *json.Decoder, r *Record) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return err
		}
		r.Set(key, value)
	}
	_, err := dec.Token() // closing '}'
	return err
}

// decodeValue decodes the next value from the token stream
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool, or nil
		return tok, nil
	}

	switch delim {
	case '{':
		rec := NewRecord()
		if err := decodeObjectInto(dec, rec); err != nil {
			return nil, err
		}
		return rec, nil
	case '[':
		seq := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return nil, err
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}
