package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one extracted candidate: a field-to-value mapping that remembers the order in
// which its keys were first set. Values are always strings; a missing field reads as "".
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord builds a Record from alternating key/value pairs.
func NewRecord(pairs ...string) Record {
	var r Record
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

// Set assigns a value, appending the key to the order if it is new.
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key, or "" when the key is absent.
func (r Record) Get(key string) string {
	return r.values[key]
}

// Has reports whether key was set.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r Record) Len() int {
	return len(r.keys)
}

// Project returns the values of r laid out along header: extra keys are dropped and
// missing keys become "".
func (r Record) Project(header []string) []string {
	row := make([]string, len(header))
	for i, h := range header {
		row[i] = r.values[h]
	}
	return row
}

// Conform returns a copy of r holding exactly the given columns, in column order.
func (r Record) Conform(cols ColumnSpec) Record {
	var out Record
	for _, c := range cols {
		out.Set(c, r.values[c])
	}
	return out
}

// Arrange returns a copy of r with the given columns first, in column order, followed by
// any other keys in their original order. Missing columns read as "". No key is dropped.
func (r Record) Arrange(cols ColumnSpec) Record {
	out := r.Conform(cols)
	for _, k := range r.keys {
		if !out.Has(k) {
			out.Set(k, r.values[k])
		}
	}
	return out
}

// MarshalJSON writes the record as a JSON object with keys in insertion order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat JSON object, keeping key order. Scalars are rendered as
// strings and null becomes "". Nested objects or arrays are rejected.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object")
	}

	*r = Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record key must be a string")
		}

		tok, err = dec.Token()
		if err != nil {
			return err
		}
		value, err := scalarString(tok)
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		r.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func scalarString(tok json.Token) (string, error) {
	switch v := tok.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case json.Delim:
		return "", fmt.Errorf("nested %s values are not supported", v)
	default:
		return fmt.Sprint(v), nil
	}
}
