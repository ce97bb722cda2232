package ninox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Field is a single name/value pair.
type Field struct {
	Name  string
	Value any
}

// Fields is an insertion-ordered mapping from field name to value.
// The zero value is an empty, usable mapping.
//
// JSON numbers are decoded as json.Number so that a record read from the
// backend encodes back to the same values.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields returns a mapping holding pairs in the given order.
// A repeated name keeps its first position and its last value.
func NewFields(pairs ...Field) Fields {
	var f Fields
	for _, p := range pairs {
		f.put(p.Name, p.Value)
	}
	return f
}

// FieldsOf converts a plain map, ordering keys lexically.
func FieldsOf(m map[string]any) Fields {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var f Fields
	for _, k := range keys {
		f.put(k, m[k])
	}
	return f
}

// Set stores value under name, appending name if it is new. Copies of f
// taken before the call are not affected.
func (f *Fields) Set(name string, value any) {
	f.detach()
	f.put(name, value)
}

// put stores value without detaching; only for Fields built locally.
func (f *Fields) put(name string, value any) {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	if _, ok := f.values[name]; !ok {
		f.keys = append(f.keys, name)
	}
	f.values[name] = value
}

// detach gives f its own keys and values so that mutations do not leak into
// copies sharing them.
func (f *Fields) detach() {
	keys := make([]string, len(f.keys), len(f.keys)+1)
	copy(keys, f.keys)
	values := make(map[string]any, len(f.values)+1)
	for k, v := range f.values {
		values[k] = v
	}
	f.keys, f.values = keys, values
}

// Get returns the value stored under name.
func (f Fields) Get(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Has reports whether name is present.
func (f Fields) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Delete removes name. Copies of f taken before the call are not affected.
func (f *Fields) Delete(name string) {
	if _, ok := f.values[name]; !ok {
		return
	}
	f.detach()
	delete(f.values, name)
	for i, k := range f.keys {
		if k == name {
			f.keys = append(f.keys[:i:i], f.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of fields.
func (f Fields) Len() int {
	return len(f.keys)
}

// Keys returns the field names in order.
func (f Fields) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Pairs returns the fields in order.
func (f Fields) Pairs() []Field {
	out := make([]Field, 0, len(f.keys))
	for _, k := range f.keys {
		out = append(out, Field{Name: k, Value: f.values[k]})
	}
	return out
}

// Map returns an unordered copy.
func (f Fields) Map() map[string]any {
	m := make(map[string]any, len(f.keys))
	for _, k := range f.keys {
		m[k] = f.values[k]
	}
	return m
}

// MarshalJSON encodes the fields as a JSON object in insertion order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order.
func (f *Fields) UnmarshalJSON(data []byte) error {
	*f = Fields{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("fields: expected key, got %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		f.put(key, v)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// ProjectInclude returns a new mapping holding only the names in keys whose
// value is present and truthy, ordered as in keys.
func ProjectInclude(fields Fields, keys []string) Fields {
	var out Fields
	for _, k := range keys {
		if v, ok := fields.values[k]; ok && Truthy(v) {
			out.put(k, v)
		}
	}
	return out
}

// ProjectExclude returns a new mapping holding every field whose name is not
// in keys, in source order. Values are kept regardless of truthiness.
func ProjectExclude(fields Fields, keys []string) Fields {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}

	var out Fields
	for _, k := range fields.keys {
		if _, ok := drop[k]; ok {
			continue
		}
		out.put(k, fields.values[k])
	}
	return out
}

// Truthy reports whether v counts as set for include projection.
// nil, false, zero numbers, NaN and "" are falsy; everything else,
// including empty lists and objects, is truthy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return t != ""
		}
		return n != 0 && !math.IsNaN(n)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		n := rv.Float()
		return n != 0 && !math.IsNaN(n)
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}
