package ninox

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies the shape of a query or script result.
type Kind int

// Result kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Result is the value computed by Query or Exec. The backend decides its
// shape; Kind tells which accessor applies.
type Result struct {
	Kind Kind
	raw  json.RawMessage
	text string
}

// ParseResult classifies a response body. A body that is not JSON is
// returned as a string result holding the body text.
func ParseResult(body []byte) *Result {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Result{Kind: KindNull, raw: json.RawMessage("null")}
	}
	if !json.Valid(trimmed) {
		return &Result{Kind: KindString, text: string(body)}
	}

	r := &Result{raw: json.RawMessage(trimmed)}
	switch trimmed[0] {
	case 'n':
		r.Kind = KindNull
	case 't', 'f':
		r.Kind = KindBool
	case '"':
		r.Kind = KindString
		_ = json.Unmarshal(trimmed, &r.text)
	case '[':
		r.Kind = KindList
	case '{':
		r.Kind = KindObject
	default:
		r.Kind = KindNumber
	}
	return r
}

// IsNull returns true for an empty or null result.
func (r *Result) IsNull() bool {
	return r.Kind == KindNull
}

// Bool returns the value of a bool result.
func (r *Result) Bool() (bool, bool) {
	if r.Kind != KindBool {
		return false, false
	}
	return bytes.Equal(r.raw, []byte("true")), true
}

// Number returns the value of a number result.
func (r *Result) Number() (json.Number, bool) {
	if r.Kind != KindNumber {
		return "", false
	}
	return json.Number(r.raw), true
}

// Float returns the value of a number result as float64.
func (r *Result) Float() (float64, bool) {
	n, ok := r.Number()
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

// Text returns the value of a string result.
func (r *Result) Text() (string, bool) {
	if r.Kind != KindString {
		return "", false
	}
	return r.text, true
}

// List returns the elements of a list result.
func (r *Result) List() ([]*Result, bool) {
	if r.Kind != KindList {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(r.raw, &items); err != nil {
		return nil, false
	}
	out := make([]*Result, 0, len(items))
	for _, item := range items {
		out = append(out, ParseResult(item))
	}
	return out, true
}

// Object returns the members of an object result, in document order.
func (r *Result) Object() (Fields, bool) {
	if r.Kind != KindObject {
		return Fields{}, false
	}
	var f Fields
	if err := json.Unmarshal(r.raw, &f); err != nil {
		return Fields{}, false
	}
	return f, true
}

// Raw returns the JSON text of the result. For a non-JSON body it returns
// the body as a JSON string.
func (r *Result) Raw() []byte {
	if r.raw == nil {
		data, _ := json.Marshal(r.text)
		return data
	}
	return append([]byte(nil), r.raw...)
}

// Unmarshal decodes the result into v.
func (r *Result) Unmarshal(v any) error {
	if err := json.Unmarshal(r.Raw(), v); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}

// String renders the result for display: strings unquoted, everything else
// as JSON.
func (r *Result) String() string {
	if r.Kind == KindString {
		return r.text
	}
	return string(r.raw)
}
