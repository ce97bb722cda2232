package ninox

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult_Kinds(t *testing.T) {
	tests := []struct {
		body string
		want Kind
	}{
		{``, KindNull},
		{`null`, KindNull},
		{`true`, KindBool},
		{`false`, KindBool},
		{`42`, KindNumber},
		{` -1.5e3 `, KindNumber},
		{`"hello"`, KindString},
		{`[1,"a"]`, KindList},
		{`{"a":1}`, KindObject},
		{`not json`, KindString},
	}

	for _, tt := range tests {
		t.Run(tt.want.String()+"/"+tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseResult([]byte(tt.body)).Kind)
		})
	}
}

func TestResult_Accessors(t *testing.T) {
	n := ParseResult([]byte(`21`))
	num, ok := n.Number()
	require.True(t, ok)
	assert.Equal(t, json.Number("21"), num)
	f, ok := n.Float()
	require.True(t, ok)
	assert.Equal(t, 21.0, f)
	_, ok = n.Text()
	assert.False(t, ok)

	b, ok := ParseResult([]byte(`true`)).Bool()
	require.True(t, ok)
	assert.True(t, b)

	s := ParseResult([]byte(`"A6"`))
	text, ok := s.Text()
	require.True(t, ok)
	assert.Equal(t, "A6", text)
	assert.Equal(t, "A6", s.String())

	raw := ParseResult([]byte(`plain text`))
	text, ok = raw.Text()
	require.True(t, ok)
	assert.Equal(t, "plain text", text)
	assert.Equal(t, `"plain text"`, string(raw.Raw()))

	list := ParseResult([]byte(`[1, "a", null]`))
	items, ok := list.List()
	require.True(t, ok)
	require.Len(t, items, 3)
	assert.Equal(t, KindNumber, items[0].Kind)
	assert.Equal(t, KindString, items[1].Kind)
	assert.True(t, items[2].IsNull())

	obj := ParseResult([]byte(`{"b": 1, "a": 2}`))
	fields, ok := obj.Object()
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, fields.Keys())
	_, ok = obj.List()
	assert.False(t, ok)
}

func TestResult_Unmarshal(t *testing.T) {
	var ids []int
	require.NoError(t, ParseResult([]byte(`[3, 4]`)).Unmarshal(&ids))
	assert.Equal(t, []int{3, 4}, ids)

	var n int
	assert.Error(t, ParseResult([]byte(`"x"`)).Unmarshal(&n))
}
