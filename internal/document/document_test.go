package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_JSONObject(t *testing.T) {
	doc, err := Parse("a.json", []byte(`{"report_info":{"company_name":"Acme","total_months":6},"amount":1234.565}`))
	require.NoError(t, err)

	assert.Equal(t, "Acme", doc.Node("report_info").Str("company_name", ""))
	assert.Equal(t, 6, doc.Node("report_info").Int("total_months"))
	assert.True(t, doc.Decimal("amount").Equal(decimal.RequireFromString("1234.565")), "JSON numbers keep their literal value")
}

func TestParse_StripsBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"a":1}`)...)
	doc, err := Parse("bom.json", raw)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Int("a"))
}

func TestParse_YAML(t *testing.T) {
	raw := []byte("report_info:\n  company_name: Acme\n  period_end: 2024-06-30\naccounts:\n  - bank_name: Alpha\n    total_credits: 100.5\n")
	doc, err := Parse("doc.yaml", raw)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-30", doc.Node("report_info").Str("period_end", ""))
	accounts := doc.Nodes("accounts")
	require.Len(t, accounts, 1)
	assert.Equal(t, "Alpha", accounts[0].Str("bank_name", ""))
	assert.Equal(t, 100.5, accounts[0].Float("total_credits"))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		file string
		raw  string
	}{
		{name: "garbage", file: "x.json", raw: `{not json`},
		{name: "array root", file: "x.json", raw: `[1,2,3]`},
		{name: "scalar root", file: "x.json", raw: `42`},
		{name: "string root", file: "x.json", raw: `"hello"`},
		{name: "null root", file: "x.json", raw: `null`},
		{name: "empty", file: "x.json", raw: "   "},
		{name: "trailing data", file: "x.json", raw: `{"a":1} {"b":2}`},
		{name: "yaml scalar", file: "x.yml", raw: "just text"},
		{name: "yaml invalid", file: "x.yaml", raw: "a: [1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.file, []byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))

			var mErr *MalformedInputError
			require.True(t, errors.As(err, &mErr))
			assert.Equal(t, tt.file, mErr.Source)
			assert.Contains(t, err.Error(), tt.file)
		})
	}
}

func TestNode_NilIsEmpty(t *testing.T) {
	var n Node
	assert.False(t, n.Has("x"))
	assert.Nil(t, n.Node("x"))
	assert.Empty(t, n.Nodes("x"))
	assert.Equal(t, "def", n.Str("x", "def"))
	assert.Equal(t, 0, n.Int("x"))
	assert.True(t, n.Decimal("x").IsZero())
}

func TestNode_TypeMismatchDegrades(t *testing.T) {
	n := Node{
		"num_as_obj": map[string]any{"a": 1},
		"list_as_str": "abc",
		"str_as_list": []any{"a"},
		"null":        nil,
	}
	assert.True(t, n.Decimal("num_as_obj").IsZero())
	assert.Nil(t, n.List("list_as_str"))
	assert.Equal(t, "fallback", n.Str("str_as_list", "fallback"))
	assert.False(t, n.Has("null"))
	assert.Equal(t, "fallback", n.Str("null", "fallback"))
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy(json.Number("0")))
	assert.False(t, Truthy([]any{}))
	assert.False(t, Truthy(map[string]any{}))
	assert.False(t, Truthy(false))
	assert.True(t, Truthy(json.Number("0.5")))
	assert.True(t, Truthy("x"))
	assert.True(t, Truthy(map[string]any{"a": nil}))
}

func TestToString_Scalars(t *testing.T) {
	s, ok := ToString(json.Number("12345678"))
	assert.True(t, ok)
	assert.Equal(t, "12345678", s)

	_, ok = ToString(map[string]any{})
	assert.False(t, ok)
}

func TestToInt_TruncatesFraction(t *testing.T) {
	i, ok := ToInt(json.Number("12.9"))
	assert.True(t, ok)
	assert.Equal(t, 12, i)
}

func TestToFloat_RejectsNonFinite(t *testing.T) {
	doc, err := Parse("odd.yaml", []byte("a: .nan\nb: .inf\nc: -.inf\nd: 12.5\n"))
	require.NoError(t, err)

	for _, key := range []string{"a", "b", "c"} {
		_, ok := ToFloat(doc[key])
		assert.False(t, ok, key)
		assert.Equal(t, 0.0, doc.Float(key), key)
		assert.True(t, doc.Decimal(key).IsZero(), key)
	}
	assert.Equal(t, 12.5, doc.Float("d"))

	_, ok := ToFloat(json.Number("1e400"))
	assert.False(t, ok, "overflowing literal")
}
