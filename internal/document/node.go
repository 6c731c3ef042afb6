package document

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Node is a keyed section of a raw document. A nil Node is valid and reads
// as empty, so chained lookups never need nil checks.
type Node map[string]any

// Lookup returns the value under key when it is present and not null.
func (n Node) Lookup(key string) (any, bool) {
	v, ok := n[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether key is present and not null.
func (n Node) Has(key string) bool {
	_, ok := n.Lookup(key)
	return ok
}

// Truthy reports whether the value under key is present and non-empty.
func (n Node) Truthy(key string) bool {
	return Truthy(n[key])
}

// Node returns the keyed child under key, or nil.
func (n Node) Node(key string) Node {
	child, _ := AsNode(n[key])
	return child
}

// List returns the list under key, or nil.
func (n Node) List(key string) []any {
	l, _ := AsList(n[key])
	return l
}

// Nodes returns the keyed entries of the list under key, skipping anything
// that is not an object.
func (n Node) Nodes(key string) []Node {
	return Nodes(n.List(key))
}

// Strings returns the scalar entries of the list under key as strings.
func (n Node) Strings(key string) []string {
	list := n.List(key)
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := ToString(v); ok {
			out = append(out, s)
		}
	}
	return out
}

// Str returns the scalar under key as a string, or def.
func (n Node) Str(key, def string) string {
	if s, ok := ToString(n[key]); ok {
		return s
	}
	return def
}

// Decimal returns the number under key, or zero.
func (n Node) Decimal(key string) decimal.Decimal {
	d, _ := ToDecimal(n[key])
	return d
}

// Float returns the number under key, or zero.
func (n Node) Float(key string) float64 {
	f, _ := ToFloat(n[key])
	return f
}

// Int returns the number under key truncated to an int, or zero.
func (n Node) Int(key string) int {
	i, _ := ToInt(n[key])
	return i
}

// Bool returns the truthiness of the value under key.
func (n Node) Bool(key string) bool {
	return Truthy(n[key])
}

// AsNode converts v to a Node when it is an object.
func AsNode(v any) (Node, bool) {
	switch t := v.(type) {
	case Node:
		return t, true
	case map[string]any:
		return Node(t), true
	default:
		return nil, false
	}
}

// AsList converts v to a list when it is an array.
func AsList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// Nodes keeps the object entries of list.
func Nodes(list []any) []Node {
	out := make([]Node, 0, len(list))
	for _, v := range list {
		if n, ok := AsNode(v); ok {
			out = append(out, n)
		}
	}
	return out
}

// Truthy mirrors the emptiness test the analyzer's consumers have always
// applied: null, false, zero, "" and empty collections are all "absent".
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	case Node:
		return len(t) > 0
	default:
		return true
	}
}

// IsNumber reports whether v is a numeric scalar.
func IsNumber(v any) bool {
	switch v.(type) {
	case json.Number, float64, float32, int, int64, uint64:
		return true
	default:
		return false
	}
}

// ToDecimal converts a numeric scalar to a decimal. JSON numbers keep their
// exact literal value.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case float64:
		if !isFinite(t) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(t), true
	case float32:
		if !isFinite(float64(t)) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case uint64:
		return decimal.NewFromUint64(t), true
	default:
		return decimal.Zero, false
	}
}

// ToFloat converts a numeric scalar to a float64. NaN and infinities are
// rejected.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if !isFinite(t) {
			return 0, false
		}
		return t, true
	case json.Number:
		f, err := t.Float64()
		if err != nil || !isFinite(f) {
			return 0, false
		}
		return f, true
	default:
		d, ok := ToDecimal(v)
		if !ok {
			return 0, false
		}
		return d.InexactFloat64(), true
	}
}

// ToInt converts a numeric scalar to an int, truncating any fraction.
func ToInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	default:
		d, ok := ToDecimal(v)
		if !ok {
			return 0, false
		}
		return int(d.IntPart()), true
	}
}

// ToString converts a scalar to its display string. Objects, arrays and
// null are not scalars.
func ToString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	default:
		return "", false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
