// Package resolve holds the per-field accessors that pick a logical value out
// of an analysis document across its schema revisions. Every accessor is
// total: an absent or mistyped field resolves to a documented zero value.
package resolve

import (
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/statement-report/internal/document"
)

// First returns the value of the first key present (and not null) in n.
func First(n document.Node, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := n.Lookup(k); ok {
			return v, true
		}
	}
	return nil, false
}

// FirstString resolves keys in order to a display string, or def.
func FirstString(n document.Node, def string, keys ...string) string {
	v, ok := First(n, keys...)
	if !ok {
		return def
	}
	if s, ok := document.ToString(v); ok {
		return s
	}
	return def
}

// FirstDecimal resolves keys in order to a decimal, or zero.
func FirstDecimal(n document.Node, keys ...string) decimal.Decimal {
	v, _ := First(n, keys...)
	d, _ := document.ToDecimal(v)
	return d
}

// FirstInt resolves keys in order to an int, or def.
func FirstInt(n document.Node, def int, keys ...string) int {
	v, ok := First(n, keys...)
	if !ok {
		return def
	}
	i, _ := document.ToInt(v)
	return i
}

// FirstList resolves keys in order to a list. The first present key wins
// even when its list is empty.
func FirstList(n document.Node, keys ...string) []any {
	v, _ := First(n, keys...)
	l, _ := document.AsList(v)
	return l
}

// FirstNonEmptyList returns the first list under keys that has entries.
func FirstNonEmptyList(n document.Node, keys ...string) []any {
	for _, k := range keys {
		if l := n.List(k); len(l) > 0 {
			return l
		}
	}
	return nil
}
