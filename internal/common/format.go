package common

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the label printed in front of amounts.
const DefaultCurrency = "RM"

// FormatAmount formats d with comma separators and the given number of
// decimal places, e.g. FormatAmount(1234567.891, 2) = "1,234,567.89".
func FormatAmount(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	whole = groupThousands(whole)
	if frac != "" {
		whole += "." + frac
	}
	// StringFixed can yield "-0.00" for tiny negatives
	if negative && strings.Trim(whole, "0.,") != "" {
		return "-" + whole
	}
	return whole
}

// FormatMoney formats d as a currency amount with two decimal places,
// e.g. "RM 1,234.50". An empty currency uses DefaultCurrency.
func FormatMoney(d decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return currency + " " + FormatAmount(d, 2)
}

// FormatMillions formats d in millions with two decimals, e.g. "1.23M".
func FormatMillions(d decimal.Decimal) string {
	return FormatAmount(d.Div(decimal.NewFromInt(1_000_000)), 2) + "M"
}

// FormatCount formats an integer with comma separators.
func FormatCount(n int) string {
	s := groupThousands(strconv.Itoa(abs(n)))
	if n < 0 {
		return "-" + s
	}
	return s
}

// FormatNumber prints a float without trailing zeros, e.g. 2 -> "2", 2.5 -> "2.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
