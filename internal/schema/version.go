// Package schema classifies analysis documents into the structural family
// their fields follow.
package schema

import (
	"strings"

	"github.com/bobmcallan/statement-report/internal/document"
)

// Version is the structural family of an analysis document. Every
// version-dependent lookup dispatches on it.
type Version int

const (
	// Legacy is the v4 family: highest/lowest balances, bare-number
	// exclusions, string related parties.
	Legacy Version = iota
	// Current is the v5.x family: intraday balances, object exclusions,
	// recurring payments and non-bank financing sections.
	Current
)

const currentPrefix = "5."

// String returns the family tag shown in reports and file names.
func (v Version) String() string {
	if v == Current {
		return "5.0"
	}
	return "4.0"
}

// Classify returns the version family of doc. It never fails: a missing or
// unrecognised version marker falls through to the structural checks and
// finally to Legacy.
func Classify(doc document.Node) Version {
	if strings.HasPrefix(DeclaredVersion(doc), currentPrefix) {
		return Current
	}
	if doc.Truthy("recurring_payments") || doc.Truthy("non_bank_financing") {
		return Current
	}
	for _, a := range doc.List("accounts") {
		account, _ := document.AsNode(a)
		if monthly := account.List("monthly_summary"); len(monthly) > 0 {
			m, _ := document.AsNode(monthly[0])
			if _, ok := m["highest_intraday"]; ok {
				return Current
			}
		}
	}
	return Legacy
}

// DeclaredVersion returns report_info.schema_version when it is a string,
// or "".
func DeclaredVersion(doc document.Node) string {
	v, ok := doc.Node("report_info")["schema_version"].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// IntegrityMaxPoints is the maximum integrity score achievable under v.
func IntegrityMaxPoints(v Version) int {
	if v == Current {
		return 23
	}
	return 25
}
