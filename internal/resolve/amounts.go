package resolve

import (
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/models"
)

// ExclusionAmount resolves a turnover exclusion. Legacy documents store a
// bare number, Current documents an object with a total; anything else is 0.
func ExclusionAmount(v any) decimal.Decimal {
	if n, ok := document.AsNode(v); ok {
		return n.Decimal("total")
	}
	d, _ := document.ToDecimal(v)
	return d
}

// RelatedParty resolves a declared related party. Legacy documents list bare
// names, Current documents objects with a name and relationship. ok is false
// when no name can be found.
func RelatedParty(v any) (models.RelatedParty, bool) {
	if n, isNode := document.AsNode(v); isNode {
		name := FirstString(n, "", "name", "party_name")
		if name == "" {
			return models.RelatedParty{}, false
		}
		return models.RelatedParty{Name: name, Relationship: n.Str("relationship", "")}, true
	}
	name, ok := document.ToString(v)
	if !ok || name == "" {
		return models.RelatedParty{}, false
	}
	return models.RelatedParty{Name: name}, true
}
