package resolve

import (
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/schema"
)

// MonthlyHigh resolves the highest balance of a monthly entry. Current
// documents prefer the intraday figure, Legacy documents the end-of-day one;
// either falls back to the other name.
func MonthlyHigh(m document.Node, v schema.Version) decimal.Decimal {
	if v == schema.Current {
		return FirstDecimal(m, "highest_intraday", "highest")
	}
	return FirstDecimal(m, "highest", "highest_intraday")
}

// MonthlyLow is MonthlyHigh for the lowest balance.
func MonthlyLow(m document.Node, v schema.Version) decimal.Decimal {
	if v == schema.Current {
		return FirstDecimal(m, "lowest_intraday", "lowest")
	}
	return FirstDecimal(m, "lowest", "lowest_intraday")
}
