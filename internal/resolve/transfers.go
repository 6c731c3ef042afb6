package resolve

import (
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/models"
)

// InterAccountTransfers resolves the inter-account transfer block across its
// nesting shapes. Records come from matched_transfers (all, then top 10),
// then the legacy transfers list. Count and total come from the summary
// object, then the legacy top-level fields, then the records themselves.
func InterAccountTransfers(ia document.Node) models.Transfers {
	matched := ia.Node("matched_transfers")
	summary := ia.Node("summary")

	list := FirstList(matched, "all_transfers", "top_10_transfers")
	if _, ok := First(matched, "all_transfers", "top_10_transfers"); !ok {
		list = ia.List("transfers")
	}

	records := make([]models.Transfer, 0, len(list))
	sum := decimal.Zero
	for _, t := range document.Nodes(list) {
		rec := models.Transfer{
			Date:        t.Str("date", ""),
			FromAccount: FirstString(t, "", "from_account", "debit_account"),
			ToAccount:   FirstString(t, "", "to_account", "credit_account"),
			Amount:      t.Decimal("amount"),
		}
		sum = sum.Add(rec.Amount)
		records = append(records, rec)
	}

	out := models.Transfers{Records: records, Count: len(records), TotalAmount: sum}
	if v, ok := summary.Lookup("total_count"); ok {
		out.Count, _ = document.ToInt(v)
	} else if v, ok := ia.Lookup("detected_count"); ok {
		out.Count, _ = document.ToInt(v)
	}
	if v, ok := summary.Lookup("total_amount"); ok {
		out.TotalAmount, _ = document.ToDecimal(v)
	} else if v, ok := ia.Lookup("total_amount"); ok {
		out.TotalAmount, _ = document.ToDecimal(v)
	}
	return out
}
