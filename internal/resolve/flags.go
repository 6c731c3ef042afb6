package resolve

import (
	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/models"
)

// RoundFigures resolves the round-figure flag block. flags.round_figure_transactions
// wins when it carries anything; otherwise the block is folded in from the
// top-level flagged_for_review section some v5.2 documents use instead.
func RoundFigures(doc document.Node) document.Node {
	if rf := doc.Node("flags").Node("round_figure_transactions"); len(rf) > 0 {
		return rf
	}

	review := doc.Node("flagged_for_review")
	if len(review) == 0 {
		return nil
	}

	items := FirstNonEmptyList(review, "all_items", "top_10_items")
	converted := make([]any, 0, len(items))
	for _, item := range document.Nodes(items) {
		converted = append(converted, map[string]any{
			"date":         item.Str("date", ""),
			"description":  item.Str("description", ""),
			"type":         item.Str("type", "CREDIT"),
			"amount":       item["amount"],
			"account":      item.Str("account", ""),
			"counterparty": item.Str("counterparty", ""),
			"flag_reason":  item.Str("flag_reason", ""),
		})
	}

	top := converted
	if len(top) > 10 {
		top = top[:10]
	}

	rf := document.Node{
		"count":               len(converted),
		"total_amount":        review["total_amount"],
		"all_transactions":    converted,
		"top_10_transactions": top,
		"note":                review.Str("note", ""),
	}
	if v, ok := review.Lookup("count"); ok {
		rf["count"] = v
	}
	return rf
}

// RoundFigureTransactions resolves the exemplar list of a round-figure block:
// all_transactions, then top_10_transactions, then transactions.
func RoundFigureTransactions(rf document.Node) []models.Transaction {
	list := FirstList(rf, "all_transactions", "top_10_transactions", "transactions")
	out := make([]models.Transaction, 0, len(list))
	for _, t := range document.Nodes(list) {
		out = append(out, Transaction(t, "CREDIT"))
	}
	return out
}

// Transaction normalises an exemplar transaction. defType is used when the
// entry carries no type.
func Transaction(t document.Node, defType string) models.Transaction {
	return models.Transaction{
		Date:         t.Str("date", ""),
		Description:  t.Str("description", ""),
		Counterparty: t.Str("counterparty", ""),
		Type:         t.Str("type", defType),
		Amount:       t.Decimal("amount"),
		Account:      t.Str("account", ""),
		FlagReason:   t.Str("flag_reason", ""),
	}
}
