package builder

import (
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/models"
	"github.com/bobmcallan/statement-report/internal/resolve"
)

// The optional sections below return nil unless the document carries a
// non-empty block for them; a nil section is omitted from the report.

func (b *builder) recurring(totalMonths int) *models.RecurringPayments {
	rec := b.doc.Node("recurring_payments")
	if len(rec) == 0 {
		return nil
	}

	compliance, risk := resolve.Compliance(rec["assessment"], b.opts.policy)
	return &models.RecurringPayments{
		Payments:   resolve.RecurringPayments(rec, totalMonths),
		Compliance: compliance,
		RiskLevel:  risk,
		Alerts:     resolve.RecurringAlerts(rec),
	}
}

func (b *builder) nonBank() *models.NonBankFinancing {
	nb := b.doc.Node("non_bank_financing")
	if len(nb) == 0 {
		return nil
	}

	risk, summary := resolve.NonBankAssessment(nb)
	out := &models.NonBankFinancing{
		RiskLevel: risk,
		Summary:   summary,
		Sources:   dedupeSources(nb.Nodes("sources")),
	}

	suspected := nb.Nodes("suspected_unlicensed")
	out.Suspected = make([]models.SuspectedLoan, 0, len(suspected))
	for _, s := range suspected {
		out.Suspected = append(out.Suspected, models.SuspectedLoan{
			Date:   s.Str("date", ""),
			Party:  firstNonEmpty(s.Str("counterparty", ""), s.Str("description", "")),
			Amount: s.Decimal("amount"),
			Reason: s.Str("reason", ""),
		})
	}
	return out
}

// dedupeSources keeps the first source seen for each total inflow amount,
// in input order. Sources have no stable identifier across analyzer
// versions.
func dedupeSources(list []document.Node) []models.FinancingSource {
	var seen []decimal.Decimal
	out := make([]models.FinancingSource, 0, len(list))

next:
	for _, s := range list {
		inflow := s.Decimal("total_inflow")
		for _, d := range seen {
			if d.Equal(inflow) {
				continue next
			}
		}
		seen = append(seen, inflow)

		out = append(out, models.FinancingSource{
			Type:           s.Str("source_type", ""),
			Count:          s.Int("count"),
			TotalInflow:    inflow,
			TotalRepayment: s.Decimal("total_repayment"),
			Status:         s.Str("status", "INFO"),
		})
	}
	return out
}

func (b *builder) counterparties() *models.Counterparties {
	cp := b.doc.Node("counterparties")
	if len(cp) == 0 {
		return nil
	}

	conc := cp.Node("concentration_risk")
	out := &models.Counterparties{
		TopPayers: parties(cp.Nodes("top_payers")),
		TopPayees: parties(cp.Nodes("top_payees")),
		Concentration: models.Concentration{
			RiskLevel:     models.Level(conc.Str("risk_level", string(models.LevelLow))),
			Top1PayerPct:  conc.Float("top1_payer_pct"),
			Top3PayersPct: conc.Float("top3_payers_pct"),
			Top1PayeePct:  conc.Float("top1_payee_pct"),
			Top3PayeesPct: conc.Float("top3_payees_pct"),
		},
	}

	both := cp.Nodes("parties_both_sides")
	out.BothSides = make([]models.BothSidesParty, 0, len(both))
	for _, p := range both {
		out.BothSides = append(out.BothSides, models.BothSidesParty{
			Name:         p.Str("party_name", ""),
			CreditAmount: p.Decimal("credit_amount"),
			DebitAmount:  p.Decimal("debit_amount"),
		})
	}
	return out
}

func parties(list []document.Node) []models.Party {
	out := make([]models.Party, 0, len(list))
	for _, p := range list {
		out = append(out, models.Party{
			Rank:             p.Str("rank", ""),
			Name:             p.Str("party_name", ""),
			TransactionCount: p.Int("transaction_count"),
			TotalAmount:      p.Decimal("total_amount"),
			Percentage:       p.Float("percentage"),
			RelatedParty:     p.Bool("is_related_party"),
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
