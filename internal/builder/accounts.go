package builder

import (
	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/models"
	"github.com/bobmcallan/statement-report/internal/resolve"
)

const maxCategoryExemplars = 5

func (b *builder) accounts() []models.Account {
	list := b.doc.Nodes("accounts")
	out := make([]models.Account, 0, len(list))
	for _, a := range list {
		out = append(out, models.Account{
			BankName:         a.Str("bank_name", ""),
			AccountNumber:    a.Str("account_number", ""),
			Classification:   models.Classification(a.Str("classification", string(models.ClassificationSecondary))),
			TotalCredits:     a.Decimal("total_credits"),
			TotalDebits:      a.Decimal("total_debits"),
			TransactionCount: a.Int("transaction_count"),
			ClosingBalance:   a.Decimal("closing_balance"),
			Monthly:          b.monthly(a.Nodes("monthly_summary")),
		})
	}
	return out
}

func (b *builder) monthly(list []document.Node) []models.MonthlySummary {
	out := make([]models.MonthlySummary, 0, len(list))
	for _, m := range list {
		out = append(out, models.MonthlySummary{
			Month:           m.Str("month", ""),
			MonthName:       m.Str("month_name", ""),
			Opening:         m.Decimal("opening"),
			Credits:         m.Decimal("credits"),
			Debits:          m.Decimal("debits"),
			Closing:         m.Decimal("closing"),
			High:            resolve.MonthlyHigh(m, b.version),
			Low:             resolve.MonthlyLow(m, b.version),
			Swing:           m.Decimal("swing"),
			VolatilityPct:   m.Float("volatility_pct"),
			VolatilityLevel: models.Level(m.Str("volatility_level", string(models.LevelLow))),
		})
	}
	return out
}

func (b *builder) categories() models.Categories {
	cats := b.doc.Node("categories")
	return models.Categories{
		Credits: categoryList(cats.Nodes("credits")),
		Debits:  categoryList(cats.Nodes("debits")),
	}
}

func categoryList(list []document.Node) []models.Category {
	out := make([]models.Category, 0, len(list))
	for _, c := range list {
		top := c.Nodes("top_5_transactions")
		if len(top) > maxCategoryExemplars {
			top = top[:maxCategoryExemplars]
		}
		exemplars := make([]models.Transaction, 0, len(top))
		for _, t := range top {
			exemplars = append(exemplars, resolve.Transaction(t, ""))
		}

		out = append(out, models.Category{
			Name:       c.Str("category", ""),
			Count:      c.Int("count"),
			Amount:     c.Decimal("amount"),
			Percentage: c.Float("percentage"),
			Top:        exemplars,
		})
	}
	return out
}

func (b *builder) turnover() models.Turnover {
	consolidated := b.doc.Node("consolidated")
	gross := consolidated.Node("gross")
	business := consolidated.Node("business_turnover")
	credits := consolidated.Node("exclusions").Node("credits")
	debits := consolidated.Node("exclusions").Node("debits")

	return models.Turnover{
		Gross: models.GrossTurnover{
			TotalCredits: gross.Decimal("total_credits"),
			TotalDebits:  gross.Decimal("total_debits"),
			NetFlow:      gross.Decimal("net_flow"),
		},
		Business: models.BusinessTurnover{
			NetCredits: business.Decimal("net_credits"),
			NetDebits:  business.Decimal("net_debits"),
			NetFlow:    business.Decimal("net_flow"),
		},
		Exclusions: models.Exclusions{
			Credits: models.CreditExclusions{
				InterAccount:       resolve.ExclusionAmount(credits["inter_account"]),
				RelatedParty:       resolve.ExclusionAmount(credits["related_party"]),
				Reversals:          resolve.ExclusionAmount(credits["reversals"]),
				LoanDisbursement:   resolve.ExclusionAmount(credits["loan_disbursement"]),
				InterestFDDividend: resolve.ExclusionAmount(credits["interest_fd_dividend"]),
				Total:              resolve.ExclusionAmount(credits["total"]),
			},
			Debits: models.DebitExclusions{
				InterAccount:   resolve.ExclusionAmount(debits["inter_account"]),
				RelatedParty:   resolve.ExclusionAmount(debits["related_party"]),
				ReturnedCheque: resolve.ExclusionAmount(debits["returned_cheque"]),
				Total:          resolve.ExclusionAmount(debits["total"]),
			},
		},
	}
}
