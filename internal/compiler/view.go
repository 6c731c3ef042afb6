package compiler

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/statement-report/internal/charts"
	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/models"
)

// Row limits of the rendered tables. The model keeps every entry.
const (
	maxTransfers       = 10
	maxReturnedCheques = 10
	maxSuspected       = 10
	maxParties         = 10
	maxBothSides       = 5
)

// lowBalance marks closing balances rendered as a warning.
var lowBalance = decimal.NewFromInt(20000)

type tab struct {
	Name  string
	Label string
}

type categoryTable struct {
	Prefix string // element id prefix of the exemplar rows
	Side   string // credit or debit
	Title  string
	Empty  string
	Rows   []models.Category
}

// roundFigureRow is one entry of the JSON list behind the round-figure modal.
type roundFigureRow struct {
	Date    string `json:"date"`
	Desc    string `json:"desc"`
	Type    string `json:"type"`
	Amount  string `json:"amount"`
	Account string `json:"account"`
}

// view is the template data of one compiled report.
type view struct {
	R        *models.Report
	Charts   charts.Data
	Currency string
	Tabs     []tab

	SchemaLabel     string
	IntegrityClass  string
	KiteClass       string
	VolatilityClass string
	HighLabel       string
	LowLabel        string

	Credits categoryTable
	Debits  categoryTable

	RoundFigures   []roundFigureRow
	Transfers      []models.Transfer
	Returned       []models.Transaction
	RelatedParties string

	Payers    []models.Party
	Payees    []models.Party
	BothSides []models.BothSidesParty
	Suspected []models.SuspectedLoan
}

func newView(r *models.Report, data charts.Data, currency string) *view {
	v := &view{
		R:               r,
		Charts:          data,
		Currency:        currency,
		Tabs:            tabs(r),
		SchemaLabel:     r.SchemaVersion,
		IntegrityClass:  integrityClass(r.Integrity.Score),
		KiteClass:       kiteClass(r.KiteFlying.RiskLevel),
		VolatilityClass: volatilityClass(r.Volatility.OverallLevel),
		HighLabel:       "Highest",
		LowLabel:        "Lowest",
		Credits: categoryTable{
			Prefix: "cr-top5-", Side: "credit", Title: "CREDITS",
			Empty: "No credit category data available", Rows: r.Categories.Credits,
		},
		Debits: categoryTable{
			Prefix: "dr-top5-", Side: "debit", Title: "DEBITS",
			Empty: "No debit category data available", Rows: r.Categories.Debits,
		},
		Transfers:      head(r.Transfers.Records, maxTransfers),
		Returned:       head(r.Flags.ReturnedCheques.Transactions, maxReturnedCheques),
		RelatedParties: relatedParties(r.Info.RelatedParties),
	}
	if r.IsCurrent() {
		v.HighLabel = "Highest (Intraday)"
		v.LowLabel = "Lowest (Intraday)"
	}

	v.RoundFigures = make([]roundFigureRow, 0, len(r.Flags.RoundFigures.Transactions))
	for _, t := range r.Flags.RoundFigures.Transactions {
		v.RoundFigures = append(v.RoundFigures, roundFigureRow{
			Date:    t.Date,
			Desc:    t.Description,
			Type:    t.Type,
			Amount:  common.FormatAmount(t.Amount, 2),
			Account: t.Account,
		})
	}

	if cp := r.Counterparties; cp != nil {
		v.Payers = head(cp.TopPayers, maxParties)
		v.Payees = head(cp.TopPayees, maxParties)
		v.BothSides = head(cp.BothSides, maxBothSides)
	}
	if nb := r.NonBank; nb != nil {
		v.Suspected = head(nb.Suspected, maxSuspected)
	}
	return v
}

// tabs lists the navigation entries in display order. Optional sections
// appear only when the report carries them.
func tabs(r *models.Report) []tab {
	out := []tab{
		{"overview", "📊 Overview"},
		{"accounts", "🏦 Accounts"},
		{"turnover", "💰 Turnover"},
		{"categories", "📁 Categories"},
	}
	if r.Counterparties != nil {
		out = append(out, tab{"counterparties", "👥 Counterparties"})
	}
	out = append(out,
		tab{"volatility", "📈 Volatility"},
		tab{"flags", "🚩 Flags"},
		tab{"integrity", "✓ Integrity"},
		tab{"related", "👤 Related"},
	)
	if r.Recurring != nil {
		out = append(out, tab{"recurring", "📋 Recurring"})
	}
	if r.NonBank != nil {
		out = append(out, tab{"nonbank", "🏦 Non-Bank"})
	}
	return append(out, tab{"recommendations", "✅ Recs"})
}

func head[T any](list []T, n int) []T {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func relatedParties(parties []models.RelatedParty) string {
	if len(parties) == 0 {
		return "None specified"
	}
	names := make([]string, 0, len(parties))
	for _, p := range parties {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

func integrityClass(score float64) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	case score >= 60:
		return "warning"
	default:
		return "danger"
	}
}

func kiteClass(level models.Level) string {
	switch level {
	case models.LevelLow:
		return "good"
	case models.LevelMedium:
		return "warning"
	default:
		return "danger"
	}
}

func volatilityClass(level models.Level) string {
	switch level {
	case models.LevelLow:
		return "good"
	case models.LevelModerate, models.LevelHigh:
		return "warning"
	default:
		return "danger"
	}
}
