package models

import "github.com/shopspring/decimal"

// Classification marks an account as the company's main operating account or not.
type Classification string

const (
	ClassificationPrimary   Classification = "PRIMARY"
	ClassificationSecondary Classification = "SECONDARY"
)

// Level is a graded risk or volatility level as labelled upstream.
type Level string

const (
	LevelLow      Level = "LOW"
	LevelModerate Level = "MODERATE"
	LevelMedium   Level = "MEDIUM"
	LevelHigh     Level = "HIGH"
	LevelExtreme  Level = "EXTREME"
)

// Elevated reports whether the level warrants a volatility alert.
func (l Level) Elevated() bool {
	return l == LevelHigh || l == LevelExtreme
}

// Short is the abbreviated badge text for the level.
func (l Level) Short() string {
	switch l {
	case LevelExtreme:
		return "EXTR"
	case LevelModerate:
		return "MOD"
	default:
		return string(l)
	}
}

// Account is one bank account covered by the analysis.
type Account struct {
	BankName         string           `json:"bank_name"`
	AccountNumber    string           `json:"account_number"`
	Classification   Classification   `json:"classification"`
	TotalCredits     decimal.Decimal  `json:"total_credits"`
	TotalDebits      decimal.Decimal  `json:"total_debits"`
	TransactionCount int              `json:"transaction_count"`
	ClosingBalance   decimal.Decimal  `json:"closing_balance"`
	Monthly          []MonthlySummary `json:"monthly_summary"`
}

// IsPrimary reports whether the account is classified PRIMARY.
func (a Account) IsPrimary() bool {
	return a.Classification == ClassificationPrimary
}

// MonthlySummary is one reporting month of an account. Values are taken as
// supplied; closing = opening + credits - debits is never recomputed.
type MonthlySummary struct {
	Month           string          `json:"month"`
	MonthName       string          `json:"month_name,omitempty"`
	Opening         decimal.Decimal `json:"opening"`
	Credits         decimal.Decimal `json:"credits"`
	Debits          decimal.Decimal `json:"debits"`
	Closing         decimal.Decimal `json:"closing"`
	High            decimal.Decimal `json:"high"`
	Low             decimal.Decimal `json:"low"`
	Swing           decimal.Decimal `json:"swing"`
	VolatilityPct   float64         `json:"volatility_pct"`
	VolatilityLevel Level           `json:"volatility_level"`
}

// Label is the display name of the month, falling back to the raw month.
func (m MonthlySummary) Label() string {
	if m.MonthName != "" {
		return m.MonthName
	}
	return m.Month
}

// Categories holds the credit and debit category breakdowns.
type Categories struct {
	Credits []Category `json:"credits"`
	Debits  []Category `json:"debits"`
}

// Empty reports whether neither side carries any category.
func (c Categories) Empty() bool {
	return len(c.Credits) == 0 && len(c.Debits) == 0
}

// Category is one row of a category breakdown with up to five exemplars.
type Category struct {
	Name       string          `json:"category"`
	Count      int             `json:"count"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
	Top        []Transaction   `json:"top_5_transactions"`
}

// Turnover is the consolidated gross and business turnover with the
// exclusions separating them.
type Turnover struct {
	Gross      GrossTurnover    `json:"gross"`
	Business   BusinessTurnover `json:"business_turnover"`
	Exclusions Exclusions       `json:"exclusions"`
}

// GrossTurnover is the unadjusted total across all accounts.
type GrossTurnover struct {
	TotalCredits decimal.Decimal `json:"total_credits"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	NetFlow      decimal.Decimal `json:"net_flow"`
}

// BusinessTurnover is turnover net of exclusions.
type BusinessTurnover struct {
	NetCredits decimal.Decimal `json:"net_credits"`
	NetDebits  decimal.Decimal `json:"net_debits"`
	NetFlow    decimal.Decimal `json:"net_flow"`
}

// Exclusions are the amounts removed from gross turnover.
type Exclusions struct {
	Credits CreditExclusions `json:"credits"`
	Debits  DebitExclusions  `json:"debits"`
}

type CreditExclusions struct {
	InterAccount       decimal.Decimal `json:"inter_account"`
	RelatedParty       decimal.Decimal `json:"related_party"`
	Reversals          decimal.Decimal `json:"reversals"`
	LoanDisbursement   decimal.Decimal `json:"loan_disbursement"`
	InterestFDDividend decimal.Decimal `json:"interest_fd_dividend"`
	Total              decimal.Decimal `json:"total"`
}

type DebitExclusions struct {
	InterAccount   decimal.Decimal `json:"inter_account"`
	RelatedParty   decimal.Decimal `json:"related_party"`
	ReturnedCheque decimal.Decimal `json:"returned_cheque"`
	Total          decimal.Decimal `json:"total"`
}

// RelatedPartyNet is related-party credits less related-party debits.
func (e Exclusions) RelatedPartyNet() decimal.Decimal {
	return e.Credits.RelatedParty.Sub(e.Debits.RelatedParty)
}

// Transfers are the inter-account transfers detected between the company's
// own accounts.
type Transfers struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Records     []Transfer      `json:"transfers"`
}

// Transfer is a single matched inter-account transfer.
type Transfer struct {
	Date        string          `json:"date"`
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
}
