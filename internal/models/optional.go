package models

import "github.com/shopspring/decimal"

// RecurringPayments is the statutory and recurring payment compliance check.
// Only v5.x documents carry it.
type RecurringPayments struct {
	Payments   []RecurringPayment `json:"payments"`
	Compliance string             `json:"compliance"`
	RiskLevel  Level              `json:"risk_level"`
	Alerts     []string           `json:"alerts"`
}

// Compliant reports whether the compliance label is a satisfied one.
func (r RecurringPayments) Compliant() bool {
	return r.Compliance == "COMPLIANT" || r.Compliance == "OK"
}

// RecurringPayment is the expected-versus-found tally for one payment type.
type RecurringPayment struct {
	Type          string   `json:"type"`
	Expected      int      `json:"expected_count"`
	Found         int      `json:"found_count"`
	MissingMonths []string `json:"missing_months"`
	Status        string   `json:"status"`
}

// OK reports whether the payment status is a passing one.
func (p RecurringPayment) OK() bool {
	switch p.Status {
	case "OK", "COMPLIANT", "PASS":
		return true
	}
	return false
}

// NonBankFinancing is the detection of financing from outside the banking
// system.
type NonBankFinancing struct {
	RiskLevel Level             `json:"risk_level"`
	Summary   string            `json:"summary,omitempty"`
	Sources   []FinancingSource `json:"sources"`
	Suspected []SuspectedLoan   `json:"suspected_unlicensed"`
}

// FinancingSource is one distinct non-bank financing source.
type FinancingSource struct {
	Type           string          `json:"source_type"`
	Count          int             `json:"count"`
	TotalInflow    decimal.Decimal `json:"total_inflow"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
	Status         string          `json:"status"`
}

// SuspectedLoan is a transaction that looks like unlicensed lending.
type SuspectedLoan struct {
	Date   string          `json:"date"`
	Party  string          `json:"counterparty"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// Counterparties is the ranking of who pays and is paid by the company.
type Counterparties struct {
	TopPayers     []Party          `json:"top_payers"`
	TopPayees     []Party          `json:"top_payees"`
	Concentration Concentration    `json:"concentration_risk"`
	BothSides     []BothSidesParty `json:"parties_both_sides"`
}

// Party is a ranked counterparty.
type Party struct {
	Rank             string          `json:"rank"`
	Name             string          `json:"party_name"`
	TransactionCount int             `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Percentage       float64         `json:"percentage"`
	RelatedParty     bool            `json:"is_related_party"`
}

// Concentration measures how dominant the largest counterparties are.
type Concentration struct {
	RiskLevel     Level   `json:"risk_level"`
	Top1PayerPct  float64 `json:"top1_payer_pct"`
	Top3PayersPct float64 `json:"top3_payers_pct"`
	Top1PayeePct  float64 `json:"top1_payee_pct"`
	Top3PayeesPct float64 `json:"top3_payees_pct"`
}

// BothSidesParty is a counterparty that both pays and is paid.
type BothSidesParty struct {
	Name         string          `json:"party_name"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
}
