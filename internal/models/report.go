// Package models defines the canonical report model built from analysis documents
package models

import (
	"github.com/shopspring/decimal"

	"github.com/bobmcallan/statement-report/internal/schema"
)

// Report is the canonical, version-independent view of one analysis document.
// It is built once by the builder package and only read afterwards.
type Report struct {
	Version            schema.Version     `json:"-"`
	SchemaVersion      string             `json:"schema_version"`
	DeclaredVersion    string             `json:"declared_version,omitempty"`
	IntegrityMaxPoints int                `json:"integrity_max_points"`
	Info               ReportInfo         `json:"report_info"`
	Accounts           []Account          `json:"accounts"`
	Turnover           Turnover           `json:"turnover"`
	Categories         Categories         `json:"categories"`
	Volatility         Volatility         `json:"volatility"`
	Integrity          Integrity          `json:"integrity"`
	KiteFlying         KiteFlying         `json:"kite_flying"`
	Flags              Flags              `json:"flags"`
	Recurring          *RecurringPayments `json:"recurring_payments,omitempty"`
	NonBank            *NonBankFinancing  `json:"non_bank_financing,omitempty"`
	Counterparties     *Counterparties    `json:"counterparties,omitempty"`
	Transfers          Transfers          `json:"inter_account_transfers"`
	Observations       Observations       `json:"observations"`
	Recommendations    []Recommendation   `json:"recommendations"`
}

// IsCurrent reports whether the report was built from a v5.x document.
func (r *Report) IsCurrent() bool {
	return r.Version == schema.Current
}

// TotalTransactions sums the transaction counts of every account.
func (r *Report) TotalTransactions() int {
	total := 0
	for _, a := range r.Accounts {
		total += a.TransactionCount
	}
	return total
}

// ReportInfo identifies the company and reporting period.
type ReportInfo struct {
	CompanyName    string         `json:"company_name"`
	PeriodStart    string         `json:"period_start,omitempty"`
	PeriodEnd      string         `json:"period_end,omitempty"`
	TotalMonths    int            `json:"total_months"`
	GeneratedAt    string         `json:"generated_at,omitempty"` // only when the source supplies one
	RelatedParties []RelatedParty `json:"related_parties"`
}

// RelatedParty is a declared related party of the company.
type RelatedParty struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
}

// Transaction is an exemplar transaction attached to a category or flag.
type Transaction struct {
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	Counterparty string          `json:"counterparty,omitempty"`
	Type         string          `json:"type,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Account      string          `json:"account,omitempty"`
	FlagReason   string          `json:"flag_reason,omitempty"`
}

// Label is the counterparty when known, otherwise the description.
func (t Transaction) Label() string {
	if t.Counterparty != "" {
		return t.Counterparty
	}
	return t.Description
}

// Observations holds the analyst's positive findings and concerns.
type Observations struct {
	Positive []string `json:"positive"`
	Concerns []string `json:"concerns"`
}

// Priority ranks a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Recommendation is a single analyst recommendation.
type Recommendation struct {
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	Text     string   `json:"recommendation"`
}
