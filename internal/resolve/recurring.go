package resolve

import (
	"strings"

	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/models"
)

// Compliance labels produced by keyword classification.
const (
	ComplianceAlert     = "ALERT"
	ComplianceCompliant = "COMPLIANT"
)

// knownPaymentTypes are the per-type sub-sections a recurring payments block
// may carry instead of a payments list.
var knownPaymentTypes = []string{"EPF/KWSP", "SOCSO/PERKESO", "TAX/LHDN", "RENT", "UTILITIES", "LOAN_REPAYMENT"}

// CompliancePolicy classifies a free-text compliance assessment by keyword.
// Matching is a case-insensitive substring test and alert keywords are tried
// first. The lists are heuristics, not a contract.
type CompliancePolicy struct {
	AlertKeywords     []string
	CompliantKeywords []string
}

// DefaultCompliancePolicy returns the keyword lists observed in analyzer
// output.
func DefaultCompliancePolicy() CompliancePolicy {
	return CompliancePolicy{
		AlertKeywords:     []string{"MISSING", "ALERT", "NOT"},
		CompliantKeywords: []string{"OK", "MET", "COMPLIANT"},
	}
}

// Classify maps free text to a compliance label and risk level. Text that
// matches neither list is passed through unchanged at LOW risk.
func (p CompliancePolicy) Classify(text string) (string, models.Level) {
	upper := strings.ToUpper(text)
	if containsAny(upper, p.AlertKeywords) {
		return ComplianceAlert, models.LevelModerate
	}
	if containsAny(upper, p.CompliantKeywords) {
		return ComplianceCompliant, models.LevelLow
	}
	return text, models.LevelLow
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		k = strings.ToUpper(strings.TrimSpace(k))
		if k != "" && strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Compliance resolves the compliance label and risk level of a recurring
// payments assessment, which is either free text or an object.
func Compliance(assessment any, policy CompliancePolicy) (string, models.Level) {
	switch a := assessment.(type) {
	case string:
		return policy.Classify(a)
	default:
		n, ok := document.AsNode(a)
		if !ok {
			return ComplianceCompliant, models.LevelLow
		}
		label := FirstString(n, ComplianceCompliant, "statutory_compliance", "compliance")
		return label, models.Level(n.Str("risk_level", string(models.LevelLow)))
	}
}

// RecurringPayments resolves the payment rows of a recurring payments block.
// An explicit list wins (payments, statutory_payments, payment_types);
// otherwise one row is synthesised per known payment type sub-section, with
// the expected count defaulting to the report's month count.
func RecurringPayments(rec document.Node, totalMonths int) []models.RecurringPayment {
	if list := FirstNonEmptyList(rec, "payments", "statutory_payments", "payment_types"); len(list) > 0 {
		rows := make([]models.RecurringPayment, 0, len(list))
		for _, p := range document.Nodes(list) {
			rows = append(rows, models.RecurringPayment{
				Type:          FirstString(p, "", "type", "payment_type"),
				Expected:      FirstInt(p, 0, "expected_count", "expected"),
				Found:         FirstInt(p, 0, "found_count", "found", "count"),
				MissingMonths: p.Strings("missing_months"),
				Status:        p.Str("status", "OK"),
			})
		}
		return rows
	}

	rows := []models.RecurringPayment{}
	for _, pt := range knownPaymentTypes {
		data := rec.Node(strings.ReplaceAll(strings.ToLower(pt), "/", "_"))
		if len(data) == 0 {
			data = rec.Node(pt)
		}
		if len(data) == 0 {
			continue
		}
		rows = append(rows, models.RecurringPayment{
			Type:          pt,
			Expected:      FirstInt(data, totalMonths, "expected"),
			Found:         FirstInt(data, 0, "found", "count"),
			MissingMonths: data.Strings("missing_months"),
			Status:        data.Str("status", "OK"),
		})
	}
	return rows
}

// RecurringAlerts resolves the alert list: alerts, then warnings.
func RecurringAlerts(rec document.Node) []string {
	for _, k := range []string{"alerts", "warnings"} {
		if alerts := rec.Strings(k); len(alerts) > 0 {
			return alerts
		}
	}
	return []string{}
}
