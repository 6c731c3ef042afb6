package models

import "github.com/shopspring/decimal"

// Volatility is the overall balance volatility assessment.
type Volatility struct {
	OverallIndex float64  `json:"overall_index"`
	OverallLevel Level    `json:"overall_level"`
	Alerts       []string `json:"alerts"`
	// AlertsDerived is set when Alerts were derived from elevated months
	// because the source supplied none.
	AlertsDerived bool `json:"alerts_derived,omitempty"`
}

// Tier groups integrity checks by severity.
type Tier string

const (
	TierCritical   Tier = "CRITICAL"
	TierWarning    Tier = "WARNING"
	TierCompliance Tier = "COMPLIANCE"
	TierMonitor    Tier = "MONITOR"
)

// CheckStatus is the outcome of an integrity check or kite indicator.
type CheckStatus string

const (
	StatusPass    CheckStatus = "PASS"
	StatusFail    CheckStatus = "FAIL"
	StatusWarning CheckStatus = "WARNING"
	StatusMonitor CheckStatus = "MONITOR"
)

// Integrity is the statement integrity assessment.
type Integrity struct {
	Score        float64          `json:"score"`
	Rating       string           `json:"rating"`
	PointsEarned float64          `json:"points_earned"`
	MaxPoints    int              `json:"max_points"`
	Checks       []IntegrityCheck `json:"checks"`
}

// Percent is PointsEarned as a share of MaxPoints.
func (i Integrity) Percent() float64 {
	if i.MaxPoints == 0 {
		return 0
	}
	return i.PointsEarned / float64(i.MaxPoints) * 100
}

// IntegrityCheck is one scored integrity check.
type IntegrityCheck struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Tier         Tier        `json:"tier"`
	Status       CheckStatus `json:"status"`
	Weight       float64     `json:"weight"`
	PointsEarned float64     `json:"points_earned"`
	Details      string      `json:"details"`
}

// IndicatorSource records how kite-flying indicators were obtained.
type IndicatorSource string

const (
	IndicatorsStructured   IndicatorSource = "structured"
	IndicatorsDescriptions IndicatorSource = "descriptions"
	IndicatorsSynthesized  IndicatorSource = "synthesized"
)

// KiteFlying is the kite-flying (circular fund movement) risk assessment.
type KiteFlying struct {
	RiskScore  float64         `json:"risk_score"`
	RiskLevel  Level           `json:"risk_level"`
	Indicators []KiteIndicator `json:"indicators"`
	Source     IndicatorSource `json:"indicator_source"`
}

// KiteIndicator is one kite-flying check. Points is nil when the source only
// described the indicator and no per-row score can be recovered.
type KiteIndicator struct {
	Name    string      `json:"indicator"`
	Status  CheckStatus `json:"status"`
	Points  *int        `json:"points"`
	Finding string      `json:"finding"`
}

// Flags are the transaction-level review flags.
type Flags struct {
	RoundFigures    RoundFigures    `json:"round_figure_transactions"`
	ReturnedCheques ReturnedCheques `json:"returned_cheques"`
}

// RoundFigures are suspiciously round-valued transactions flagged for review.
type RoundFigures struct {
	Count        int             `json:"count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Transactions []Transaction   `json:"transactions"`
	Note         string          `json:"note,omitempty"`
}

// Truncated reports whether fewer exemplars were supplied than were counted.
func (r RoundFigures) Truncated() bool {
	return len(r.Transactions) < r.Count
}

// ReturnedCheques are cheques returned unpaid.
type ReturnedCheques struct {
	Count        int             `json:"count"`
	Assessment   string          `json:"assessment"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Transactions []Transaction   `json:"transactions"`
}
