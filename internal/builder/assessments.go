package builder

import (
	"fmt"

	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/models"
	"github.com/bobmcallan/statement-report/internal/resolve"
)

// roundFigureWarnThreshold is the round-figure count above which the
// synthesized Round Amount Patterns check warns.
const roundFigureWarnThreshold = 5

func (b *builder) volatility(accounts []models.Account) models.Volatility {
	vol := b.doc.Node("volatility")
	out := models.Volatility{
		OverallIndex: vol.Float("overall_index"),
		OverallLevel: models.Level(vol.Str("overall_level", string(models.LevelLow))),
		Alerts:       vol.Strings("alerts"),
	}
	if len(out.Alerts) > 0 {
		return out
	}

	out.AlertsDerived = true
	for _, a := range accounts {
		for _, m := range a.Monthly {
			if !m.VolatilityLevel.Elevated() {
				continue
			}
			out.Alerts = append(out.Alerts, fmt.Sprintf("%s (%s): %.0f%% volatility - %s",
				m.Label(), a.BankName, m.VolatilityPct, m.VolatilityLevel))
		}
	}
	return out
}

// integrity ignores any max points the document embeds: the maximum is a
// property of the schema family.
func (b *builder) integrity(maxPoints int) models.Integrity {
	in := b.doc.Node("integrity_score")

	earned, _ := document.ToFloat(firstValue(in, "points_earned", "total_points"))
	out := models.Integrity{
		Score:        in.Float("score"),
		Rating:       in.Str("rating", "N/A"),
		PointsEarned: earned,
		MaxPoints:    maxPoints,
	}

	checks := in.Nodes("checks")
	out.Checks = make([]models.IntegrityCheck, 0, len(checks))
	for _, c := range checks {
		out.Checks = append(out.Checks, models.IntegrityCheck{
			ID:           c.Str("id", ""),
			Name:         c.Str("name", ""),
			Tier:         models.Tier(c.Str("tier", string(models.TierMonitor))),
			Status:       models.CheckStatus(c.Str("status", string(models.StatusPass))),
			Weight:       c.Float("weight"),
			PointsEarned: c.Float("points_earned"),
			Details:      c.Str("details", ""),
		})
	}
	return out
}

func firstValue(n document.Node, keys ...string) any {
	v, _ := resolve.First(n, keys...)
	return v
}

func (b *builder) kiteFlying(roundCount int) models.KiteFlying {
	kite := b.doc.Node("kite_flying")
	out := models.KiteFlying{
		RiskScore: kite.Float("risk_score"),
		RiskLevel: models.Level(kite.Str("risk_level", string(models.LevelLow))),
	}

	indicators := kite.List("indicators")
	if len(indicators) > 0 {
		switch indicators[0].(type) {
		case string:
			out.Indicators = describedIndicators(indicators, kite.List("detailed_findings"), out.RiskScore)
			out.Source = models.IndicatorsDescriptions
		default:
			out.Indicators = structuredIndicators(document.Nodes(indicators))
			out.Source = models.IndicatorsStructured
		}
	}

	if len(out.Indicators) == 0 {
		out.Indicators = defaultIndicators(roundCount)
		out.Source = models.IndicatorsSynthesized
	}
	return out
}

func structuredIndicators(list []document.Node) []models.KiteIndicator {
	out := make([]models.KiteIndicator, 0, len(list))
	for _, ind := range list {
		points := resolve.FirstInt(ind, 0, "points")
		out = append(out, models.KiteIndicator{
			Name:    resolve.FirstString(ind, "", "indicator", "name"),
			Status:  models.CheckStatus(ind.Str("status", string(models.StatusPass))),
			Points:  &points,
			Finding: ind.Str("finding", ""),
		})
	}
	return out
}

// describedIndicators pairs bare indicator descriptions with the finding at
// the same position. Per-row status cannot be recovered from this shape, so
// every row takes the status implied by the aggregate score.
func describedIndicators(list, findings []any, score float64) []models.KiteIndicator {
	status := models.StatusPass
	if score > 0 {
		status = models.StatusWarning
	}

	out := make([]models.KiteIndicator, 0, len(list))
	for i, v := range list {
		name, ok := v.(string)
		if !ok {
			continue
		}
		finding := name
		if i < len(findings) {
			if f, ok := document.ToString(findings[i]); ok {
				finding = f
			}
		}
		out = append(out, models.KiteIndicator{Name: name, Status: status, Finding: finding})
	}
	return out
}

func defaultIndicators(roundCount int) []models.KiteIndicator {
	roundStatus, roundPoints := models.StatusPass, 0
	if roundCount > roundFigureWarnThreshold {
		roundStatus, roundPoints = models.StatusWarning, 2
	}

	pass := func(name, finding string) models.KiteIndicator {
		zero := 0
		return models.KiteIndicator{Name: name, Status: models.StatusPass, Points: &zero, Finding: finding}
	}

	return []models.KiteIndicator{
		pass("Circular Transfers", "No A→B→A patterns detected"),
		pass("Month-End Concentration", "Normal distribution"),
		{
			Name:    "Round Amount Patterns",
			Status:  roundStatus,
			Points:  &roundPoints,
			Finding: fmt.Sprintf("%d round figure transactions", roundCount),
		},
		pass("Timing Exploitation", "No suspicious timing patterns"),
		pass("Suspicious Balance Spikes", "Balance movements within normal range"),
		pass("Same Amount In/Out", "No matching in/out amounts detected"),
		pass("Vague Descriptions", "Transaction descriptions are clear"),
	}
}

func (b *builder) flags() models.Flags {
	rf := resolve.RoundFigures(b.doc)
	rc := b.doc.Node("flags").Node("returned_cheques")

	retList := rc.Nodes("transactions")
	returned := make([]models.Transaction, 0, len(retList))
	for _, t := range retList {
		returned = append(returned, resolve.Transaction(t, ""))
	}

	return models.Flags{
		RoundFigures: models.RoundFigures{
			Count:        rf.Int("count"),
			TotalAmount:  rf.Decimal("total_amount"),
			Transactions: resolve.RoundFigureTransactions(rf),
			Note:         rf.Str("note", ""),
		},
		ReturnedCheques: models.ReturnedCheques{
			Count:        rc.Int("count"),
			Assessment:   rc.Str("assessment", "ACCEPTABLE"),
			TotalValue:   rc.Decimal("total_value"),
			Transactions: returned,
		},
	}
}
