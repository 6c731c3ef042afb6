// Package charts projects the canonical report into the plain series the
// report's charts are drawn from.
package charts

import (
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/statement-report/internal/models"
)

// Data is every series the compiled report embeds.
type Data struct {
	CreditsPie Pie         `json:"credits_pie"`
	DebitsPie  Pie         `json:"debits_pie"`
	Volatility []BarSeries `json:"volatility"`
}

// Pie is a label/value distribution.
type Pie struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// BarSeries is one account's monthly volatility.
type BarSeries struct {
	Name string    `json:"name"`
	X    []string  `json:"x"`
	Y    []float64 `json:"y"`
}

// Project builds the chart series for r. Slices are never nil, so they
// always serialise as arrays.
func Project(r *models.Report) Data {
	data := Data{
		CreditsPie: pie(r.Categories.Credits),
		DebitsPie:  pie(r.Categories.Debits),
		Volatility: make([]BarSeries, 0, len(r.Accounts)),
	}

	for _, a := range r.Accounts {
		s := BarSeries{
			Name: a.BankName,
			X:    make([]string, 0, len(a.Monthly)),
			Y:    make([]float64, 0, len(a.Monthly)),
		}
		for _, m := range a.Monthly {
			s.X = append(s.X, MonthLabel(m))
			s.Y = append(s.Y, m.VolatilityPct)
		}
		data.Volatility = append(data.Volatility, s)
	}
	return data
}

func pie(cats []models.Category) Pie {
	p := Pie{
		Labels: make([]string, 0, len(cats)),
		Values: make([]float64, 0, len(cats)),
	}
	for _, c := range cats {
		p.Labels = append(p.Labels, c.Name)
		p.Values = append(p.Values, c.Percentage)
	}
	return p
}

// MonthLabel renders an ISO YYYY-MM month as "Mon YYYY". Other forms fall
// back to the supplied month name, then to the raw month.
func MonthLabel(m models.MonthlySummary) string {
	if year, month, ok := parseISOMonth(m.Month); ok {
		return month.String()[:3] + " " + year
	}
	if m.MonthName != "" {
		return m.MonthName
	}
	return m.Month
}

func parseISOMonth(s string) (string, time.Month, bool) {
	year, rest, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found || len(year) != 4 {
		return "", 0, false
	}
	if _, err := strconv.Atoi(year); err != nil {
		return "", 0, false
	}
	// tolerate a trailing day, e.g. 2024-06-30
	monthPart, _, _ := strings.Cut(rest, "-")
	n, err := strconv.Atoi(monthPart)
	if err != nil || n < 1 || n > 12 {
		return "", 0, false
	}
	return year, time.Month(n), true
}
