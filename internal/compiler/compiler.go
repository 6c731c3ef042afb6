// Package compiler renders a canonical report and its chart series into a
// single self-contained HTML document.
//
// Rendering goes through html/template, so every interpolated value is
// escaped for its context and data embedded in scripts is JSON encoded.
// Output depends only on the report and chart data: the compiler reads no
// clock and never reorders lists.
package compiler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/statement-report/internal/charts"
	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/models"
)

//go:embed templates
var templateFS embed.FS

// Compiler holds the parsed report templates. It is safe for concurrent use.
type Compiler struct {
	templates *template.Template
	currency  string
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithCurrency sets the label printed before amounts (default RM).
func WithCurrency(label string) Option {
	return func(c *Compiler) {
		if label != "" {
			c.currency = label
		}
	}
}

// New parses the embedded templates.
func New(opts ...Option) (*Compiler, error) {
	c := &Compiler{currency: common.DefaultCurrency}
	for _, opt := range opts {
		opt(c)
	}

	templates, err := template.New("report.html").
		Funcs(funcs()).
		ParseFS(templateFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report templates: %w", err)
	}
	c.templates = templates
	return c, nil
}

// Compile renders r and its chart data into an HTML document.
func (c *Compiler) Compile(r *models.Report, data charts.Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf, r, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render writes the HTML document for r to w.
func (c *Compiler) Render(w io.Writer, r *models.Report, data charts.Data) error {
	if r == nil {
		return fmt.Errorf("render report: nil report")
	}
	if err := c.templates.ExecuteTemplate(w, "report.html", newView(r, data, c.currency)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"money":    func(d decimal.Decimal) string { return common.FormatAmount(d, 2) },
		"whole":    func(d decimal.Decimal) string { return common.FormatAmount(d, 0) },
		"millions": common.FormatMillions,
		"count":    common.FormatCount,
		"num":      common.FormatNumber,
		"pct0":     func(v float64) string { return fmt.Sprintf("%.0f", v) },
		"pct1":     func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"negative": func(d decimal.Decimal) bool { return d.IsNegative() },
		"low":      func(d decimal.Decimal) bool { return d.LessThan(lowBalance) },
		"lower":    strings.ToLower,
		"truncate": truncate,
		"tail":     tail,
		"points": func(p *int) string {
			if p == nil {
				return "-"
			}
			return fmt.Sprint(*p)
		},
		"levelColor":  levelColor,
		"statusBadge": statusBadge,
		"tierColor":   tierColor,
		"passColor": func(s models.CheckStatus) string {
			if s == models.StatusPass {
				return "accent"
			}
			return "danger"
		},
		"sourceColor": func(status string) string {
			switch status {
			case "INFO":
				return "info"
			case "MONITOR":
				return "warn"
			default:
				return "danger"
			}
		},
		"paymentBadge": func(p models.RecurringPayment) string {
			if p.OK() {
				return "LOW"
			}
			return "EXTREME"
		},
		"join": func(list []string, empty string) string {
			if len(list) == 0 {
				return empty
			}
			return strings.Join(list, ", ")
		},
	}
}

// truncate keeps the first n runes of s.
func truncate(n int, s string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// tail keeps the last n runes of s, used to shorten account numbers.
func tail(n int, s string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func levelColor(level models.Level) string {
	switch level {
	case models.LevelLow:
		return "accent"
	case models.LevelModerate:
		return "warn"
	default:
		return "danger"
	}
}

// statusBadge maps an indicator status onto the volatility badge palette.
func statusBadge(s models.CheckStatus) string {
	switch s {
	case models.StatusPass:
		return "LOW"
	case models.StatusMonitor, models.StatusWarning:
		return "MODERATE"
	default:
		return "EXTREME"
	}
}

func tierColor(t models.Tier) string {
	switch t {
	case models.TierCritical:
		return "danger"
	case models.TierWarning:
		return "warn"
	case models.TierCompliance:
		return "purple"
	default:
		return "info"
	}
}
