package compiler

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/statement-report/internal/builder"
	"github.com/bobmcallan/statement-report/internal/charts"
	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/models"
)

const fullDocument = `{
	"report_info": {
		"company_name": "Acme Trading Sdn Bhd",
		"period_start": "2024-01-01",
		"period_end": "2024-06-30",
		"total_months": 6,
		"schema_version": "5.0",
		"related_parties": [{"name": "Jane Tan", "relationship": "Director"}, "Tan Holdings"]
	},
	"accounts": [{
		"bank_name": "Alpha Bank",
		"account_number": "1234567890",
		"classification": "PRIMARY",
		"total_credits": 1250000.50,
		"total_debits": 1100000,
		"transaction_count": 1532,
		"closing_balance": 15000,
		"monthly_summary": [
			{"month": "2024-01", "opening": 10000, "credits": 200000, "debits": 190000, "closing": 20000,
			 "highest_intraday": 90000, "lowest_intraday": -500, "swing": 90500, "volatility_pct": 452.5, "volatility_level": "EXTREME"},
			{"month": "2024-02", "opening": 20000, "credits": 210000, "debits": 215000, "closing": 15000,
			 "highest_intraday": 40000, "lowest_intraday": 9000, "swing": 31000, "volatility_pct": 155, "volatility_level": "HIGH"}
		]
	}],
	"categories": {
		"credits": [{"category": "Sales", "count": 120, "amount": 900000, "percentage": 72.0,
			"top_5_transactions": [{"date": "2024-01-05", "description": "INV 001", "amount": 50000}]}],
		"debits": [{"category": "Suppliers", "count": 80, "amount": 700000, "percentage": 63.6}]
	},
	"consolidated": {"gross": {"total_credits": 1250000.50, "total_debits": 1100000, "net_flow": 150000.50}},
	"volatility": {"overall_index": 303.75, "overall_level": "EXTREME"},
	"integrity_score": {"score": 82, "rating": "GOOD", "points_earned": 19, "checks": [
		{"id": "C1", "name": "Balance continuity", "tier": "CRITICAL", "status": "PASS", "weight": 5, "points_earned": 5}
	]},
	"recurring_payments": {"assessment": "ALL OK", "epf": {"expected": 6, "found": 6, "status": "OK"}},
	"recommendations": [{"priority": "HIGH", "category": "Liquidity", "recommendation": "Review overdraft usage"}]
}`

func compileDoc(t *testing.T, raw string) string {
	t.Helper()
	doc, err := document.Parse("test.json", []byte(raw))
	require.NoError(t, err)
	r, err := builder.Build(doc)
	require.NoError(t, err)
	return compileReport(t, r)
}

func compileReport(t *testing.T, r *models.Report) string {
	t.Helper()
	c, err := New()
	require.NoError(t, err)
	out, err := c.Compile(r, charts.Project(r))
	require.NoError(t, err)
	return string(out)
}

func TestNew_ParsesEmbeddedTemplates(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	for _, name := range []string{"report.html", "styles", "overview", "category-table", "party-table", "script"} {
		assert.NotNil(t, c.templates.Lookup(name), name)
	}
}

func TestCompile_Idempotent(t *testing.T) {
	doc, err := document.Parse("test.json", []byte(fullDocument))
	require.NoError(t, err)
	r, err := builder.Build(doc)
	require.NoError(t, err)

	c, err := New()
	require.NoError(t, err)
	first, err := c.Compile(r, charts.Project(r))
	require.NoError(t, err)
	second, err := c.Compile(r, charts.Project(r))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second))
}

func TestCompile_RendersSections(t *testing.T) {
	html := compileDoc(t, fullDocument)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Acme Trading Sdn Bhd")
	assert.Contains(t, html, "Schema v5.0")
	assert.Contains(t, html, "1,250,000.50")
	assert.Contains(t, html, "1,532")
	assert.Contains(t, html, "Highest (Intraday)")
	assert.Contains(t, html, "Jane Tan, Tan Holdings")
	assert.Contains(t, html, "Review overdraft usage")
	assert.Contains(t, html, "23-point system")
	for _, name := range []string{"overview", "accounts", "turnover", "categories", "volatility", "flags", "integrity", "related", "recurring", "recommendations"} {
		assert.Contains(t, html, fmt.Sprintf(`id="tab-%s"`, name))
		assert.Contains(t, html, fmt.Sprintf(`data-tab="%s"`, name))
	}
}

func TestCompile_OmitsAbsentOptionalSections(t *testing.T) {
	html := compileDoc(t, `{"report_info":{"company_name":"Solo"}}`)

	for _, name := range []string{"counterparties", "recurring", "nonbank"} {
		assert.NotContains(t, html, fmt.Sprintf(`id="tab-%s"`, name))
		assert.NotContains(t, html, fmt.Sprintf(`data-tab="%s"`, name))
	}
	assert.Contains(t, html, "No integrity checks data available")
	assert.Contains(t, html, "No recommendations")
	assert.Contains(t, html, "None specified")
	assert.Contains(t, html, "✓ No extreme volatility alerts")
	assert.NotContains(t, html, "Generated:")
	assert.NotContains(t, html, "Inter-Account Transfers (")
}

func TestCompile_FirstTabActive(t *testing.T) {
	html := compileDoc(t, `{}`)
	assert.Contains(t, html, `class="nav-tab active" data-tab="overview"`)
	assert.Equal(t, 1, strings.Count(html, "nav-tab active"))
}

func TestCompile_EscapesDocumentText(t *testing.T) {
	html := compileDoc(t, `{
		"report_info":{"company_name":"<script>alert(1)</script>"},
		"flags":{"round_figure_transactions":{"count":1,"transactions":[{"date":"2024-01-01","description":"</script><b>x</b>","amount":1000}]}}
	}`)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, html, "</script><b>x</b>")
}

func TestCompile_RoundFigureTruncationNote(t *testing.T) {
	var txns []string
	for i := 0; i < 10; i++ {
		txns = append(txns, fmt.Sprintf(`{"date":"2024-01-%02d","description":"CASH DEP","amount":10000}`, i+1))
	}
	html := compileDoc(t, fmt.Sprintf(`{"flags":{"round_figure_transactions":{"count":12,"transactions":[%s]}}}`, strings.Join(txns, ",")))
	assert.Contains(t, html, "Showing 10 of 12 transactions")

	complete := compileDoc(t, `{"flags":{"round_figure_transactions":{"count":1,"transactions":[{"amount":5000}]}}}`)
	assert.NotContains(t, complete, "Showing ")
}

func TestCompile_InteractionContract(t *testing.T) {
	html := compileDoc(t, fullDocument)

	for _, fn := range []string{
		"function showTab(", "function toggleSection(", "function toggleDetails(",
		"function toggleTop5(", "function showModal(", "function closeModal(", "function toggleTheme(",
	} {
		assert.Contains(t, html, fn)
	}
	assert.Contains(t, html, `id="roundFigureModal"`)
	assert.Contains(t, html, `id="modalRoundFigureTableBody"`)
	assert.Contains(t, html, `class="theme-toggle"`)
	assert.Contains(t, html, `id="cr-top5-0"`)
	assert.Contains(t, html, `id="creditsPieChart"`)
	assert.Contains(t, html, `id="volatilityChart"`)
	assert.Contains(t, html, `"credits_pie":{"labels":["Sales"]`)
}

func TestCompile_FooterTimestampOnlyWhenSupplied(t *testing.T) {
	html := compileDoc(t, `{"report_info":{"generated_at":"2024-07-01T09:00:00"}}`)
	assert.Contains(t, html, "Generated: 2024-07-01T09:00:00")
}

func TestCompile_CurrencyOption(t *testing.T) {
	r, err := builder.Build(map[string]any{})
	require.NoError(t, err)
	c, err := New(WithCurrency("SGD"))
	require.NoError(t, err)
	out, err := c.Compile(r, charts.Project(r))
	require.NoError(t, err)
	assert.Contains(t, string(out), "SGD 0.00M")
}

func TestRender_NilReport(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.Error(t, c.Render(&buf, nil, charts.Data{}))
}

func TestTabs_OptionalOrder(t *testing.T) {
	r := &models.Report{
		Counterparties: &models.Counterparties{},
		NonBank:        &models.NonBankFinancing{},
	}
	var names []string
	for _, tb := range tabs(r) {
		names = append(names, tb.Name)
	}
	assert.Equal(t, []string{
		"overview", "accounts", "turnover", "categories", "counterparties",
		"volatility", "flags", "integrity", "related", "nonbank", "recommendations",
	}, names)
}

func TestScoreClasses(t *testing.T) {
	assert.Equal(t, "excellent", integrityClass(95))
	assert.Equal(t, "good", integrityClass(75))
	assert.Equal(t, "warning", integrityClass(60))
	assert.Equal(t, "danger", integrityClass(10))
	assert.Equal(t, "good", kiteClass(models.LevelLow))
	assert.Equal(t, "warning", kiteClass(models.LevelMedium))
	assert.Equal(t, "danger", kiteClass(models.LevelHigh))
	assert.Equal(t, "warning", volatilityClass(models.LevelHigh))
	assert.Equal(t, "danger", volatilityClass(models.LevelExtreme))
}

func TestTruncateAndTail(t *testing.T) {
	assert.Equal(t, "abc", truncate(3, "abcdef"))
	assert.Equal(t, "ab", truncate(3, "ab"))
	assert.Equal(t, "7890", tail(4, "1234567890"))
	assert.Equal(t, "12", tail(4, "12"))
}
