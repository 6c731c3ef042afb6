// Package workbook exports the canonical report model as an XLSX workbook.
package workbook

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/bobmcallan/statement-report/internal/models"
)

// Sheet names in workbook order.
const (
	SheetSummary    = "Summary"
	SheetAccounts   = "Accounts"
	SheetMonthly    = "Monthly"
	SheetCategories = "Categories"
	SheetIntegrity  = "Integrity"
	SheetFlags      = "Flags"
)

// ContentType is the media type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type sheet struct {
	name   string
	header []string
	rows   [][]any
	widths []float64
}

// Write writes the workbook for r to w.
func Write(w io.Writer, r *models.Report) error {
	if r == nil {
		return fmt.Errorf("write workbook: nil report")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	for i, s := range sheets(r) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		if err := writeSheet(f, s, bold); err != nil {
			return fmt.Errorf("write workbook sheet %s: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Bytes returns the workbook for r.
func Bytes(r *models.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]any, len(s.header))
	for i, h := range s.header {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(s.name, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func sheets(r *models.Report) []sheet {
	return []sheet{
		summarySheet(r),
		accountsSheet(r),
		monthlySheet(r),
		categoriesSheet(r),
		integritySheet(r),
		flagsSheet(r),
	}
}

func summarySheet(r *models.Report) sheet {
	t := r.Turnover
	rows := [][]any{
		{"Company", r.Info.CompanyName},
		{"Period Start", r.Info.PeriodStart},
		{"Period End", r.Info.PeriodEnd},
		{"Months", r.Info.TotalMonths},
		{"Schema Version", r.SchemaVersion},
		{"Declared Version", r.DeclaredVersion},
		{"Accounts", len(r.Accounts)},
		{"Transactions", r.TotalTransactions()},
		{"Gross Credits", amount(t.Gross.TotalCredits)},
		{"Gross Debits", amount(t.Gross.TotalDebits)},
		{"Gross Net Flow", amount(t.Gross.NetFlow)},
		{"Business Net Credits", amount(t.Business.NetCredits)},
		{"Business Net Debits", amount(t.Business.NetDebits)},
		{"Business Net Flow", amount(t.Business.NetFlow)},
		{"Integrity Score", r.Integrity.Score},
		{"Integrity Rating", r.Integrity.Rating},
		{"Integrity Points", fmt.Sprintf("%g / %d", r.Integrity.PointsEarned, r.Integrity.MaxPoints)},
		{"Kite Flying Score", r.KiteFlying.RiskScore},
		{"Kite Flying Risk", string(r.KiteFlying.RiskLevel)},
		{"Volatility Index", r.Volatility.OverallIndex},
		{"Volatility Level", string(r.Volatility.OverallLevel)},
	}
	if r.Info.GeneratedAt != "" {
		rows = append(rows, []any{"Generated At", r.Info.GeneratedAt})
	}
	return sheet{
		name:   SheetSummary,
		header: []string{"Field", "Value"},
		rows:   rows,
		widths: []float64{24, 40},
	}
}

func accountsSheet(r *models.Report) sheet {
	rows := make([][]any, 0, len(r.Accounts))
	for _, a := range r.Accounts {
		rows = append(rows, []any{
			a.BankName, a.AccountNumber, string(a.Classification),
			amount(a.TotalCredits), amount(a.TotalDebits),
			a.TransactionCount, amount(a.ClosingBalance),
		})
	}
	return sheet{
		name:   SheetAccounts,
		header: []string{"Bank", "Account Number", "Classification", "Credits", "Debits", "Transactions", "Closing Balance"},
		rows:   rows,
		widths: []float64{24, 20, 16, 16, 16, 14, 16},
	}
}

func monthlySheet(r *models.Report) sheet {
	var rows [][]any
	for _, a := range r.Accounts {
		for _, m := range a.Monthly {
			rows = append(rows, []any{
				a.BankName, a.AccountNumber, m.Label(),
				amount(m.Opening), amount(m.Credits), amount(m.Debits), amount(m.Closing),
				amount(m.High), amount(m.Low), amount(m.Swing),
				m.VolatilityPct, string(m.VolatilityLevel),
			})
		}
	}
	high, low := "Highest", "Lowest"
	if r.IsCurrent() {
		high, low = "Highest (Intraday)", "Lowest (Intraday)"
	}
	return sheet{
		name:   SheetMonthly,
		header: []string{"Bank", "Account Number", "Month", "Opening", "Credits", "Debits", "Closing", high, low, "Swing", "Volatility %", "Volatility Level"},
		rows:   rows,
		widths: []float64{24, 20, 12},
	}
}

func categoriesSheet(r *models.Report) sheet {
	var rows [][]any
	add := func(side string, list []models.Category) {
		for _, c := range list {
			rows = append(rows, []any{side, c.Name, c.Count, amount(c.Amount), c.Percentage})
		}
	}
	add("CREDIT", r.Categories.Credits)
	add("DEBIT", r.Categories.Debits)
	return sheet{
		name:   SheetCategories,
		header: []string{"Side", "Category", "Count", "Amount", "Percentage"},
		rows:   rows,
		widths: []float64{10, 32, 10, 16, 12},
	}
}

func integritySheet(r *models.Report) sheet {
	rows := make([][]any, 0, len(r.Integrity.Checks))
	for _, c := range r.Integrity.Checks {
		rows = append(rows, []any{c.ID, c.Name, string(c.Tier), string(c.Status), c.Weight, c.PointsEarned, c.Details})
	}
	return sheet{
		name:   SheetIntegrity,
		header: []string{"ID", "Check", "Tier", "Status", "Weight", "Points", "Details"},
		rows:   rows,
		widths: []float64{8, 32, 14, 10, 8, 8, 48},
	}
}

func flagsSheet(r *models.Report) sheet {
	var rows [][]any
	for _, k := range r.KiteFlying.Indicators {
		var points any = ""
		if k.Points != nil {
			points = *k.Points
		}
		rows = append(rows, []any{"Kite Flying", k.Name, string(k.Status), points, k.Finding, ""})
	}
	for _, t := range r.Flags.RoundFigures.Transactions {
		rows = append(rows, []any{"Round Figure", t.Date, t.Type, amount(t.Amount), t.Description, t.Account})
	}
	for _, t := range r.Flags.ReturnedCheques.Transactions {
		rows = append(rows, []any{"Returned Cheque", t.Date, t.Type, amount(t.Amount), t.Label(), t.Account})
	}
	for _, alert := range r.Volatility.Alerts {
		rows = append(rows, []any{"Volatility Alert", "", "", "", alert, ""})
	}
	if rec := r.Recurring; rec != nil {
		for _, p := range rec.Payments {
			rows = append(rows, []any{"Recurring Payment", p.Type, p.Status, p.Found, strings.Join(p.MissingMonths, ", "), ""})
		}
	}
	return sheet{
		name:   SheetFlags,
		header: []string{"Flag", "Item", "Status / Type", "Value", "Detail", "Account"},
		rows:   rows,
		widths: []float64{18, 28, 14, 14, 48, 18},
	}
}

// amount writes money as a number cell.
func amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
