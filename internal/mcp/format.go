package mcp

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/models"
)

// formatSummary formats the canonical report as markdown.
func formatSummary(r *models.Report, currency string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Statement Analysis: %s\n\n", r.Info.CompanyName))
	if r.Info.PeriodStart != "" || r.Info.PeriodEnd != "" {
		sb.WriteString(fmt.Sprintf("**Period:** %s to %s", r.Info.PeriodStart, r.Info.PeriodEnd))
		if r.Info.TotalMonths > 0 {
			sb.WriteString(fmt.Sprintf(" (%d months)", r.Info.TotalMonths))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("**Schema:** v%s", r.SchemaVersion))
	if r.DeclaredVersion != "" && r.DeclaredVersion != r.SchemaVersion {
		sb.WriteString(fmt.Sprintf(" (declared %s)", r.DeclaredVersion))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("**Transactions:** %s\n\n", common.FormatCount(r.TotalTransactions())))

	sb.WriteString("## Scores\n\n")
	sb.WriteString("| Measure | Result |\n")
	sb.WriteString("|---------|--------|\n")
	integrity := common.FormatNumber(r.Integrity.Score)
	if r.Integrity.Rating != "" {
		integrity += " (" + r.Integrity.Rating + ")"
	}
	sb.WriteString(fmt.Sprintf("| Integrity | %s |\n", cell(integrity)))
	sb.WriteString(fmt.Sprintf("| Kite-flying risk | %s (score %s) |\n", r.KiteFlying.RiskLevel, common.FormatNumber(r.KiteFlying.RiskScore)))
	sb.WriteString(fmt.Sprintf("| Volatility | %s%% %s |\n", common.FormatNumber(r.Volatility.OverallIndex), r.Volatility.OverallLevel))
	sb.WriteString(fmt.Sprintf("| Round figures | %s (%s) |\n",
		common.FormatCount(r.Flags.RoundFigures.Count),
		common.FormatMoney(r.Flags.RoundFigures.TotalAmount, currency)))
	if r.Flags.ReturnedCheques.Count > 0 {
		sb.WriteString(fmt.Sprintf("| Returned cheques | %s (%s) |\n",
			common.FormatCount(r.Flags.ReturnedCheques.Count),
			common.FormatMoney(r.Flags.ReturnedCheques.TotalValue, currency)))
	}
	sb.WriteString("\n")

	if len(r.Accounts) > 0 {
		sb.WriteString("## Accounts\n\n")
		sb.WriteString("| Bank | Account | Type | Credits | Debits | Transactions |\n")
		sb.WriteString("|------|---------|------|---------|--------|--------------|\n")
		for _, a := range r.Accounts {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				cell(a.BankName), cell(a.AccountNumber), a.Classification,
				common.FormatMoney(a.TotalCredits, currency),
				common.FormatMoney(a.TotalDebits, currency),
				common.FormatCount(a.TransactionCount)))
		}
		sb.WriteString("\n")

		sb.WriteString("## Monthly Balances\n\n")
		high, low := "High", "Low"
		if r.IsCurrent() {
			high, low = "Highest (Intraday)", "Lowest (Intraday)"
		}
		for _, a := range r.Accounts {
			if len(a.Monthly) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("### %s %s\n\n", a.BankName, a.AccountNumber))
			sb.WriteString(fmt.Sprintf("| Month | Opening | Credits | Debits | Closing | %s | %s | Volatility |\n", high, low))
			sb.WriteString("|-------|---------|---------|--------|---------|------|-----|------------|\n")
			for _, m := range a.Monthly {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s%% %s |\n",
					cell(m.Label()),
					common.FormatAmount(m.Opening, 2),
					common.FormatAmount(m.Credits, 2),
					common.FormatAmount(m.Debits, 2),
					common.FormatAmount(m.Closing, 2),
					common.FormatAmount(m.High, 2),
					common.FormatAmount(m.Low, 2),
					common.FormatNumber(m.VolatilityPct), m.VolatilityLevel))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Volatility Alerts\n\n")
	if len(r.Volatility.Alerts) == 0 {
		sb.WriteString("No extreme volatility alerts.\n\n")
	} else {
		for _, alert := range r.Volatility.Alerts {
			sb.WriteString("- " + alert + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Recommendations\n\n")
	if len(r.Recommendations) == 0 {
		sb.WriteString("No recommendations.\n")
	} else {
		for _, rec := range r.Recommendations {
			sb.WriteString(fmt.Sprintf("- **[%s]** ", rec.Priority))
			if rec.Category != "" {
				sb.WriteString(rec.Category + ": ")
			}
			sb.WriteString(rec.Text + "\n")
		}
	}

	return sb.String()
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
