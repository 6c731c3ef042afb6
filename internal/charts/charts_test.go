package charts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/statement-report/internal/models"
)

func TestProject_EmptyReportSerialisesArrays(t *testing.T) {
	data := Project(&models.Report{})

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"credits_pie":{"labels":[],"values":[]},"debits_pie":{"labels":[],"values":[]},"volatility":[]}`, string(raw))
}

func TestProject_Series(t *testing.T) {
	r := &models.Report{
		Categories: models.Categories{
			Credits: []models.Category{{Name: "Sales", Percentage: 70}, {Name: "Other", Percentage: 30}},
		},
		Accounts: []models.Account{
			{BankName: "Alpha", Monthly: []models.MonthlySummary{
				{Month: "2023-12", VolatilityPct: 12.5},
				{Month: "2024-01", MonthName: "January", VolatilityPct: 40},
			}},
			{BankName: "Beta"},
		},
	}

	data := Project(r)
	assert.Equal(t, []string{"Sales", "Other"}, data.CreditsPie.Labels)
	assert.Equal(t, []float64{70, 30}, data.CreditsPie.Values)
	assert.Empty(t, data.DebitsPie.Labels)

	require.Len(t, data.Volatility, 2)
	assert.Equal(t, "Alpha", data.Volatility[0].Name)
	assert.Equal(t, []string{"Dec 2023", "Jan 2024"}, data.Volatility[0].X, "year comes from each month, not the period")
	assert.Equal(t, []float64{12.5, 40}, data.Volatility[0].Y)
	assert.NotNil(t, data.Volatility[1].X)
}

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		m    models.MonthlySummary
		want string
	}{
		{models.MonthlySummary{Month: "2024-06"}, "Jun 2024"},
		{models.MonthlySummary{Month: "2024-06-30"}, "Jun 2024"},
		{models.MonthlySummary{Month: "2024-13", MonthName: "Bad"}, "Bad"},
		{models.MonthlySummary{Month: "June", MonthName: "June 2024"}, "June 2024"},
		{models.MonthlySummary{Month: "June"}, "June"},
		{models.MonthlySummary{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MonthLabel(tt.m))
	}
}
