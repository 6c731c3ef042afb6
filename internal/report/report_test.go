package report

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/statement-report/internal/compiler"
	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/resolve"
)

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	c, err := compiler.New()
	require.NoError(t, err)
	return NewGenerator(c, resolve.CompliancePolicy{})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Acme Trading Sdn Bhd", "Acme_Trading_Sdn_Bhd"},
		{"  A & B / Co.  ", "A_B_Co."},
		{"2024-06-30", "2024-06-30"},
		{"___", "report"},
		{"", "report"},
		{"Syarikat Ünik", "Syarikat_nik"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		source string
		want   string
	}{
		{
			name:   "declared version",
			raw:    `{"report_info":{"company_name":"Acme Sdn Bhd","period_end":"2024-06-30","schema_version":"5.2"}}`,
			source: "a.json",
			want:   "Acme_Sdn_Bhd_2024-06-30_schema_5.2",
		},
		{
			name:   "classified version without period",
			raw:    `{"report_info":{"company_name":"Acme"},"recurring_payments":{"x":1}}`,
			source: "a.json",
			want:   "Acme_schema_5.0",
		},
		{
			name:   "file stem fallback",
			raw:    `{"report_info":{"company_name":""}}`,
			source: "uploads/june statement.json",
			want:   "june_statement_schema_4.0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := document.Parse(tt.source, []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, BaseName(doc, tt.source))
		})
	}
}

func TestDeduplicate(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "b", "a_2", "a_3", "b_2"},
		Deduplicate([]string{"a", "b", "a", "a", "b"}))
	assert.Equal(t,
		[]string{"a", "a_2", "a_3"},
		Deduplicate([]string{"a", "a_2", "a"}))
	assert.Empty(t, Deduplicate(nil))
}

func TestGenerate(t *testing.T) {
	g := newGenerator(t)
	res, err := g.Generate("acme.json", []byte(`{
		"report_info":{"company_name":"Acme","period_start":"2024-01-01","period_end":"2024-06-30","schema_version":"5.0"},
		"accounts":[{"bank_name":"Alpha","transaction_count":10},{"bank_name":"Beta","transaction_count":5}],
		"integrity_score":{"score":88}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Acme_2024-06-30_schema_5.0", res.BaseName)
	assert.Contains(t, string(res.HTML), "Acme")
	assert.Equal(t, Metadata{
		Company:         "Acme",
		PeriodStart:     "2024-01-01",
		PeriodEnd:       "2024-06-30",
		SchemaVersion:   "5.0",
		DeclaredVersion: "5.0",
		Accounts:        2,
		Transactions:    15,
		IntegrityScore:  88,
		KiteRiskLevel:   res.Report.KiteFlying.RiskLevel,
	}, res.Metadata)
}

func TestGenerate_Malformed(t *testing.T) {
	g := newGenerator(t)
	res, err := g.Generate("bad.json", []byte(`[1,2,3]`))
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrMalformedInput))

	var mErr *document.MalformedInputError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, "bad.json", mErr.Source)
}

func TestPrettyJSON_PreservesKeyOrder(t *testing.T) {
	g := newGenerator(t)
	res, err := g.Generate("order.json", []byte(`{"zeta":1,"report_info":{"company_name":"Z"},"alpha":[1,2]}`))
	require.NoError(t, err)

	out, err := res.PrettyJSON()
	require.NoError(t, err)
	s := string(out)
	assert.Less(t, strings.Index(s, `"zeta"`), strings.Index(s, `"alpha"`))
	assert.Contains(t, s, "\n  \"report_info\": {")
}

func TestPrettyJSON_FromYAML(t *testing.T) {
	g := newGenerator(t)
	res, err := g.Generate("doc.yaml", []byte("report_info:\n  company_name: Yam\n  period_end: 2024-06-30\n"))
	require.NoError(t, err)
	assert.Equal(t, "Yam_2024-06-30_schema_4.0", res.BaseName)

	out, err := res.PrettyJSON()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"company_name": "Yam"`)
	assert.Contains(t, string(out), `"period_end": "2024-06-30"`)
}

func TestGenerate_NonFiniteYAMLNumbersChartAsZero(t *testing.T) {
	raw := []byte(`report_info:
  company_name: Acme
categories:
  credits:
    - category: Sales
      percentage: .nan
accounts:
  - bank_name: Alpha
    monthly_summary:
      - month: "2024-06"
        volatility_pct: .inf
`)
	res, err := newGenerator(t).Generate("acme.yaml", raw)
	require.NoError(t, err)

	require.Len(t, res.Report.Accounts, 1)
	require.Len(t, res.Report.Accounts[0].Monthly, 1)
	assert.Equal(t, 0.0, res.Report.Accounts[0].Monthly[0].VolatilityPct)

	encoded, err := json.Marshal(res.Charts)
	require.NoError(t, err, "chart data must stay JSON encodable")
	assert.NotContains(t, string(encoded), "null")
}
