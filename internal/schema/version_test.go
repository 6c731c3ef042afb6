package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/statement-report/internal/document"
)

func mustParse(t *testing.T, raw string) document.Node {
	t.Helper()
	doc, err := document.Parse("test.json", []byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Version
	}{
		{"empty document", `{}`, Legacy},
		{"declared v5", `{"report_info":{"schema_version":"5.1.0"}}`, Current},
		{"declared v4", `{"report_info":{"schema_version":"4.0"}}`, Legacy},
		{"declared non-string", `{"report_info":{"schema_version":5.1}}`, Legacy},
		{"recurring payments section", `{"recurring_payments":{"alerts":[]}}`, Current},
		{"empty recurring payments section", `{"recurring_payments":{}}`, Legacy},
		{"non bank financing section", `{"report_info":{"schema_version":"4.0"},"non_bank_financing":{"sources":[]}}`, Current},
		{"intraday monthly field", `{"accounts":[{"monthly_summary":[{"highest_intraday":10}]}]}`, Current},
		{"intraday only in second month", `{"accounts":[{"monthly_summary":[{"highest":1},{"highest_intraday":10}]}]}`, Legacy},
		{"intraday on second account", `{"accounts":[{"monthly_summary":[]},{"monthly_summary":[{"highest_intraday":10,"highest":5}]}]}`, Current},
		{"intraday on later account without months first", `{"accounts":[{"bank_name":"A"},{"monthly_summary":[{"highest":5}]},{"monthly_summary":[{"highest_intraday":7}]}]}`, Current},
		{"legacy monthly field", `{"accounts":[{"monthly_summary":[{"highest":10}]}]}`, Legacy},
		{"accounts not a list", `{"accounts":"nope"}`, Legacy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(mustParse(t, tt.raw)))
		})
	}
}

func TestIntegrityMaxPoints(t *testing.T) {
	assert.Equal(t, 25, IntegrityMaxPoints(Legacy))
	assert.Equal(t, 23, IntegrityMaxPoints(Current))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "4.0", Legacy.String())
	assert.Equal(t, "5.0", Current.String())
}

func TestDeclaredVersion(t *testing.T) {
	assert.Equal(t, "5.0.4", DeclaredVersion(mustParse(t, `{"report_info":{"schema_version":" 5.0.4 "}}`)))
	assert.Equal(t, "", DeclaredVersion(mustParse(t, `{"report_info":"x"}`)))
}
