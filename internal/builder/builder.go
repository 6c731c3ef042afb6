// Package builder turns a decoded analysis document into the canonical
// report model. It is the only constructor of models.Report.
package builder

import (
	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/models"
	"github.com/bobmcallan/statement-report/internal/resolve"
	"github.com/bobmcallan/statement-report/internal/schema"
)

// Option configures a Build call.
type Option func(*options)

type options struct {
	source string
	policy resolve.CompliancePolicy
}

// WithCompliancePolicy replaces the keyword policy used to classify free-text
// recurring payment assessments.
func WithCompliancePolicy(p resolve.CompliancePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithSource names the input in MalformedInput errors.
func WithSource(name string) Option {
	return func(o *options) {
		if name != "" {
			o.source = name
		}
	}
}

type builder struct {
	doc     document.Node
	version schema.Version
	opts    options
}

// Build constructs the canonical report for doc, which must be a keyed
// structure (a document.Node or map[string]any). Any other top-level value
// fails with a *document.MalformedInputError. Below the top level nothing
// fails: absent or mistyped fields take their zero values.
func Build(doc any, opts ...Option) (*models.Report, error) {
	o := options{source: "document", policy: resolve.DefaultCompliancePolicy()}
	for _, opt := range opts {
		opt(&o)
	}

	root, err := document.Root(o.source, doc)
	if err != nil {
		return nil, err
	}

	b := &builder{doc: root, version: schema.Classify(root), opts: o}
	return b.build(), nil
}

func (b *builder) build() *models.Report {
	r := &models.Report{
		Version:            b.version,
		SchemaVersion:      b.version.String(),
		DeclaredVersion:    schema.DeclaredVersion(b.doc),
		IntegrityMaxPoints: schema.IntegrityMaxPoints(b.version),
		Info:               b.reportInfo(),
		Accounts:           b.accounts(),
		Turnover:           b.turnover(),
		Categories:         b.categories(),
		Flags:              b.flags(),
		Transfers:          resolve.InterAccountTransfers(b.doc.Node("inter_account_transfers")),
		Observations:       b.observations(),
		Recommendations:    b.recommendations(),
	}

	r.Volatility = b.volatility(r.Accounts)
	r.Integrity = b.integrity(r.IntegrityMaxPoints)
	r.KiteFlying = b.kiteFlying(r.Flags.RoundFigures.Count)
	r.Recurring = b.recurring(r.Info.TotalMonths)
	r.NonBank = b.nonBank()
	r.Counterparties = b.counterparties()
	return r
}

func (b *builder) reportInfo() models.ReportInfo {
	ri := b.doc.Node("report_info")

	info := models.ReportInfo{
		CompanyName:    ri.Str("company_name", "Company"),
		PeriodStart:    ri.Str("period_start", ""),
		PeriodEnd:      ri.Str("period_end", ""),
		TotalMonths:    ri.Int("total_months"),
		GeneratedAt:    ri.Str("generated_at", ""),
		RelatedParties: []models.RelatedParty{},
	}
	for _, v := range ri.List("related_parties") {
		if p, ok := resolve.RelatedParty(v); ok {
			info.RelatedParties = append(info.RelatedParties, p)
		}
	}
	return info
}

func (b *builder) observations() models.Observations {
	obs := b.doc.Node("observations")
	return models.Observations{
		Positive: obs.Strings("positive"),
		Concerns: obs.Strings("concerns"),
	}
}

func (b *builder) recommendations() []models.Recommendation {
	list := b.doc.Nodes("recommendations")
	out := make([]models.Recommendation, 0, len(list))
	for _, rec := range list {
		out = append(out, models.Recommendation{
			Priority: models.Priority(rec.Str("priority", string(models.PriorityLow))),
			Category: rec.Str("category", ""),
			Text:     rec.Str("recommendation", ""),
		})
	}
	return out
}
