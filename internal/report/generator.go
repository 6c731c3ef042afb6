// Package report chains decoding, classification, model building, chart
// projection and compilation for a single input document.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bobmcallan/statement-report/internal/builder"
	"github.com/bobmcallan/statement-report/internal/charts"
	"github.com/bobmcallan/statement-report/internal/compiler"
	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/models"
	"github.com/bobmcallan/statement-report/internal/resolve"
)

// Metadata summarises a generated report for listings and manifests.
type Metadata struct {
	Company         string       `json:"company"`
	PeriodStart     string       `json:"period_start"`
	PeriodEnd       string       `json:"period_end"`
	SchemaVersion   string       `json:"schema_version"`
	DeclaredVersion string       `json:"declared_version,omitempty"`
	Accounts        int          `json:"accounts"`
	Transactions    int          `json:"transactions"`
	IntegrityScore  float64      `json:"integrity_score"`
	KiteRiskLevel   models.Level `json:"kite_risk_level"`
}

// Result is everything generated from one document.
type Result struct {
	Name     string
	BaseName string
	Document document.Node
	Report   *models.Report
	Charts   charts.Data
	HTML     []byte
	Metadata Metadata

	raw []byte
}

// Generator produces reports. It is safe for concurrent use.
type Generator struct {
	compiler *compiler.Compiler
	policy   resolve.CompliancePolicy
}

// NewGenerator returns a Generator rendering with c. A zero policy uses
// resolve.DefaultCompliancePolicy.
func NewGenerator(c *compiler.Compiler, policy resolve.CompliancePolicy) *Generator {
	if len(policy.AlertKeywords) == 0 && len(policy.CompliantKeywords) == 0 {
		policy = resolve.DefaultCompliancePolicy()
	}
	return &Generator{compiler: c, policy: policy}
}

// Generate decodes raw (named name, which selects JSON or YAML) and
// compiles it. Malformed input fails with a *document.MalformedInputError.
func (g *Generator) Generate(name string, raw []byte) (*Result, error) {
	doc, err := document.Parse(name, raw)
	if err != nil {
		return nil, err
	}
	return g.GenerateDocument(name, doc, raw)
}

// GenerateDocument compiles an already decoded document. raw may be nil.
func (g *Generator) GenerateDocument(name string, doc document.Node, raw []byte) (*Result, error) {
	r, err := builder.Build(doc, builder.WithSource(name), builder.WithCompliancePolicy(g.policy))
	if err != nil {
		return nil, err
	}

	data := charts.Project(r)
	html, err := g.compiler.Compile(r, data)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	return &Result{
		Name:     name,
		BaseName: BaseName(doc, name),
		Document: doc,
		Report:   r,
		Charts:   data,
		HTML:     html,
		Metadata: metadataOf(r),
		raw:      raw,
	}, nil
}

// PrettyJSON renders the source document as indented JSON. JSON input keeps
// its original key order; other input is re-encoded from the decoded tree.
func (r *Result) PrettyJSON() ([]byte, error) {
	if document.DetectFormat(r.Name) == document.FormatJSON && len(r.raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, bytes.TrimPrefix(r.raw, []byte{0xEF, 0xBB, 0xBF}), "", "  "); err == nil {
			buf.WriteByte('\n')
			return buf.Bytes(), nil
		}
	}
	out, err := json.MarshalIndent(r.Document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", r.Name, err)
	}
	return append(out, '\n'), nil
}

func metadataOf(r *models.Report) Metadata {
	return Metadata{
		Company:         r.Info.CompanyName,
		PeriodStart:     r.Info.PeriodStart,
		PeriodEnd:       r.Info.PeriodEnd,
		SchemaVersion:   r.SchemaVersion,
		DeclaredVersion: r.DeclaredVersion,
		Accounts:        len(r.Accounts),
		Transactions:    r.TotalTransactions(),
		IntegrityScore:  r.Integrity.Score,
		KiteRiskLevel:   r.KiteFlying.RiskLevel,
	}
}
