package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/document"
	"github.com/bobmcallan/statement-report/internal/interfaces"
	"github.com/bobmcallan/statement-report/internal/report"
	"github.com/bobmcallan/statement-report/internal/schema"
)

const defaultDocumentName = "document.json"

// Tools implements the report tools on top of a report generator.
type Tools struct {
	generator interfaces.ReportGenerator
	currency  string
	logger    *common.Logger
}

// NewTools creates the tool set. currency labels amounts in summaries.
func NewTools(generator interfaces.ReportGenerator, currency string, logger *common.Logger) *Tools {
	if currency == "" {
		currency = common.DefaultCurrency
	}
	return &Tools{generator: generator, currency: currency, logger: logger}
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// documentArgs extracts the document text and its name from the request.
func documentArgs(r mcp.CallToolRequest) (string, []byte, error) {
	raw, err := r.RequireString("document")
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return "", nil, errors.New("document is empty")
	}
	name := strings.TrimSpace(r.GetString("name", ""))
	if name == "" {
		name = defaultDocumentName
	}
	return name, []byte(raw), nil
}

// classification is the classify_document response.
type classification struct {
	Version            string `json:"version"`
	Generation         string `json:"generation"`
	DeclaredVersion    string `json:"declared_version,omitempty"`
	IntegrityMaxPoints int    `json:"integrity_max_points"`
}

func (t *Tools) handleClassifyDocument(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, raw, err := documentArgs(r)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	doc, err := document.Parse(name, raw)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	v := schema.Classify(doc)
	generation := "legacy"
	if v == schema.Current {
		generation = "current"
	}
	out, err := json.Marshal(classification{
		Version:            v.String(),
		Generation:         generation,
		DeclaredVersion:    schema.DeclaredVersion(doc),
		IntegrityMaxPoints: schema.IntegrityMaxPoints(v),
	})
	if err != nil {
		return errorResult("failed to marshal classification"), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (t *Tools) handleSummarizeReport(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, failed := t.generate(ctx, "summarize_report", r)
	if failed != nil {
		return failed, nil
	}
	return mcp.NewToolResultText(formatSummary(res.Report, t.currency)), nil
}

func (t *Tools) handleCompileReport(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, failed := t.generate(ctx, "compile_report", r)
	if failed != nil {
		return failed, nil
	}
	return mcp.NewToolResultText(string(res.HTML)), nil
}

// generate runs the generator for a document tool. A non-nil result is the
// error response to return instead.
func (t *Tools) generate(ctx context.Context, tool string, r mcp.CallToolRequest) (*report.Result, *mcp.CallToolResult) {
	logger := t.logger.ForRequest(ctx)

	name, raw, err := documentArgs(r)
	if err != nil {
		return nil, errorResult(err.Error())
	}

	res, err := t.generator.Generate(name, raw)
	if err != nil {
		logger.Warn().
			Str("tool", tool).
			Str("document", name).
			Str("error", err.Error()).
			Msg("tool call failed")
		return nil, errorResult(err.Error())
	}

	logger.Info().
		Str("tool", tool).
		Str("document", name).
		Str("schema_version", res.Metadata.SchemaVersion).
		Msg("tool call completed")
	return res, nil
}
