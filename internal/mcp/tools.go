package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// toolNames lists the registered tools in registration order.
var toolNames = []string{"classify_document", "summarize_report", "compile_report", "get_version"}

// Register adds every report tool to s.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(classifyDocumentTool(), t.handleClassifyDocument)
	s.AddTool(summarizeReportTool(), t.handleSummarizeReport)
	s.AddTool(compileReportTool(), t.handleCompileReport)
	s.AddTool(VersionTool(), VersionToolHandler())
}

func documentParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("document",
			mcp.Required(),
			mcp.Description("The statement analysis document, as JSON or YAML text"),
		),
		mcp.WithString("name",
			mcp.Description("File name of the document. A .yaml or .yml extension selects YAML (default: document.json)"),
		),
	}
}

func classifyDocumentTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Detect the schema generation of a statement analysis document. Returns the classified version (4.0 legacy or 5.0 current), the declared schema_version and the integrity point system."),
	}, documentParams()...)
	return mcp.NewTool("classify_document", opts...)
}

func summarizeReportTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Summarize a statement analysis document as markdown: scores, accounts, monthly balances, volatility alerts and recommendations."),
	}, documentParams()...)
	return mcp.NewTool("summarize_report", opts...)
}

func compileReportTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Compile a statement analysis document into the standalone interactive HTML report."),
	}, documentParams()...)
	return mcp.NewTool("compile_report", opts...)
}
