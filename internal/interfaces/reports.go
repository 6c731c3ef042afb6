package interfaces

//go:generate mockgen -destination=mocks/mock_reports.go -package=mocks -source=reports.go

import (
	"context"

	"github.com/bobmcallan/statement-report/internal/batch"
	"github.com/bobmcallan/statement-report/internal/report"
)

// ReportGenerator compiles one raw document into a report.
// Implemented by *report.Generator.
type ReportGenerator interface {
	Generate(name string, raw []byte) (*report.Result, error)
}

// BatchProcessor compiles many documents, isolating failures per document.
// Implemented by *batch.Processor.
type BatchProcessor interface {
	Process(ctx context.Context, inputs []batch.Input) *batch.Result
}
