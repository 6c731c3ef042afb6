// Package batch compiles many documents concurrently. One document's
// failure never affects the others, and results keep input order.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/report"
	"github.com/bobmcallan/statement-report/internal/workbook"
)

// Input is one named raw document.
type Input struct {
	Name string
	Data []byte
}

// Output is the generated artifacts of one successful document.
type Output struct {
	Index    int
	Name     string
	BaseName string
	HTML     []byte
	JSON     []byte // pretty printed source document, when enabled
	Workbook []byte // XLSX export, when enabled
	Metadata report.Metadata
}

// Failure records why one document produced no artifacts.
type Failure struct {
	Index int
	Name  string
	Err   error
}

// Result holds every output and failure of a batch, each in input order.
type Result struct {
	Outputs  []Output
	Failures []Failure
}

// Options controls which artifacts are produced and how many documents are
// compiled at once.
type Options struct {
	Workers         int
	IncludeJSON     bool
	IncludeWorkbook bool
}

// Processor runs batches through a report generator.
type Processor struct {
	generator *report.Generator
	opts      Options
	logger    *common.Logger
}

// NewProcessor creates a processor. Workers <= 0 uses the CPU count.
func NewProcessor(g *report.Generator, opts Options, logger *common.Logger) *Processor {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Processor{generator: g, opts: opts, logger: logger}
}

// Process compiles inputs with at most Options.Workers in flight. Inputs
// not started before ctx is cancelled are reported as failures.
func (p *Processor) Process(ctx context.Context, inputs []Input) *Result {
	outputs := make([]*Output, len(inputs))
	failures := make([]*Failure, len(inputs))

	var g errgroup.Group
	g.SetLimit(p.opts.Workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures[i] = &Failure{Index: i, Name: in.Name, Err: err}
				return nil
			}
			out, err := p.processOne(i, in)
			if err != nil {
				failures[i] = &Failure{Index: i, Name: in.Name, Err: err}
				return nil
			}
			outputs[i] = out
			return nil
		})
	}
	_ = g.Wait()

	res := &Result{Outputs: []Output{}, Failures: []Failure{}}
	for i := range inputs {
		switch {
		case outputs[i] != nil:
			res.Outputs = append(res.Outputs, *outputs[i])
		case failures[i] != nil:
			res.Failures = append(res.Failures, *failures[i])
			p.logger.Warn().
				Str("document", failures[i].Name).
				Str("error", failures[i].Err.Error()).
				Msg("document skipped")
		}
	}
	res.dedupeNames()

	p.logger.Info().
		Int("documents", len(inputs)).
		Int("reports", len(res.Outputs)).
		Int("failures", len(res.Failures)).
		Msg("batch processed")
	return res
}

func (p *Processor) processOne(i int, in Input) (out *Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("compile %s: panic: %v", in.Name, r)
		}
	}()

	res, err := p.generator.Generate(in.Name, in.Data)
	if err != nil {
		return nil, err
	}

	out = &Output{
		Index:    i,
		Name:     in.Name,
		BaseName: res.BaseName,
		HTML:     res.HTML,
		Metadata: res.Metadata,
	}
	if p.opts.IncludeJSON {
		if out.JSON, err = res.PrettyJSON(); err != nil {
			return nil, err
		}
	}
	if p.opts.IncludeWorkbook {
		if out.Workbook, err = workbook.Bytes(res.Report); err != nil {
			return nil, fmt.Errorf("workbook %s: %w", in.Name, err)
		}
	}
	return out, nil
}

// dedupeNames suffixes repeated base names with _2, _3, ... in input order.
func (r *Result) dedupeNames() {
	names := make([]string, len(r.Outputs))
	for i, o := range r.Outputs {
		names[i] = o.BaseName
	}
	for i, name := range report.Deduplicate(names) {
		r.Outputs[i].BaseName = name
	}
}
