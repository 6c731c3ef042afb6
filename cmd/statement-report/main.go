// Command statement-report compiles statement analysis documents into
// standalone HTML reports.
//
//	statement-report [-config file] [-out dir] [-zip file] [-xlsx] [-json] files...
//
// Directories are expanded to the JSON and YAML documents they contain.
// The exit status is 1 when any input failed.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/bobmcallan/statement-report/internal/batch"
	"github.com/bobmcallan/statement-report/internal/compiler"
	"github.com/bobmcallan/statement-report/internal/config"
	"github.com/bobmcallan/statement-report/internal/report"
	"github.com/bobmcallan/statement-report/internal/resolve"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("statement-report", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var configFiles config.FileList
	fs.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	outDir := fs.String("out", ".", "Directory for generated reports")
	zipPath := fs.String("zip", "", "Write a ZIP archive with reports and manifest instead of loose files")
	withXLSX := fs.Bool("xlsx", false, "Also export each report as an XLSX workbook")
	withJSON := fs.Bool("json", false, "Also write the pretty printed source document")
	workers := fs.Int("workers", 0, "Documents compiled in parallel (overrides config)")
	showVersion := fs.Bool("version", false, "Print version information")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	config.LoadVersionFromFile()
	if *showVersion {
		fmt.Fprintf(stdout, "statement-report version %s\n", config.GetFullVersion())
		return 0
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: statement-report [flags] files...")
		fs.PrintDefaults()
		return 2
	}

	config.LoadDotEnv()
	if len(configFiles) == 0 {
		configFiles = config.Discover(config.DefaultFileName)
	}
	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	if *workers > 0 {
		cfg.Report.Workers = *workers
	}
	if issues := cfg.Validate(); len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintf(stderr, "config: %s\n", issue)
		}
		return 1
	}
	logger := cfg.NewLogger()

	inputs, err := readInputs(fs.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	c, err := compiler.New(compiler.WithCurrency(cfg.Report.Currency))
	if err != nil {
		fmt.Fprintf(stderr, "failed to load report templates: %v\n", err)
		return 1
	}
	generator := report.NewGenerator(c, resolve.CompliancePolicy{
		AlertKeywords:     cfg.Compliance.AlertKeywords,
		CompliantKeywords: cfg.Compliance.CompliantKeywords,
	})
	processor := batch.NewProcessor(generator, batch.Options{
		Workers:         cfg.Report.Workers,
		IncludeJSON:     cfg.Report.IncludeJSON || *withJSON,
		IncludeWorkbook: cfg.Report.IncludeWorkbook || *withXLSX,
	}, logger)

	res := processor.Process(ctx, inputs)

	if *zipPath != "" {
		err = writeZip(*zipPath, res)
	} else {
		err = writeFiles(*outDir, res, stdout)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	for _, f := range res.Failures {
		fmt.Fprintf(stderr, "failed: %v\n", f.Err)
	}
	fmt.Fprintf(stdout, "%d report(s) generated, %d failed\n", len(res.Outputs), len(res.Failures))
	if len(res.Failures) > 0 {
		return 1
	}
	return 0
}

// readInputs reads every named file, expanding directories to the JSON and
// YAML documents directly inside them in name order.
func readInputs(args []string) ([]batch.Input, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".json", ".yaml", ".yml":
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}

	inputs := make([]batch.Input, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		inputs = append(inputs, batch.Input{Name: filepath.Base(p), Data: data})
	}
	return inputs, nil
}

func writeFiles(dir string, res *batch.Result, stdout io.Writer) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, o := range res.Outputs {
		files := map[string][]byte{".html": o.HTML, ".json": o.JSON, ".xlsx": o.Workbook}
		for _, ext := range []string{".html", ".json", ".xlsx"} {
			if files[ext] == nil {
				continue
			}
			path := filepath.Join(dir, o.BaseName+ext)
			if err := os.WriteFile(path, files[ext], 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(stdout, path)
		}
	}
	return nil
}

func writeZip(path string, res *batch.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	if err := batch.WriteArchive(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
