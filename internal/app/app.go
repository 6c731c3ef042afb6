package app

import (
	"fmt"

	"github.com/bobmcallan/statement-report/internal/batch"
	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/compiler"
	"github.com/bobmcallan/statement-report/internal/config"
	"github.com/bobmcallan/statement-report/internal/handlers"
	"github.com/bobmcallan/statement-report/internal/mcp"
	"github.com/bobmcallan/statement-report/internal/report"
	"github.com/bobmcallan/statement-report/internal/resolve"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Generator *report.Generator
	Processor *batch.Processor
	MCPServer *mcpserver.MCPServer

	// HTTP handlers
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	ReportHandler  *handlers.ReportHandler
	BatchHandler   *handlers.BatchHandler
	MCPHandler     *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := a.initPipeline(); err != nil {
		return nil, err
	}
	a.initHandlers()

	logger.Info().
		Str("currency", cfg.Report.Currency).
		Int("workers", cfg.Report.Workers).
		Msg("application initialization complete")

	return a, nil
}

// initPipeline builds the compiler, generator and batch processor.
func (a *App) initPipeline() error {
	c, err := compiler.New(compiler.WithCurrency(a.Config.Report.Currency))
	if err != nil {
		return fmt.Errorf("failed to load report templates: %w", err)
	}

	a.Generator = report.NewGenerator(c, resolve.CompliancePolicy{
		AlertKeywords:     a.Config.Compliance.AlertKeywords,
		CompliantKeywords: a.Config.Compliance.CompliantKeywords,
	})
	a.Processor = batch.NewProcessor(a.Generator, batch.Options{
		Workers:         a.Config.Report.Workers,
		IncludeJSON:     a.Config.Report.IncludeJSON,
		IncludeWorkbook: a.Config.Report.IncludeWorkbook,
	}, a.Logger)
	a.MCPServer = mcp.NewServer(mcp.NewTools(a.Generator, a.Config.Report.Currency, a.Logger))
	return nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	maxBytes := a.Config.Report.MaxUploadBytes()

	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.ReportHandler = handlers.NewReportHandler(a.Generator, maxBytes, a.Logger)
	a.BatchHandler = handlers.NewBatchHandler(a.Processor, maxBytes, a.Logger)
	a.MCPHandler = mcp.NewHandler(a.MCPServer, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
