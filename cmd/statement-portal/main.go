// Command statement-portal serves report generation over HTTP and MCP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobmcallan/statement-report/internal/app"
	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/config"
	"github.com/bobmcallan/statement-report/internal/server"
)

const shutdownTimeout = 10 * time.Second

var errInvalidConfig = errors.New("invalid configuration")

var (
	configFiles config.FileList
	serverPort  = flag.Int("port", 0, "Server port (overrides config)")
	serverPortP = flag.Int("p", 0, "Server port (shorthand)")
	serverHost  = flag.String("host", "", "Server host (overrides config)")
	showVersion = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()
	config.LoadVersionFromFile()

	if *showVersion {
		fmt.Printf("statement-portal version %s\n", config.GetFullVersion())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		if !errors.Is(err, errInvalidConfig) {
			fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		}
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	logger.Info().
		Int("port", cfg.Server.Port).
		Str("host", cfg.Server.Host).
		Str("config_files", fmt.Sprintf("%v", configFiles)).
		Msg("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("portal stopped with error")
		stop()
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}

// loadConfig layers .env, discovered or named TOML files, environment and
// flags, in that order.
func loadConfig() (*config.Config, error) {
	config.LoadDotEnv()
	if len(configFiles) == 0 {
		configFiles = config.Discover(config.DefaultFileName)
	}

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		return nil, err
	}

	port := *serverPort
	if *serverPortP != 0 {
		port = *serverPortP
	}
	config.ApplyFlagOverrides(cfg, port, *serverHost)

	if issues := cfg.Validate(); len(issues) > 0 {
		printIssues(issues)
		return nil, errInvalidConfig
	}
	return cfg, nil
}

// serve runs the HTTP server until ctx is cancelled or the listener fails.
func serve(ctx context.Context, cfg *config.Config, logger *common.Logger) error {
	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error().Err(err).Msg("application shutdown failed")
		}
	}()

	srv := server.New(application)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Msg("server ready")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printIssues(issues []string) {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Configuration error: invalid settings")
	fmt.Fprintln(os.Stderr, "")
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "  - %s\n", issue)
	}
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Values can be set via TOML file, STATEMENT_* environment variables, or CLI flags.")
	fmt.Fprintln(os.Stderr, "")
}
