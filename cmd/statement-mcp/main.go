// Command statement-mcp serves the report tools to MCP clients over stdio.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/statement-report/internal/app"
	"github.com/bobmcallan/statement-report/internal/common"
	"github.com/bobmcallan/statement-report/internal/config"
)

func main() {
	var configFiles config.FileList
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Parse()

	config.LoadVersionFromFile()
	config.LoadDotEnv()
	if len(configFiles) == 0 {
		configFiles = config.Discover(config.DefaultFileName)
	}

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n  - %s\n", strings.Join(issues, "\n  - "))
		os.Exit(1)
	}

	// stdout carries the protocol, so logs go to stderr
	logger := common.NewLoggerWithOutput(cfg.Logging.Level, os.Stderr)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	logger.Info().Str("version", config.GetVersion()).Msg("MCP stdio server starting")
	if err := server.ServeStdio(application.MCPServer); err != nil {
		logger.Error().Err(err).Msg("stdio server stopped")
		application.Close()
		os.Exit(1)
	}
}
