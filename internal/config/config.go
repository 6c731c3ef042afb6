package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Report     ReportConfig     `toml:"report"`
	Compliance ComplianceConfig `toml:"compliance"`
	Logging    LoggingConfig    `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// ReportConfig controls report generation and batch output.
type ReportConfig struct {
	Currency        string `toml:"currency"`
	MaxUploadMB     int    `toml:"max_upload_mb"`
	Workers         int    `toml:"workers"`
	IncludeWorkbook bool   `toml:"include_workbook"`
	IncludeJSON     bool   `toml:"include_json"`
}

// MaxUploadBytes is the request body limit derived from MaxUploadMB.
func (r ReportConfig) MaxUploadBytes() int64 {
	return int64(r.MaxUploadMB) << 20
}

// ComplianceConfig holds the keywords used to classify free-text recurring
// payment assessments. Alert keywords are matched first.
type ComplianceConfig struct {
	AlertKeywords     []string `toml:"alert_keywords"`
	CompliantKeywords []string `toml:"compliant_keywords"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies STATEMENT_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("STATEMENT_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("STATEMENT_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if currency := os.Getenv("STATEMENT_REPORT_CURRENCY"); currency != "" {
		config.Report.Currency = currency
	}
	if mb := os.Getenv("STATEMENT_REPORT_MAX_UPLOAD_MB"); mb != "" {
		if n, err := strconv.Atoi(mb); err == nil {
			config.Report.MaxUploadMB = n
		}
	}
	if workers := os.Getenv("STATEMENT_REPORT_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil {
			config.Report.Workers = n
		}
	}
	if v := os.Getenv("STATEMENT_REPORT_INCLUDE_WORKBOOK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Report.IncludeWorkbook = b
		}
	}
	if v := os.Getenv("STATEMENT_REPORT_INCLUDE_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Report.IncludeJSON = b
		}
	}
	if kw := os.Getenv("STATEMENT_COMPLIANCE_ALERT_KEYWORDS"); kw != "" {
		config.Compliance.AlertKeywords = splitList(kw)
	}
	if kw := os.Getenv("STATEMENT_COMPLIANCE_COMPLIANT_KEYWORDS"); kw != "" {
		config.Compliance.CompliantKeywords = splitList(kw)
	}
	if level := os.Getenv("STATEMENT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if outputs := os.Getenv("STATEMENT_LOG_OUTPUTS"); outputs != "" {
		config.Logging.Outputs = splitList(outputs)
	}
	if path := os.Getenv("STATEMENT_LOG_FILE_PATH"); path != "" {
		config.Logging.FilePath = path
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate reports every invalid setting. An empty result means the
// configuration is usable.
func (c *Config) Validate() []string {
	var issues []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if strings.TrimSpace(c.Report.Currency) == "" {
		issues = append(issues, "report.currency must not be empty")
	}
	if c.Report.MaxUploadMB <= 0 {
		issues = append(issues, fmt.Sprintf("report.max_upload_mb must be positive (got %d)", c.Report.MaxUploadMB))
	}
	if c.Report.Workers <= 0 {
		issues = append(issues, fmt.Sprintf("report.workers must be positive (got %d)", c.Report.Workers))
	}
	if len(c.Compliance.AlertKeywords) == 0 && len(c.Compliance.CompliantKeywords) == 0 {
		issues = append(issues, "compliance keywords must not both be empty")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		issues = append(issues, fmt.Sprintf("logging.level %q is not a known level", c.Logging.Level))
	}
	return issues
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
