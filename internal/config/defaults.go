package config

import "runtime"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4251,
			Host: "localhost",
		},
		Report: ReportConfig{
			Currency:        "RM",
			MaxUploadMB:     20,
			Workers:         runtime.NumCPU(),
			IncludeWorkbook: false,
			IncludeJSON:     true,
		},
		Compliance: ComplianceConfig{
			AlertKeywords:     []string{"MISSING", "ALERT", "NOT"},
			CompliantKeywords: []string{"OK", "MET", "COMPLIANT"},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console"},
			FilePath:   "logs/statement-report.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
