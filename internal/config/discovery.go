package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/bobmcallan/statement-report/internal/common"
)

// DefaultFileName is the configuration file looked up when none is given.
const DefaultFileName = "statement-report.toml"

// FileList is a flag.Value collecting repeated -config flags.
type FileList []string

func (c *FileList) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *FileList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment are left alone.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Discover returns the first existing file of SearchPaths(name), or nil.
func Discover(name string) []string {
	for _, path := range SearchPaths(name) {
		if _, err := os.Stat(path); err == nil {
			return []string{path}
		}
	}
	return nil
}

// SearchPaths returns TOML files to auto-discover (first match wins).
// Binary-relative paths are tried first, with CWD and Docker fallbacks after.
// Paths are deduplicated via filepath.Abs.
func SearchPaths(name string) []string {
	candidates := []string{
		name,
		filepath.Join("config", name),
		filepath.Join("docker", name),
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, name),
		filepath.Join(binDir, "config", name),
	}
	paths = append(paths, candidates...)

	seen := make(map[string]bool, len(paths))
	deduped := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// NewLogger creates an arbor logger from the [logging] section.
func (c *Config) NewLogger() *common.Logger {
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:      c.Logging.Level,
		Outputs:    c.Logging.Outputs,
		FilePath:   c.Logging.FilePath,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
	})
}
