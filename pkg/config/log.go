package config

import (
	"fmt"
	"slices"
	"strings"
)

// LogStderr is the log.file value that sends records to standard error.
const LogStderr = "stderr"

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// String returns a string representation of the log configuration.
func (c *LogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Log ---\n")
	b.WriteString(fmt.Sprintf("  level: %s\n", c.Level))
	b.WriteString(fmt.Sprintf("  format: %s\n", c.Format))
	b.WriteString(fmt.Sprintf("  file: %s\n", c.File))
	return b.String()
}

func (c *LogConfig) Validate() error {
	if !slices.Contains(logLevels, c.Level) {
		return fmt.Errorf("log level must be one of %v, got %q", logLevels, c.Level)
	}
	if !slices.Contains(logFormats, c.Format) {
		return fmt.Errorf("log format must be one of %v, got %q", logFormats, c.Format)
	}
	if strings.TrimSpace(c.File) == "" {
		return fmt.Errorf("log file is not configured")
	}
	return nil
}
