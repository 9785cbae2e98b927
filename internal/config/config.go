// Package config defines the sweetshop application configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abgdnv/sweetshop/pkg/config"
	"github.com/abgdnv/sweetshop/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	Log       config.LogConfig       `koanf:"log"`
	Telemetry config.TelemetryConfig `koanf:"telemetry"`
	Shutdown  config.ShutdownConfig  `koanf:"shutdown"`
	Shell     ShellConfig            `koanf:"shell"`
	Seed      SeedConfig             `koanf:"seed"`
}

// ShellConfig controls the interactive menu.
type ShellConfig struct {
	Currency string `koanf:"currency"`
	// Pause waits for Enter after each command.
	Pause bool `koanf:"pause"`
}

// SeedConfig lists the sweets loaded into the inventory at startup.
type SeedConfig struct {
	Enabled bool        `koanf:"enabled"`
	Sweets  []SeedSweet `koanf:"sweets"`
}

type SeedSweet struct {
	ID       int     `koanf:"id"`
	Name     string  `koanf:"name"`
	Category string  `koanf:"category"`
	Price    float64 `koanf:"price"`
	Quantity int     `koanf:"quantity"`
}

// DefaultSeed is the sample inventory used when seeding is enabled and config.yaml lists no sweets.
var DefaultSeed = []SeedSweet{
	{ID: 1001, Name: "Kaju Katli", Category: "Nut-Based", Price: 50.0, Quantity: 20},
	{ID: 1002, Name: "Gajar Halwa", Category: "Vegetable-Based", Price: 30.0, Quantity: 15},
	{ID: 1003, Name: "Gulab Jamun", Category: "Milk-Based", Price: 10.0, Quantity: 50},
	{ID: 1004, Name: "Rasgulla", Category: "Milk-Based", Price: 12.0, Quantity: 40},
	{ID: 1005, Name: "Jalebi", Category: "Syrup-Based", Price: 8.0, Quantity: 60},
}

// Defaults returns the lowest-priority configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		"log.level":                          "info",
		"log.format":                         "json",
		"log.file":                           "sweetshop.log",
		"telemetry.enabled":                  false,
		"telemetry.traces.otlphttp.endpoint": "localhost:4318",
		"telemetry.traces.otlphttp.insecure": true,
		"telemetry.traces.otlphttp.timeout":  "5s",
		"shutdown.timeout":                   "5s",
		"shell.currency":                     "₹",
		"shell.pause":                        true,
		"seed.enabled":                       true,
	}
}

// SeedSweets returns the configured seed inventory, or DefaultSeed when none is configured.
func (c *Config) SeedSweets() []SeedSweet {
	if !c.Seed.Enabled {
		return nil
	}
	if len(c.Seed.Sweets) == 0 {
		return DefaultSeed
	}
	return c.Seed.Sweets
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString(c.Log.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Shutdown.String())

	b.WriteString("\n--- Shell ---\n")
	b.WriteString(fmt.Sprintf("  shell.currency: %s\n", c.Shell.Currency))
	b.WriteString(fmt.Sprintf("  shell.pause: %t\n", c.Shell.Pause))

	b.WriteString("\n--- Seed ---\n")
	b.WriteString(fmt.Sprintf("  seed.enabled: %t\n", c.Seed.Enabled))
	b.WriteString(fmt.Sprintf("  seed.sweets: %d\n", len(c.SeedSweets())))

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Shell.Currency) == "" {
		return errors.New("shell currency is not configured")
	}
	seen := make(map[int]struct{}, len(c.Seed.Sweets))
	for _, s := range c.Seed.Sweets {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("seed sweet ID %d is listed twice", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}
