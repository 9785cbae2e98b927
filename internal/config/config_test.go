package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abgdnv/sweetshop/pkg/config/configloader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	// when
	cfg, err := configloader.Load[*Config]("sweetshop", Defaults())
	// then
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "sweetshop.log", cfg.Log.File)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Shutdown.Timeout)
	assert.Equal(t, "₹", cfg.Shell.Currency)
	assert.True(t, cfg.Shell.Pause)
	assert.Equal(t, DefaultSeed, cfg.SeedSweets())
}

func Test_Load_YamlSeedAndEnvOverride(t *testing.T) {
	// given
	dir := t.TempDir()
	yaml := `
shell:
  currency: "$"
seed:
  enabled: true
  sweets:
    - id: 2001
      name: Ladoo
      category: Gram-Based
      price: 15.5
      quantity: 30
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Chdir(dir)
	t.Setenv("SWEETSHOP_SHELL_PAUSE", "false")
	t.Setenv("SWEETSHOP_LOG_LEVEL", "debug")
	// when
	cfg, err := configloader.Load[*Config]("sweetshop", Defaults())
	// then
	require.NoError(t, err)
	assert.Equal(t, "$", cfg.Shell.Currency)
	assert.False(t, cfg.Shell.Pause)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []SeedSweet{{ID: 2001, Name: "Ladoo", Category: "Gram-Based", Price: 15.5, Quantity: 30}}, cfg.SeedSweets())
}

func Test_Config_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Log.Level, cfg.Log.Format, cfg.Log.File = "info", "json", "sweetshop.log"
		cfg.Shutdown.Timeout = time.Second
		cfg.Shell.Currency = "₹"
		return cfg
	}
	testCases := []struct {
		name        string
		mutate      func(c *Config)
		expectError string
	}{
		{name: "Valid", mutate: func(c *Config) {}},
		{name: "Bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, expectError: "log level"},
		{name: "Telemetry enabled without endpoint", mutate: func(c *Config) { c.Telemetry.Enabled = true }, expectError: "OTel endpoint"},
		{name: "Missing shutdown timeout", mutate: func(c *Config) { c.Shutdown.Timeout = 0 }, expectError: "shutdown timeout"},
		{name: "Blank currency", mutate: func(c *Config) { c.Shell.Currency = " " }, expectError: "currency"},
		{
			name: "Duplicate seed IDs",
			mutate: func(c *Config) {
				c.Seed.Sweets = []SeedSweet{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}}
			},
			expectError: "listed twice",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			cfg := valid()
			tc.mutate(cfg)
			// when
			err := cfg.Validate()
			// then
			if tc.expectError != "" {
				assert.ErrorContains(t, err, tc.expectError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_Config_SeedSweets_Disabled(t *testing.T) {
	cfg := &Config{Seed: SeedConfig{Enabled: false, Sweets: DefaultSeed}}
	assert.Nil(t, cfg.SeedSweets())
}

func Test_Config_String(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "warn"
	cfg.Shell.Currency = "₹"

	out := cfg.String()

	assert.Contains(t, out, "--- Log ---")
	assert.Contains(t, out, "level: warn")
	assert.Contains(t, out, "shell.currency: ₹")
	assert.Contains(t, out, "seed.enabled: false")
}
