package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server: http://exchange.test:7000
coin_pair: mzcoin/skycoin
coin_types: [mzcoin, skycoin]
order_start: 1
order_end: 25
listen: ":9090"
journal_path: /tmp/desk.db
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://exchange.test:7000", cfg.Server)
	assert.Equal(t, "mzcoin/skycoin", cfg.CoinPair)
	assert.Equal(t, []string{"mzcoin", "skycoin"}, cfg.CoinTypes)
	assert.Equal(t, 25, cfg.OrderEnd)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "/tmp/desk.db", cfg.JournalPath)
	// untouched fields keep their defaults
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: http://from-file:6060\n"), 0o644))

	t.Setenv("GOEXCH_SERVER", "http://from-env:6060")
	t.Setenv("GOEXCH_COIN_TYPES", "bitcoin, skycoin ,mzcoin")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:6060", cfg.Server)
	assert.Equal(t, []string{"bitcoin", "skycoin", "mzcoin"}, cfg.CoinTypes)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty server", func(c *Config) { c.Server = "" }},
		{"pair without slash", func(c *Config) { c.CoinPair = "bitcoin" }},
		{"no coin types", func(c *Config) { c.CoinTypes = nil }},
		{"zero start", func(c *Config) { c.OrderStart = 0 }},
		{"end before start", func(c *Config) { c.OrderStart = 10; c.OrderEnd = 5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
