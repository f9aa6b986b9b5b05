package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the desk configuration, loaded from YAML with environment
// overrides.
type Config struct {
	// Server is the exchange API base URL, e.g. http://localhost:6060.
	Server string `yaml:"server"`

	// CoinPair is the fixed trading pair, e.g. bitcoin/skycoin.
	CoinPair string `yaml:"coin_pair"`

	// CoinTypes lists the tracked coin types. Balances and deposit
	// addresses are maintained per entry.
	CoinTypes []string `yaml:"coin_types"`

	// OrderStart/OrderEnd form the order page window passed through to
	// the server untouched.
	OrderStart int `yaml:"order_start"`
	OrderEnd   int `yaml:"order_end"`

	// Listen is the control-plane HTTP listen address.
	Listen string `yaml:"listen"`

	// JournalPath is the SQLite trade journal file. Empty disables the
	// journal.
	JournalPath string `yaml:"journal_path"`

	// SeedStorePath is the Badger store holding wallet seeds. Empty
	// disables seed persistence.
	SeedStorePath string `yaml:"seed_store_path"`

	Log LogConfig `yaml:"log"`
}

// LogConfig mirrors pkg/logger.Config.
type LogConfig struct {
	Level      string `yaml:"level"`
	OutputFile string `yaml:"output_file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server:     "http://localhost:6060",
		CoinPair:   "bitcoin/skycoin",
		CoinTypes:  []string{"bitcoin", "skycoin"},
		OrderStart: 1,
		OrderEnd:   10,
		Listen:     ":8080",
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path (optional), then applies environment
// overrides, then validates.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GOEXCH_SERVER"); v != "" {
		cfg.Server = v
	}
	if v := os.Getenv("GOEXCH_COIN_PAIR"); v != "" {
		cfg.CoinPair = v
	}
	if v := os.Getenv("GOEXCH_COIN_TYPES"); v != "" {
		cfg.CoinTypes = splitNonEmpty(v)
	}
	if v := os.Getenv("GOEXCH_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("GOEXCH_JOURNAL"); v != "" {
		cfg.JournalPath = v
	}
	if v := os.Getenv("GOEXCH_SEED_STORE"); v != "" {
		cfg.SeedStorePath = v
	}
	if v := os.Getenv("GOEXCH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GOEXCH_LOG_FILE"); v != "" {
		cfg.Log.OutputFile = v
	}
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the fields the session cannot run without.
func (c Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("server is required")
	}
	if c.CoinPair == "" || len(strings.Split(c.CoinPair, "/")) != 2 {
		return fmt.Errorf("coin_pair must be of the form main/sub, got %q", c.CoinPair)
	}
	if len(c.CoinTypes) == 0 {
		return fmt.Errorf("at least one coin type is required")
	}
	if c.OrderStart <= 0 || c.OrderEnd < c.OrderStart {
		return fmt.Errorf("invalid order window [%d, %d]", c.OrderStart, c.OrderEnd)
	}
	return nil
}
