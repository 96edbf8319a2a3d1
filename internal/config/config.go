package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/spektr-org/claimlens/engine"
	"github.com/spektr-org/claimlens/translator"
)

// ============================================================================
// CONFIG — Layered settings for the CLI and the HTTP server
// ============================================================================
// Load order, last wins:
//   1. embedded defaults.toml
//   2. $XDG_CONFIG_HOME/claimlens/config.toml (first match on the XDG path)
//   3. the explicit --config file
//   4. CLAIMLENS_* environment, after .env has been loaded
// ============================================================================

//go:embed defaults.toml
var defaultConfig []byte

// EnvPrefix namespaces environment overrides.
const EnvPrefix = "CLAIMLENS_"

// XDGPath is the config file looked up under the XDG config dirs.
const XDGPath = "claimlens/config.toml"

// Config is the resolved configuration.
type Config struct {
	Locale     string       `koanf:"locale"`
	LocalesDir string       `koanf:"locales_dir"`
	Log        LogConfig    `koanf:"log"`
	Table      TableConfig  `koanf:"table"`
	Chart      engine.Theme `koanf:"chart"`
	Server     ServerConfig `koanf:"server"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type TableConfig struct {
	PageSize int `koanf:"page_size"`
}

type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// LoadOptions selects the optional layers.
type LoadOptions struct {
	File    string // explicit config file; must exist when set
	EnvFile string // dotenv file; empty → ".env", missing is fine
	NoXDG   bool   // skip the XDG lookup
}

// Load resolves the configuration layers.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if !opts.NoXDG {
		if path, err := xdg.SearchConfigFile(XDGPath); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", path, err)
			}
		}
	}

	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(opts.File), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", opts.File, err)
		}
	}

	if err := loadDotEnv(opts.EnvFile); err != nil {
		return nil, err
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv sets variables from a dotenv file without overriding the
// process environment.
func loadDotEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// envKey maps CLAIMLENS_TABLE__PAGE_SIZE to table.page_size. List keys
// take comma-separated values.
func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if key == "chart.modebar_remove" {
		if value == "" {
			return key, []string{}
		}
		return key, strings.Split(value, ",")
	}
	return key, value
}

func (c *Config) validate() error {
	if c.Table.PageSize <= 0 {
		return fmt.Errorf("table.page_size must be positive, got %d", c.Table.PageSize)
	}
	return nil
}

// Translator builds the catalog for the configured locale.
func (c *Config) Translator() (*translator.Catalog, error) {
	return translator.New(translator.Config{Language: c.Locale, Dir: c.LocalesDir})
}

// Options converts the configuration into engine options.
func (c *Config) Options() ([]engine.Option, error) {
	tr, err := c.Translator()
	if err != nil {
		return nil, err
	}
	return []engine.Option{
		engine.WithTranslator(tr),
		engine.WithTheme(c.Chart),
		engine.WithPageSize(c.Table.PageSize),
	}, nil
}
