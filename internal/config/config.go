// Package config loads application configuration from config.yaml and the
// PROPINTEL_ environment, and bootstraps the global zap logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Import  ImportConfig  `yaml:"import" mapstructure:"import"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// CatalogConfig selects the zone dataset backend.
type CatalogConfig struct {
	// Driver is one of "file", "sqlite", "postgres".
	Driver string `yaml:"driver" mapstructure:"driver"`
	// Path is the dataset file (file driver) or database file (sqlite).
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ImportConfig configures `zones import`.
type ImportConfig struct {
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
	// ShapefilePath optionally backfills missing zone coordinates.
	ShapefilePath string `yaml:"shapefile_path" mapstructure:"shapefile_path"`
}

// SearchConfig holds corridor search defaults.
type SearchConfig struct {
	HalfWidthKM float64 `yaml:"half_width_km" mapstructure:"half_width_km"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RatePerClient  float64  `yaml:"rate_per_client" mapstructure:"rate_per_client"`
	Burst          int      `yaml:"burst" mapstructure:"burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROPINTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("catalog.driver", "file")
	v.SetDefault("catalog.path", "zones.json")
	v.SetDefault("import.temp_dir", "/tmp/intel-cli")
	v.SetDefault("search.half_width_km", 5.0)
	v.SetDefault("server.addr", ":8320")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_per_client", 10.0)
	v.SetDefault("server.burst", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields the given command mode depends on, so a
// misconfiguration fails at startup instead of mid-request.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "query", "import":
		problems = append(problems, c.validateCatalog()...)
		if mode == "import" && c.Import.TempDir == "" {
			problems = append(problems, "import.temp_dir is required")
		}
	case "serve":
		problems = append(problems, c.validateCatalog()...)
		if c.Server.Addr == "" {
			problems = append(problems, "server.addr is required")
		}
		if c.Server.RatePerClient <= 0 {
			problems = append(problems, "server.rate_per_client must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) validateCatalog() []string {
	switch c.Catalog.Driver {
	case "file", "sqlite":
		if c.Catalog.Path == "" {
			return []string{"catalog.path is required"}
		}
	case "postgres":
		if c.Catalog.DatabaseURL == "" {
			return []string{"catalog.database_url is required"}
		}
	default:
		return []string{"unknown catalog.driver " + c.Catalog.Driver}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
