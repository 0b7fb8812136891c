package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from WAYFARER_* variables.
type Config struct {
	DBDSN         string `env:"WAYFARER_DB_DSN"`
	HTTPAddr      string `env:"WAYFARER_HTTP_ADDR" envDefault:":8080"`
	LogLevel      string `env:"WAYFARER_LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"WAYFARER_LOG_FORMAT" envDefault:"console"`
	TuningFile    string `env:"WAYFARER_TUNING_FILE"`
	CatalogFile   string `env:"WAYFARER_CATALOG_FILE"`
	JournalDir    string `env:"WAYFARER_JOURNAL_DIR"`
	MigrationsDir string `env:"WAYFARER_MIGRATIONS_DIR"`
	RandSeed      uint64 `env:"WAYFARER_RAND_SEED"`
	OTelEndpoint  string `env:"WAYFARER_OTEL_ENDPOINT"`
	ServiceName   string `env:"WAYFARER_SERVICE_NAME" envDefault:"wayfarer"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
