package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// DBPath is the SQLite database file. ":memory:" is accepted for tests.
	DBPath string `mapstructure:"DB_PATH"`

	// Env selects logging output: development (pretty) | production (JSON)
	Env string `mapstructure:"APP_ENV"`

	// ExportDir is where report spreadsheets are written by default.
	ExportDir string `mapstructure:"EXPORT_DIR"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("DB_PATH", "inventario.db")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("EXPORT_DIR", ".")
	viper.SetDefault("LOG_LEVEL", "info")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
