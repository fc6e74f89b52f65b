package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for charm
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Session  SessionConfig  `mapstructure:"session"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// DataConfig locates the flat vocabulary files
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// SessionConfig tunes the interactive dialogue
type SessionConfig struct {
	ExitToken string `mapstructure:"exit_token"`
}

// DatabaseConfig points at the optional SQL mirror of the vocabulary
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if strings.TrimSpace(config.Data.Dir) == "" {
		return nil, fmt.Errorf("data.dir must not be empty")
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("data.dir", "data")

	viper.SetDefault("session.exit_token", "x")

	viper.SetDefault("database.driver", "sqlite3")
	viper.SetDefault("database.dsn", filepath.Join("data", "charm.db"))

	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "text")
}

// DatabaseDriver returns the database/sql driver name for the configured mirror.
func (c *Config) DatabaseDriver() (string, error) {
	switch strings.ToLower(strings.TrimSpace(c.Database.Driver)) {
	case "", "sqlite", "sqlite3":
		return "sqlite3", nil
	case "postgres", "postgresql", "pg":
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
}

// DatabaseURL returns the DSN for the SQL mirror.
func (c *Config) DatabaseURL() (string, error) {
	dsn := strings.TrimSpace(c.Database.DSN)
	if dsn == "" {
		return "", fmt.Errorf("database.dsn must not be empty")
	}
	return dsn, nil
}
