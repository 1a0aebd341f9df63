// Package config loads server configuration from file and environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Templates TemplatesConfig `mapstructure:"templates"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address          string `mapstructure:"address"`
	ReadTimeoutSecs  int    `mapstructure:"read_timeout_secs"`
	WriteTimeoutSecs int    `mapstructure:"write_timeout_secs"`
	Debug            bool   `mapstructure:"debug"`
}

// ReadTimeout returns the read timeout as a duration.
func (s *ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSecs) * time.Second
}

// WriteTimeout returns the write timeout as a duration.
func (s *ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSecs) * time.Second
}

// DBConfig holds the template database settings. An empty DSN disables
// the database source.
type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

// TemplatesConfig points at an optional JSON template file, used when no
// database is configured.
type TemplatesConfig struct {
	File string `mapstructure:"file"`
}

// Load reads configuration from the given file (optional) and the
// POEXTRACT_* environment, with sane defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout_secs", 30)
	v.SetDefault("server.write_timeout_secs", 60)
	v.SetDefault("server.debug", false)
	v.SetDefault("db.dsn", "")
	v.SetDefault("templates.file", "")

	v.SetEnvPrefix("POEXTRACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
