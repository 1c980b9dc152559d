/*
Package config loads the server configuration.

Configuration comes from three layers, lowest priority first: built-in
defaults, an optional estrategia.yaml in the working directory (or an
explicit -config path), and ESTRATEGIA_* environment variables (dots
become underscores, e.g. ESTRATEGIA_DIGEST_CRON).
*/
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	Port           int      `mapstructure:"port"`
	DBPath         string   `mapstructure:"db_path"`
	JWTSecret      string   `mapstructure:"jwt_secret"`
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	Digest DigestConfig `mapstructure:"digest"`
	SMTP   SMTPConfig   `mapstructure:"smtp"`
}

// DigestConfig controls the daily digest job.
type DigestConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
}

// SMTPConfig configures digest delivery. An empty Host disables email
// and the digest is logged instead.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Load reads the configuration. path may be empty, in which case only
// the working-directory estrategia.yaml is tried; a missing file is not
// an error, env and defaults still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "estrategia.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("allowed_origins", []string{"http://localhost:5173", "http://localhost:8080"})
	v.SetDefault("digest.enabled", true)
	v.SetDefault("digest.cron", "0 8 * * 1-5")
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("estrategia")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ESTRATEGIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// An explicit -config path must exist; the implicit one is
		// optional.
		if path != "" {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read estrategia.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required (set ESTRATEGIA_JWT_SECRET)")
	}
	return &cfg, nil
}
