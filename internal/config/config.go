// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package config

import (
	"fmt"
	"time"

	"github.com/stagenote/recommender/internal/recommend"
)

// Config is the full service configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Catalog CatalogConfig `koanf:"catalog"`
	Engine  EngineConfig  `koanf:"engine"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed CORS origins; empty allows none.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is the per-client request budget per minute;
	// 0 disables rate limiting.
	RateLimit int `koanf:"rate_limit"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig locates the catalog data files.
type CatalogConfig struct {
	// Path is the performances JSON file.
	Path string `koanf:"path"`

	// RatingsPath is the optional rating events JSON file.
	RatingsPath string `koanf:"ratings_path"`

	// ProfilesPath is the optional user profiles JSON file.
	ProfilesPath string `koanf:"profiles_path"`
}

// EngineConfig holds recommendation engine tuning.
type EngineConfig struct {
	Weights     recommend.StrategyWeights `koanf:"weights"`
	DefaultTopN int                       `koanf:"default_top_n"`
}

// Recommend converts the section into the engine's own config type.
func (e EngineConfig) Recommend() recommend.Config {
	return recommend.Config{
		Weights:     e.Weights,
		DefaultTopN: e.DefaultTopN,
	}
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the configuration with all defaults applied.
// Defaults load first and are overridden by the config file and then
// environment variables.
func defaultConfig() *Config {
	engine := recommend.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       120,
		},
		Catalog: CatalogConfig{
			Path: "/data/performances.json",
		},
		Engine: EngineConfig{
			Weights:     engine.Weights,
			DefaultTopN: engine.DefaultTopN,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path is required")
	}
	if err := c.Engine.Recommend().Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}
