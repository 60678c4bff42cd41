// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order;
// the first one that exists wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/stagenote/config.yaml",
	"/etc/stagenote/config.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "STAGENOTE_CONFIG"

// envPrefix namespaces all service environment variables.
const envPrefix = "STAGENOTE_"

// Load builds the configuration in three layers: struct defaults,
// then an optional YAML file, then STAGENOTE_* environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envOverrides maps environment variable suffixes (after the
// STAGENOTE_ prefix) to nested config paths that the generic
// one-underscore rule cannot derive.
var envOverrides = map[string]string{
	"server_read_timeout":          "server.read_timeout",
	"server_write_timeout":         "server.write_timeout",
	"server_shutdown_timeout":      "server.shutdown_timeout",
	"server_cors_origins":          "server.cors_origins",
	"server_rate_limit":            "server.rate_limit",
	"catalog_ratings_path":         "catalog.ratings_path",
	"catalog_profiles_path":        "catalog.profiles_path",
	"engine_default_top_n":         "engine.default_top_n",
	"engine_weights_preference":    "engine.weights.preference",
	"engine_weights_popularity":    "engine.weights.popularity",
	"engine_weights_diversity":     "engine.weights.diversity",
	"engine_weights_collaborative": "engine.weights.collaborative",
}

// sliceConfigPaths are config paths expected as slices that arrive as
// comma-separated strings from environment variables.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields splits comma-separated string values for known
// slice paths.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

// envTransform maps STAGENOTE_SECTION_KEY to section.key.
//
// Examples:
//   - STAGENOTE_SERVER_PORT -> server.port
//   - STAGENOTE_CATALOG_PATH -> catalog.path
//   - STAGENOTE_ENGINE_WEIGHTS_PREFERENCE -> engine.weights.preference
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if path, ok := envOverrides[key]; ok {
		return path
	}
	return strings.Replace(key, "_", ".", 1)
}
