// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package recommend

import "fmt"

// StrategyWeights scale each strategy's contribution to the hybrid
// score. They are applied as given; when a strategy yields nothing
// (no rating data, say) its weight is simply unused, not
// redistributed.
type StrategyWeights struct {
	Preference    float64 `koanf:"preference" json:"preference"`
	Popularity    float64 `koanf:"popularity" json:"popularity"`
	Diversity     float64 `koanf:"diversity" json:"diversity"`
	Collaborative float64 `koanf:"collaborative" json:"collaborative"`
}

// Config holds engine tuning knobs.
type Config struct {
	// Weights scale the per-strategy contributions.
	Weights StrategyWeights `koanf:"weights" json:"weights"`

	// DefaultTopN is the result count when a request does not set one.
	DefaultTopN int `koanf:"default_top_n" json:"default_top_n"`
}

// DefaultConfig returns the standard engine tuning: preference-heavy
// weighting and twenty results.
func DefaultConfig() Config {
	return Config{
		Weights: StrategyWeights{
			Preference:    0.4,
			Popularity:    0.3,
			Diversity:     0.2,
			Collaborative: 0.1,
		},
		DefaultTopN: 20,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.DefaultTopN <= 0 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"preference", c.Weights.Preference},
		{"popularity", c.Weights.Popularity},
		{"diversity", c.Weights.Diversity},
		{"collaborative", c.Weights.Collaborative},
	} {
		if w.value < 0 {
			return fmt.Errorf("weight %s must not be negative, got %g", w.name, w.value)
		}
	}
	sum := c.Weights.Preference + c.Weights.Popularity + c.Weights.Diversity + c.Weights.Collaborative
	if sum == 0 {
		return fmt.Errorf("at least one strategy weight must be positive")
	}
	return nil
}
