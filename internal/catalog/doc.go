// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

// Package catalog loads and serves the performance catalog, rating
// events, and user profiles from JSON exports.
//
// Records are validated on load and invalid ones are skipped, so a
// single malformed entry in an upstream export does not take the
// service down. Legacy profile exports that use the "all" sentinel for
// price and time preferences are mapped onto the engine's tri-state
// preference types, where the zero value already means unrestricted.
package catalog
