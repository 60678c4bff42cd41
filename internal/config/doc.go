// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

// Package config loads service configuration with koanf.
//
// Configuration is layered: struct defaults first, then an optional
// YAML file (config.yaml in the working directory or under
// /etc/stagenote, overridable via STAGENOTE_CONFIG), then STAGENOTE_*
// environment variables, which take highest priority.
//
//	STAGENOTE_SERVER_PORT=9090
//	STAGENOTE_CATALOG_PATH=/data/performances.json
//	STAGENOTE_ENGINE_WEIGHTS_PREFERENCE=0.5
//	STAGENOTE_LOGGING_LEVEL=debug
package config
