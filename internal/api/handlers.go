// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/stagenote/recommender/internal/cache"
	"github.com/stagenote/recommender/internal/catalog"
	"github.com/stagenote/recommender/internal/recommend"
)

// similarCacheTTL bounds how long similarity results are reused.
// Similarity depends only on catalog content, which is loaded once at
// startup, so a short TTL mainly bounds memory.
const similarCacheTTL = 5 * time.Minute

// Handler serves the recommendation API.
type Handler struct {
	store   *catalog.Store
	engine  *recommend.Engine
	similar *cache.ResultCache
	started time.Time
}

// NewHandler creates a handler backed by the given store and engine.
func NewHandler(store *catalog.Store, engine *recommend.Engine) *Handler {
	return &Handler{
		store:   store,
		engine:  engine,
		similar: cache.New(similarCacheTTL),
		started: time.Now(),
	}
}

// maxTopN caps how many results a single request may ask for.
const maxTopN = 100

// topNParam parses the top_n query parameter. Absent means 0, which
// the engine replaces with its configured default.
func topNParam(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("top_n")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > maxTopN {
		return 0, false
	}
	return n, true
}
