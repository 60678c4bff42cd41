// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package api

import (
	"net/http"
	"time"
)

// HealthLive serves GET /healthz/live. It answers as long as the
// process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// HealthReady serves GET /healthz/ready. The service is ready once a
// catalog is loaded; an empty catalog cannot recommend anything.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store.Len() == 0 {
		respondError(w, r, http.StatusServiceUnavailable, CodeUnavailable,
			"catalog not loaded", nil)
		return
	}
	respondData(w, r, http.StatusOK, map[string]interface{}{
		"status":       "ready",
		"performances": h.store.Len(),
	})
}
