// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Performances serves GET /api/v1/performances.
func (h *Handler) Performances(w http.ResponseWriter, r *http.Request) {
	performances := h.store.Performances()
	respondData(w, r, http.StatusOK, map[string]interface{}{
		"performances": performances,
		"total":        len(performances),
	})
}

// Performance serves GET /api/v1/performances/{id}.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	perf, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, r, http.StatusNotFound, CodeNotFound,
			"performance not found", nil)
		return
	}
	respondData(w, r, http.StatusOK, perf)
}
