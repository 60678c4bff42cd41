// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/stagenote/recommender/internal/cache"
	"github.com/stagenote/recommender/internal/catalog"
	"github.com/stagenote/recommender/internal/logging"
	"github.com/stagenote/recommender/internal/metrics"
	"github.com/stagenote/recommender/internal/recommend"
	"github.com/stagenote/recommender/internal/validation"
)

// buildRequest assembles an engine request for a stored user. Unknown
// users get the zero profile, which is fully unrestricted.
func (h *Handler) buildRequest(r *http.Request, userID string, topN int) *recommend.Request {
	profile, _ := h.store.Profile(userID)
	return &recommend.Request{
		UserID:    userID,
		Profile:   profile,
		Catalog:   h.store.Performances(),
		Ratings:   h.store.Ratings(),
		TopN:      topN,
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
}

// Recommendations serves GET /api/v1/users/{userID}/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	topN, ok := topNParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeValidation,
			"top_n must be an integer between 0 and 100", nil)
		return
	}

	start := time.Now()
	resp, err := h.engine.Recommend(r.Context(), h.buildRequest(r, userID, topN))
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal,
			"failed to compute recommendations", err)
		return
	}
	metrics.RecordRecommendation("hybrid", len(resp.Items), time.Since(start))

	respondData(w, r, http.StatusOK, resp)
}

// Personalized serves
// GET /api/v1/users/{userID}/recommendations/personalized.
func (h *Handler) Personalized(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	topN, ok := topNParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeValidation,
			"top_n must be an integer between 0 and 100", nil)
		return
	}

	start := time.Now()
	resp, err := h.engine.Personalized(r.Context(), h.buildRequest(r, userID, topN))
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal,
			"failed to compute personalized recommendations", err)
		return
	}
	metrics.RecordRecommendation("personalized", len(resp.Items), time.Since(start))

	respondData(w, r, http.StatusOK, resp)
}

// customRequest is the POST body for ad-hoc recommendations: callers
// supply the profile inline instead of referencing a stored one.
type customRequest struct {
	UserID  string                `json:"user_id" validate:"required"`
	TopN    int                   `json:"top_n" validate:"min=0,max=100"`
	Profile catalog.ProfileRecord `json:"profile"`
}

// RecommendCustom serves POST /api/v1/recommendations.
func (h *Handler) RecommendCustom(w http.ResponseWriter, r *http.Request) {
	var body customRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest,
			"request body must be valid JSON", err)
		return
	}
	body.Profile.UserID = body.UserID
	if verr := validation.ValidateStruct(&body); verr != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, verr.Error(), nil)
		return
	}

	req := &recommend.Request{
		UserID:    body.UserID,
		Profile:   body.Profile.Profile(),
		Catalog:   h.store.Performances(),
		Ratings:   h.store.Ratings(),
		TopN:      body.TopN,
		RequestID: logging.RequestIDFromContext(r.Context()),
	}

	start := time.Now()
	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal,
			"failed to compute recommendations", err)
		return
	}
	metrics.RecordRecommendation("hybrid", len(resp.Items), time.Since(start))

	respondData(w, r, http.StatusOK, resp)
}

// Similar serves GET /api/v1/performances/{id}/similar.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	target, ok := h.store.Get(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, CodeNotFound,
			"performance not found", nil)
		return
	}
	topN, ok := topNParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeValidation,
			"top_n must be an integer between 0 and 100", nil)
		return
	}

	key := cache.Key("similar", target.ID, strconv.Itoa(topN))
	recs, hit := h.similar.Get(key)
	metrics.RecordCacheLookup(hit)
	if !hit {
		start := time.Now()
		var err error
		recs, err = h.engine.SimilarTo(r.Context(), target, h.store.Performances(), topN)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, CodeInternal,
				"failed to compute similar performances", err)
			return
		}
		metrics.RecordRecommendation("similar", len(recs), time.Since(start))
		h.similar.Set(key, recs)
	}

	respondData(w, r, http.StatusOK, map[string]interface{}{
		"performance": target,
		"similar":     recs,
	})
}
