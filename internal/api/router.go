// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stagenote/recommender/internal/config"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler *Handler
	cfg     config.ServerConfig
}

// NewRouter creates a router for the given handler and server config.
func NewRouter(handler *Handler, cfg config.ServerConfig) *Router {
	return &Router{handler: handler, cfg: cfg}
}

// Setup builds the chi route tree.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if len(rt.cfg.CORSOrigins) > 0 {
		r.Use(CORS(rt.cfg.CORSOrigins))
	}

	// Operational endpoints stay outside the rate limit so probes and
	// scrapes never get throttled.
	r.Get("/healthz/live", rt.handler.HealthLive)
	r.Get("/healthz/ready", rt.handler.HealthReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimit(rt.cfg.RateLimit))
		r.Use(Instrument)

		r.Get("/performances", rt.handler.Performances)
		r.Get("/performances/{id}", rt.handler.Performance)
		r.Get("/performances/{id}/similar", rt.handler.Similar)

		r.Get("/users/{userID}/recommendations", rt.handler.Recommendations)
		r.Get("/users/{userID}/recommendations/personalized", rt.handler.Personalized)
		r.Post("/recommendations", rt.handler.RecommendCustom)
	})

	return r
}
