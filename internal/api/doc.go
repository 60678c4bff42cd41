// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

// Package api exposes the recommendation engine over HTTP using chi.
//
// Endpoints:
//
//	GET  /healthz/live
//	GET  /healthz/ready
//	GET  /metrics
//	GET  /api/v1/performances
//	GET  /api/v1/performances/{id}
//	GET  /api/v1/performances/{id}/similar?top_n=
//	GET  /api/v1/users/{userID}/recommendations?top_n=
//	GET  /api/v1/users/{userID}/recommendations/personalized?top_n=
//	POST /api/v1/recommendations
//
// Every response uses the APIResponse envelope with a request ID that
// is also echoed in the X-Request-ID header. API routes carry
// per-client-IP rate limiting and Prometheus instrumentation; the
// operational endpoints stay outside both.
package api
