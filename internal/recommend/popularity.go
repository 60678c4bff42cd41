// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package recommend

import (
	"context"
	"fmt"
	"time"
)

// Engagement multipliers. A like is a stronger signal than a comment.
const (
	likeWeight       = 2.0
	commentWeight    = 1.0
	recencyHorizon   = 30
	defaultCatWeight = 1.0
)

// categoryWeights boost genres by their historical draw. Genres not
// listed here get defaultCatWeight.
var categoryWeights = map[string]float64{
	"뮤지컬":        1.2,
	"연극":         1.1,
	"대중음악":       1.0,
	"서양음악(클래식)":  0.9,
	"무용(서양/한국무용)": 0.8,
	"한국음악(국악)":   0.7,
	"대중무용":       0.6,
	"서커스/마술":     0.5,
	"복합":         0.8,
}

// PopularityStrategy ranks by engagement (likes, comments), an
// upcoming-date recency bonus, and a per-genre weight.
type PopularityStrategy struct{}

// Name returns the strategy identifier.
func (PopularityStrategy) Name() string { return StrategyPopularity }

// Recommend returns the topN performances by popularity score.
func (s PopularityStrategy) Recommend(ctx context.Context, req *Request, topN int) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(req.Catalog))
	for _, perf := range req.Catalog {
		recs = append(recs, Recommendation{
			Performance: perf,
			Score:       PopularityScore(perf, req.Today),
			Methods:     []string{StrategyPopularity},
			Reasons: []string{fmt.Sprintf("인기 공연 (좋아요: %d, 댓글: %d)",
				perf.Likes, len(perf.Comments))},
		})
	}
	sortByScore(recs)
	return truncate(recs, topN), nil
}

// PopularityScore computes the popularity score of one performance
// relative to the given reference day. Unparseable or past dates get
// no recency bonus; the whole sum is then scaled by the genre weight.
func PopularityScore(perf *Performance, today time.Time) float64 {
	score := float64(perf.Likes)*likeWeight + float64(len(perf.Comments))*commentWeight

	if date, err := ParseDate(perf.Date); err == nil {
		if until := daysUntil(date, today); until >= 0 {
			if bonus := recencyHorizon - until; bonus > 0 {
				score += float64(bonus)
			}
		}
	}

	weight := defaultCatWeight
	if w, ok := categoryWeights[perf.Category]; ok {
		weight = w
	}
	return score * weight
}
