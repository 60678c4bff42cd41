// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package recommend

import (
	"context"
	"sort"
)

// Preference point values. Category outweighs location outweighs the
// price and time nudges; a prior rating shifts the score around the
// 2.5 midpoint of the 1-5 scale.
const (
	pointsCategory      = 3.0
	pointsLocation      = 2.0
	pointsPriceMatch    = 2.0
	pointsAnyPrice      = 1.0
	pointsTimeMatch     = 1.0
	pointsAnyTime       = 1.0
	pointsAlreadySeen   = -1.0
	ratingMidpoint      = 2.5
	ratingWeight        = 0.5
	reasonCategory      = "선호하는 카테고리"
	reasonLocation      = "선호하는 지역"
	reasonPriceBucket   = "선호하는 가격대"
	reasonDiscoverNew   = "새로운 공연을 발견해보세요!"
)

// PreferenceStrategy scores every candidate against the user's stated
// preferences and viewing history.
type PreferenceStrategy struct{}

// Name returns the strategy identifier.
func (PreferenceStrategy) Name() string { return StrategyPreference }

// Recommend returns the topN performances by preference score. Every
// candidate is scored; an unrestricted preference is a weak match for
// everything rather than a filter.
func (s PreferenceStrategy) Recommend(ctx context.Context, req *Request, topN int) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(req.Catalog))
	for _, perf := range req.Catalog {
		score, reasons := s.score(perf, req.Profile)
		recs = append(recs, Recommendation{
			Performance: perf,
			Score:       score,
			Methods:     []string{StrategyPreference},
			Reasons:     reasons,
		})
	}
	sortByScore(recs)
	return truncate(recs, topN), nil
}

// score computes the preference points for one performance and the
// human-readable reasons for stated-preference matches.
func (s PreferenceStrategy) score(perf *Performance, profile UserProfile) (float64, []string) {
	score := 0.0
	var reasons []string

	if profile.Categories.Contains(perf.Category) {
		score += pointsCategory
		reasons = append(reasons, reasonCategory)
	}
	if profile.Locations.Contains(perf.Location) {
		score += pointsLocation
		reasons = append(reasons, reasonLocation)
	}

	switch {
	case profile.Price.Unrestricted():
		score += pointsAnyPrice
	case BucketOf(perf.Price) == profile.Price.Bucket():
		score += pointsPriceMatch
		reasons = append(reasons, reasonPriceBucket)
	}

	switch {
	case profile.Time.Unrestricted():
		score += pointsAnyTime
	case profile.Time.Matches(perf.Time):
		score += pointsTimeMatch
	}

	if profile.Seen(perf.Title) {
		score += pointsAlreadySeen
	}
	if rating, ok := profile.RatingFor(perf.ID); ok {
		score += (rating - ratingMidpoint) * ratingWeight
	}

	if len(reasons) == 0 {
		reasons = []string{reasonDiscoverNew}
	}
	return score, reasons
}

// sortByScore orders recommendations by descending score, breaking
// ties by ascending performance ID for determinism.
func sortByScore(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Performance.ID < recs[j].Performance.ID
	})
}

// truncate caps a recommendation list at n entries.
func truncate(recs []Recommendation, n int) []Recommendation {
	if n < 0 {
		n = 0
	}
	if len(recs) > n {
		recs = recs[:n]
	}
	return recs
}
