// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package recommend

import (
	"context"
	"time"
)

// Situational point values: imminence of the show date and seasonal
// fit matter more here than stated preferences.
const (
	pointsThisWeek    = 5.0
	pointsThisMonth   = 3.0
	pointsSeasonMatch = 2.0
	personalizedTopN  = 10
)

// season buckets months into the four Korean seasons.
func season(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "겨울"
	case time.March, time.April, time.May:
		return "봄"
	case time.June, time.July, time.August:
		return "여름"
	default:
		return "가을"
	}
}

// PersonalizedStrategy favors performances the user could plausibly
// attend soon: shows within the next week or month, shows in the
// current season, and shows matching the stated genre and region.
// Unlike the preference strategy it only surfaces positive matches.
type PersonalizedStrategy struct{}

// Name returns the strategy identifier.
func (PersonalizedStrategy) Name() string { return StrategyPersonalized }

// Recommend returns up to ten performances with a strictly positive
// situational score. Performances with unparseable dates can still
// qualify on preference points alone.
func (s PersonalizedStrategy) Recommend(ctx context.Context, req *Request, topN int) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topN <= 0 || topN > personalizedTopN {
		topN = personalizedTopN
	}

	var recs []Recommendation
	for _, perf := range req.Catalog {
		score := 0.0
		var reasons []string

		if date, err := ParseDate(perf.Date); err == nil {
			until := daysUntil(date, req.Today)
			switch {
			case until >= 0 && until <= 7:
				score += pointsThisWeek
				reasons = append(reasons, "이번 주 공연")
			case until >= 8 && until <= 30:
				score += pointsThisMonth
				reasons = append(reasons, "이번 달 공연")
			}
			if ps := season(date.Month()); ps == season(req.Today.Month()) {
				score += pointsSeasonMatch
				reasons = append(reasons, ps+" 공연")
			}
		}

		if req.Profile.Categories.Contains(perf.Category) {
			score += pointsCategory
			reasons = append(reasons, "선호 카테고리")
		}
		if req.Profile.Locations.Contains(perf.Location) {
			score += pointsLocation
			reasons = append(reasons, "선호 지역")
		}

		if score > 0 {
			recs = append(recs, Recommendation{
				Performance: perf,
				Score:       score,
				Methods:     []string{StrategyPersonalized},
				Reasons:     reasons,
			})
		}
	}
	sortByScore(recs)
	return truncate(recs, topN), nil
}
