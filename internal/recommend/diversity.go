// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package recommend

import (
	"context"
	"fmt"
	"sort"
)

// fallbackCategory groups performances with no genre tag.
const fallbackCategory = "기타"

// DiversityStrategy spreads the result set across genres: each
// category contributes its most engaging performances, so a catalog
// dominated by one genre still yields a varied list.
type DiversityStrategy struct{}

// Name returns the strategy identifier.
func (DiversityStrategy) Name() string { return StrategyDiversity }

// Recommend groups the catalog by category (untagged performances fall
// into 기타), takes ceil(topN/groups) from each group by engagement,
// and scores each pick as groups minus its rank within the group. A
// top pick from any genre outranks a runner-up from every genre.
func (s DiversityStrategy) Recommend(ctx context.Context, req *Request, topN int) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Catalog) == 0 || topN <= 0 {
		return nil, nil
	}

	// Group in catalog order so the run is deterministic for a given
	// catalog ordering.
	var order []string
	groups := make(map[string][]*Performance)
	for _, perf := range req.Catalog {
		cat := perf.Category
		if cat == "" {
			cat = fallbackCategory
		}
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], perf)
	}

	perGroup := (topN + len(groups) - 1) / len(groups)
	if perGroup < 1 {
		perGroup = 1
	}

	var recs []Recommendation
	for _, cat := range order {
		members := groups[cat]
		sort.SliceStable(members, func(i, j int) bool {
			if members[i].Likes != members[j].Likes {
				return members[i].Likes > members[j].Likes
			}
			if len(members[i].Comments) != len(members[j].Comments) {
				return len(members[i].Comments) > len(members[j].Comments)
			}
			return members[i].ID < members[j].ID
		})
		take := perGroup
		if take > len(members) {
			take = len(members)
		}
		for rank := 0; rank < take; rank++ {
			recs = append(recs, Recommendation{
				Performance: members[rank],
				Score:       float64(len(groups) - rank),
				Methods:     []string{StrategyDiversity},
				Reasons:     []string{fmt.Sprintf("다양한 장르 추천 - %s", cat)},
			})
		}
	}
	sortByScore(recs)
	return truncate(recs, topN), nil
}
