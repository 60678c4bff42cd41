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

// neighborCount caps how many similar users contribute to a predicted
// rating. Five keeps predictions stable on the sparse rating sets a
// regional catalog produces.
const neighborCount = 5

// CollaborativeStrategy is user-based k-nearest-neighbor collaborative
// filtering over explicit ratings. It predicts ratings for performances
// the user has not rated from the ratings of the most similar users.
type CollaborativeStrategy struct{}

// Name returns the strategy identifier.
func (CollaborativeStrategy) Name() string { return StrategyCollaborative }

// Recommend predicts ratings for unrated performances and returns the
// topN by predicted rating. Users and performances index the rating
// matrix in first-encounter order over the event stream; a user absent
// from the stream, or one with no strictly positive neighbor, gets no
// recommendations rather than an error.
func (s CollaborativeStrategy) Recommend(ctx context.Context, req *Request, topN int) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Ratings) == 0 {
		return nil, nil
	}

	m := buildRatingMatrix(req.Ratings)
	userIdx, ok := m.userIndex[req.UserID]
	if !ok {
		return nil, nil
	}

	neighbors := m.nearestUsers(userIdx, neighborCount)
	if len(neighbors) == 0 {
		return nil, nil
	}

	var recs []Recommendation
	for _, perf := range req.Catalog {
		perfIdx, ok := m.perfIndex[perf.ID]
		if !ok {
			continue
		}
		// Never re-recommend something the user already rated.
		if m.rows[userIdx][perfIdx] != 0 {
			continue
		}

		var predicted, total float64
		for _, n := range neighbors {
			predicted += m.rows[n.user][perfIdx] * n.similarity
			total += n.similarity
		}
		if total == 0 {
			continue
		}
		predicted /= total
		recs = append(recs, Recommendation{
			Performance: perf,
			Score:       predicted,
			Methods:     []string{StrategyCollaborative},
			Reasons: []string{fmt.Sprintf("유사한 사용자들이 평균 %.1f점을 주었습니다.",
				predicted)},
		})
	}
	sortByScore(recs)
	return truncate(recs, topN), nil
}

// ratingMatrix is a dense user-by-performance matrix of explicit
// ratings; zero means unrated.
type ratingMatrix struct {
	userIndex map[string]int
	perfIndex map[string]int
	rows      [][]float64
}

// neighbor is another user and their cosine similarity to the target.
type neighbor struct {
	user       int
	similarity float64
}

// buildRatingMatrix assembles the dense matrix from the event stream.
// Index order follows first encounter, so identical input yields an
// identical matrix. A repeated (user, performance) pair keeps the
// latest rating.
func buildRatingMatrix(events []RatingEvent) *ratingMatrix {
	m := &ratingMatrix{
		userIndex: make(map[string]int),
		perfIndex: make(map[string]int),
	}
	for _, ev := range events {
		if _, ok := m.userIndex[ev.UserID]; !ok {
			m.userIndex[ev.UserID] = len(m.userIndex)
		}
		if _, ok := m.perfIndex[ev.PerformanceID]; !ok {
			m.perfIndex[ev.PerformanceID] = len(m.perfIndex)
		}
	}
	m.rows = make([][]float64, len(m.userIndex))
	for i := range m.rows {
		m.rows[i] = make([]float64, len(m.perfIndex))
	}
	for _, ev := range events {
		m.rows[m.userIndex[ev.UserID]][m.perfIndex[ev.PerformanceID]] = ev.Rating
	}
	return m
}

// nearestUsers returns up to k other users with strictly positive
// cosine similarity to the target row, most similar first. Ties break
// by ascending row index.
func (m *ratingMatrix) nearestUsers(userIdx, k int) []neighbor {
	neighbors := make([]neighbor, 0, len(m.rows)-1)
	for i, row := range m.rows {
		if i == userIdx {
			continue
		}
		neighbors = append(neighbors, neighbor{user: i, similarity: cosine(m.rows[userIdx], row)})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		if neighbors[i].similarity != neighbors[j].similarity {
			return neighbors[i].similarity > neighbors[j].similarity
		}
		return neighbors[i].user < neighbors[j].user
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	out := neighbors[:0]
	for _, n := range neighbors {
		if n.similarity > 0 {
			out = append(out, n)
		}
	}
	return out
}
