// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package recommend

import (
	"context"
	"testing"
)

func cfCatalog() []*Performance {
	return []*Performance{
		{ID: "p1", Title: "A"},
		{ID: "p2", Title: "B"},
		{ID: "p3", Title: "C"},
	}
}

func TestCollaborativeRecommend(t *testing.T) {
	t.Run("predicts from similar users", func(t *testing.T) {
		// u1 and u2 agree on p1 and p2; u2 also rated p3 highly.
		ratings := []RatingEvent{
			{UserID: "u1", PerformanceID: "p1", Rating: 5},
			{UserID: "u1", PerformanceID: "p2", Rating: 4},
			{UserID: "u2", PerformanceID: "p1", Rating: 5},
			{UserID: "u2", PerformanceID: "p2", Rating: 4},
			{UserID: "u2", PerformanceID: "p3", Rating: 5},
		}
		req := &Request{UserID: "u1", Catalog: cfCatalog(), Ratings: ratings}

		recs, err := CollaborativeStrategy{}.Recommend(context.Background(), req, 10)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if len(recs) != 1 {
			t.Fatalf("got %d recommendations, want 1", len(recs))
		}
		if recs[0].Performance.ID != "p3" {
			t.Errorf("recommended %s, want p3", recs[0].Performance.ID)
		}
		// One neighbor, so the prediction is that neighbor's rating.
		if !almostEqual(recs[0].Score, 5) {
			t.Errorf("predicted rating = %v, want 5", recs[0].Score)
		}
		if recs[0].Reasons[0] != "유사한 사용자들이 평균 5.0점을 주었습니다." {
			t.Errorf("unexpected reason: %q", recs[0].Reasons[0])
		}
	})

	t.Run("never returns an already rated performance", func(t *testing.T) {
		ratings := []RatingEvent{
			{UserID: "u1", PerformanceID: "p1", Rating: 5},
			{UserID: "u1", PerformanceID: "p2", Rating: 3},
			{UserID: "u2", PerformanceID: "p1", Rating: 5},
			{UserID: "u2", PerformanceID: "p2", Rating: 3},
			{UserID: "u2", PerformanceID: "p3", Rating: 4},
			{UserID: "u3", PerformanceID: "p1", Rating: 4},
			{UserID: "u3", PerformanceID: "p3", Rating: 2},
		}
		req := &Request{UserID: "u1", Catalog: cfCatalog(), Ratings: ratings}

		recs, err := CollaborativeStrategy{}.Recommend(context.Background(), req, 10)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		for _, rec := range recs {
			if rec.Performance.ID == "p1" || rec.Performance.ID == "p2" {
				t.Errorf("returned already rated performance %s", rec.Performance.ID)
			}
		}
	})

	t.Run("unknown user yields nothing", func(t *testing.T) {
		ratings := []RatingEvent{
			{UserID: "u2", PerformanceID: "p1", Rating: 5},
		}
		req := &Request{UserID: "stranger", Catalog: cfCatalog(), Ratings: ratings}

		recs, err := CollaborativeStrategy{}.Recommend(context.Background(), req, 10)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("got %d recommendations, want 0", len(recs))
		}
	})

	t.Run("no rating events yields nothing", func(t *testing.T) {
		req := &Request{UserID: "u1", Catalog: cfCatalog()}

		recs, err := CollaborativeStrategy{}.Recommend(context.Background(), req, 10)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if recs != nil {
			t.Errorf("got %v, want nil", recs)
		}
	})

	t.Run("orthogonal raters yield nothing", func(t *testing.T) {
		// u1 and u2 rated disjoint performances, so their cosine
		// similarity is zero and no prediction is possible.
		ratings := []RatingEvent{
			{UserID: "u1", PerformanceID: "p1", Rating: 5},
			{UserID: "u2", PerformanceID: "p3", Rating: 5},
		}
		req := &Request{UserID: "u1", Catalog: cfCatalog(), Ratings: ratings}

		recs, err := CollaborativeStrategy{}.Recommend(context.Background(), req, 10)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("got %d recommendations, want 0", len(recs))
		}
	})
}

func TestBuildRatingMatrix(t *testing.T) {
	events := []RatingEvent{
		{UserID: "u1", PerformanceID: "p1", Rating: 4},
		{UserID: "u2", PerformanceID: "p1", Rating: 2},
		{UserID: "u1", PerformanceID: "p2", Rating: 3},
		// Re-rating overwrites the earlier value.
		{UserID: "u1", PerformanceID: "p1", Rating: 5},
	}

	m := buildRatingMatrix(events)
	if len(m.rows) != 2 {
		t.Fatalf("got %d user rows, want 2", len(m.rows))
	}
	if got := m.rows[m.userIndex["u1"]][m.perfIndex["p1"]]; got != 5 {
		t.Errorf("u1/p1 = %v, want 5 (latest rating wins)", got)
	}
	if got := m.rows[m.userIndex["u2"]][m.perfIndex["p2"]]; got != 0 {
		t.Errorf("u2/p2 = %v, want 0 (unrated)", got)
	}
	// First-encounter order is stable.
	if m.userIndex["u1"] != 0 || m.userIndex["u2"] != 1 {
		t.Errorf("user index order = %v", m.userIndex)
	}
}
