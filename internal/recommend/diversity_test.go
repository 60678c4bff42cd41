// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package recommend

import (
	"context"
	"testing"
)

func TestDiversityRecommend(t *testing.T) {
	t.Run("each category contributes its quota", func(t *testing.T) {
		catalog := []*Performance{
			{ID: "m1", Category: "뮤지컬", Likes: 90},
			{ID: "m2", Category: "뮤지컬", Likes: 80},
			{ID: "m3", Category: "뮤지컬", Likes: 70},
			{ID: "t1", Category: "연극", Likes: 10},
			{ID: "t2", Category: "연극", Likes: 5},
			{ID: "d1", Category: "무용(서양/한국무용)", Likes: 1},
		}

		// ceil(4/3) = 2 per category.
		recs, err := DiversityStrategy{}.Recommend(context.Background(), &Request{Catalog: catalog}, 4)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if len(recs) != 4 {
			t.Fatalf("got %d recommendations, want 4", len(recs))
		}

		perCategory := make(map[string]int)
		for _, rec := range recs {
			perCategory[rec.Performance.Category]++
		}
		for cat, n := range perCategory {
			if n > 2 {
				t.Errorf("category %s contributed %d, want at most 2", cat, n)
			}
		}

		// Top picks of every group share rank 0 and outrank runners-up.
		topScore := float64(3)
		for _, rec := range recs[:3] {
			if rec.Score != topScore {
				t.Errorf("%s score = %v, want %v", rec.Performance.ID, rec.Score, topScore)
			}
		}
	})

	t.Run("group top picks beat every runner-up", func(t *testing.T) {
		catalog := []*Performance{
			{ID: "m1", Category: "뮤지컬", Likes: 1000},
			{ID: "m2", Category: "뮤지컬", Likes: 900},
			{ID: "d1", Category: "무용(서양/한국무용)", Likes: 1},
		}

		recs, err := DiversityStrategy{}.Recommend(context.Background(), &Request{Catalog: catalog}, 3)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		// d1 (rank 0 in its group) must outrank m2 (rank 1) despite
		// the like gap.
		var d1Pos, m2Pos int
		for i, rec := range recs {
			switch rec.Performance.ID {
			case "d1":
				d1Pos = i
			case "m2":
				m2Pos = i
			}
		}
		if d1Pos > m2Pos {
			t.Errorf("d1 at %d ranked below m2 at %d", d1Pos, m2Pos)
		}
	})

	t.Run("untagged performances group as 기타", func(t *testing.T) {
		catalog := []*Performance{
			{ID: "p1", Category: "연극", Likes: 5},
			{ID: "p2", Category: "", Likes: 50},
		}

		recs, err := DiversityStrategy{}.Recommend(context.Background(), &Request{Catalog: catalog}, 2)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if len(recs) != 2 {
			t.Fatalf("got %d recommendations, want 2", len(recs))
		}
		found := false
		for _, rec := range recs {
			if rec.Performance.ID == "p2" {
				found = true
				if rec.Reasons[0] != "다양한 장르 추천 - 기타" {
					t.Errorf("reason = %q, want 기타 fallback", rec.Reasons[0])
				}
			}
		}
		if !found {
			t.Error("untagged performance missing from results")
		}
	})

	t.Run("empty catalog yields nothing", func(t *testing.T) {
		recs, err := DiversityStrategy{}.Recommend(context.Background(), &Request{}, 5)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if len(recs) != 0 {
			t.Errorf("got %d recommendations, want 0", len(recs))
		}
	})
}
