// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/stagenote/recommender/internal/catalog"
	"github.com/stagenote/recommender/internal/config"
	"github.com/stagenote/recommender/internal/recommend"
)

const testPerformances = `[
  {"id": "p1", "title": "레미제라블", "category": "뮤지컬", "location": "서울",
   "price": "80,000원", "date": "2026-09-10", "time": "저녁 19:30",
   "description": "브로드웨이 뮤지컬", "likes": 120},
  {"id": "p2", "title": "햄릿", "category": "연극", "location": "서울",
   "price": "40,000원", "date": "2026-09-15", "time": "저녁 20:00",
   "description": "셰익스피어 비극", "likes": 45},
  {"id": "p3", "title": "백조의 호수", "category": "무용(서양/한국무용)", "location": "부산",
   "price": "60,000원", "date": "2026-10-02", "time": "낮 14:00",
   "description": "클래식 발레", "likes": 60}
]`

const testRatings = `[
  {"user_id": "u1", "performance_id": "p1", "rating": 5},
  {"user_id": "u2", "performance_id": "p1", "rating": 5},
  {"user_id": "u2", "performance_id": "p3", "rating": 4}
]`

const testProfiles = `[
  {"user_id": "u1", "preferred_categories": ["뮤지컬"], "preferred_locations": ["서울"],
   "price_range": "high", "preferred_time": "저녁"}
]`

func testServer(t *testing.T, loadCatalog bool) *httptest.Server {
	t.Helper()

	store := catalog.NewStore(zerolog.Nop())
	if loadCatalog {
		dir := t.TempDir()
		write := func(name, content string) string {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatal(err)
			}
			return path
		}
		err := store.Load(
			write("performances.json", testPerformances),
			write("ratings.json", testRatings),
			write("profiles.json", testProfiles),
		)
		if err != nil {
			t.Fatalf("store load: %v", err)
		}
	}

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	router := NewRouter(NewHandler(store, engine), config.ServerConfig{})
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func decodeResponse(t *testing.T, resp *http.Response) APIResponse {
	t.Helper()
	defer resp.Body.Close()
	var envelope APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("live is always ok", func(t *testing.T) {
		srv := testServer(t, false)
		resp, err := http.Get(srv.URL + "/healthz/live")
		if err != nil {
			t.Fatal(err)
		}
		if env := decodeResponse(t, resp); !env.Success {
			t.Error("liveness reported failure")
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("ready requires a loaded catalog", func(t *testing.T) {
		srv := testServer(t, false)
		resp, err := http.Get(srv.URL + "/healthz/ready")
		if err != nil {
			t.Fatal(err)
		}
		env := decodeResponse(t, resp)
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", resp.StatusCode)
		}
		if env.Error == nil || env.Error.Code != CodeUnavailable {
			t.Errorf("unexpected error payload: %+v", env.Error)
		}
	})

	t.Run("ready after load", func(t *testing.T) {
		srv := testServer(t, true)
		resp, err := http.Get(srv.URL + "/healthz/ready")
		if err != nil {
			t.Fatal(err)
		}
		decodeResponse(t, resp)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})
}

func TestPerformanceEndpoints(t *testing.T) {
	srv := testServer(t, true)

	t.Run("list", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/performances")
		if err != nil {
			t.Fatal(err)
		}
		env := decodeResponse(t, resp)
		if !env.Success {
			t.Fatalf("unexpected failure: %+v", env.Error)
		}
		data := env.Data.(map[string]interface{})
		if total := data["total"].(float64); total != 3 {
			t.Errorf("total = %v, want 3", total)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/performances/p1")
		if err != nil {
			t.Fatal(err)
		}
		env := decodeResponse(t, resp)
		if !env.Success {
			t.Fatalf("unexpected failure: %+v", env.Error)
		}
		perf := env.Data.(map[string]interface{})
		if perf["title"] != "레미제라블" {
			t.Errorf("title = %v", perf["title"])
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/performances/p404")
		if err != nil {
			t.Fatal(err)
		}
		env := decodeResponse(t, resp)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
		if env.Error == nil || env.Error.Code != CodeNotFound {
			t.Errorf("unexpected error payload: %+v", env.Error)
		}
	})

	t.Run("similar excludes the target", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/performances/p1/similar?top_n=5")
		if err != nil {
			t.Fatal(err)
		}
		env := decodeResponse(t, resp)
		if !env.Success {
			t.Fatalf("unexpected failure: %+v", env.Error)
		}
		data := env.Data.(map[string]interface{})
		similar := data["similar"].([]interface{})
		if len(similar) != 2 {
			t.Fatalf("got %d similar, want 2", len(similar))
		}
		for _, s := range similar {
			rec := s.(map[string]interface{})
			perf := rec["performance"].(map[string]interface{})
			if perf["id"] == "p1" {
				t.Error("target listed among its own neighbors")
			}
		}
	})
}

func TestRecommendationEndpoints(t *testing.T) {
	srv := testServer(t, true)

	t.Run("stored profile", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/users/u1/recommendations?top_n=8")
		if err != nil {
			t.Fatal(err)
		}
		if got := resp.Header.Get("X-Request-ID"); got == "" {
			t.Error("missing X-Request-ID header")
		}
		env := decodeResponse(t, resp)
		if !env.Success {
			t.Fatalf("unexpected failure: %+v", env.Error)
		}
		data := env.Data.(map[string]interface{})
		items := data["items"].([]interface{})
		if len(items) == 0 || len(items) > 8 {
			t.Errorf("got %d items", len(items))
		}
	})

	t.Run("unknown user still gets recommendations", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/users/stranger/recommendations")
		if err != nil {
			t.Fatal(err)
		}
		env := decodeResponse(t, resp)
		if !env.Success {
			t.Fatalf("unexpected failure: %+v", env.Error)
		}
	})

	t.Run("invalid top_n", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/users/u1/recommendations?top_n=oops")
		if err != nil {
			t.Fatal(err)
		}
		env := decodeResponse(t, resp)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		if env.Error == nil || env.Error.Code != CodeValidation {
			t.Errorf("unexpected error payload: %+v", env.Error)
		}
	})

	t.Run("personalized", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/users/u1/recommendations/personalized")
		if err != nil {
			t.Fatal(err)
		}
		env := decodeResponse(t, resp)
		if !env.Success {
			t.Fatalf("unexpected failure: %+v", env.Error)
		}
	})

	t.Run("custom inline profile", func(t *testing.T) {
		body := `{
		  "user_id": "guest",
		  "top_n": 4,
		  "profile": {
		    "preferred_categories": ["연극"],
		    "preferred_locations": ["서울"],
		    "price_range": "medium",
		    "preferred_time": "저녁"
		  }
		}`
		resp, err := http.Post(srv.URL+"/api/v1/recommendations", "application/json",
			strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		env := decodeResponse(t, resp)
		if !env.Success {
			t.Fatalf("unexpected failure: %+v", env.Error)
		}
		data := env.Data.(map[string]interface{})
		items := data["items"].([]interface{})
		if len(items) == 0 || len(items) > 4 {
			t.Errorf("got %d items", len(items))
		}
	})

	t.Run("custom without user id", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/v1/recommendations", "application/json",
			strings.NewReader(`{"top_n": 4}`))
		if err != nil {
			t.Fatal(err)
		}
		env := decodeResponse(t, resp)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		if env.Error == nil || env.Error.Code != CodeValidation {
			t.Errorf("unexpected error payload: %+v", env.Error)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/v1/recommendations", "application/json",
			strings.NewReader("{nope"))
		if err != nil {
			t.Fatal(err)
		}
		env := decodeResponse(t, resp)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
		if env.Error == nil || env.Error.Code != CodeBadRequest {
			t.Errorf("unexpected error payload: %+v", env.Error)
		}
	})
}
