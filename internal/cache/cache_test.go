// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stagenote/recommender/internal/recommend"
)

func sampleItems(ids ...string) []recommend.Recommendation {
	items := make([]recommend.Recommendation, 0, len(ids))
	for i, id := range ids {
		items = append(items, recommend.Recommendation{
			Performance: &recommend.Performance{ID: id, Title: "공연 " + id},
			Score:       float64(len(ids) - i),
		})
	}
	return items
}

func TestCacheGetSet(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss on empty cache")
	}

	want := sampleItems("p1", "p2")
	c.Set("k1", want)

	got, ok := c.Get("k1")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if len(got) != 2 || got[0].Performance.ID != "p1" {
		t.Fatalf("unexpected cached items: %+v", got)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Keys != 1 {
		t.Fatalf("stats = %+v, want 1 hit, 1 miss, 1 key", stats)
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("k1", sampleItems("p1"))

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("k1"); ok {
		t.Fatal("expected expired entry to miss")
	}
	stats := c.Stats()
	if stats.Evictions != 1 {
		t.Fatalf("evictions = %d, want 1", stats.Evictions)
	}
	if stats.Keys != 0 {
		t.Fatalf("keys = %d, want 0 after expired entry removed", stats.Keys)
	}
}

func TestCacheClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("k1", sampleItems("p1"))
	c.Set("k2", sampleItems("p2"))

	c.Clear()

	if _, ok := c.Get("k1"); ok {
		t.Fatal("expected miss after Clear")
	}
	stats := c.Stats()
	if stats.Keys != 0 {
		t.Fatalf("keys = %d, want 0 after Clear", stats.Keys)
	}
	if stats.Evictions != 2 {
		t.Fatalf("evictions = %d, want 2", stats.Evictions)
	}
}

func TestCacheSweep(t *testing.T) {
	c := New(5 * time.Millisecond)
	c.Set("k1", sampleItems("p1"))
	c.Set("k2", sampleItems("p2"))

	time.Sleep(15 * time.Millisecond)
	c.sweep()

	stats := c.Stats()
	if stats.Keys != 0 {
		t.Fatalf("keys = %d, want 0 after sweep", stats.Keys)
	}
	if stats.Evictions != 2 {
		t.Fatalf("evictions = %d, want 2", stats.Evictions)
	}
}

func TestKeyDeterministicAndDistinct(t *testing.T) {
	a := Key("similar", "p1", "5")
	b := Key("similar", "p1", "5")
	if a != b {
		t.Fatal("same parts must produce the same key")
	}

	// Parts are delimited, so shifting a boundary changes the key.
	if Key("similar", "p15") == Key("similar", "p1", "5") {
		t.Fatal("different part boundaries must produce different keys")
	}
	if Key("similar", "p2", "5") == a {
		t.Fatal("different parts must produce different keys")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%3)
			for j := 0; j < 100; j++ {
				c.Set(key, sampleItems("p1"))
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if stats := c.Stats(); stats.Keys != 3 {
		t.Fatalf("keys = %d, want 3", stats.Keys)
	}
}
