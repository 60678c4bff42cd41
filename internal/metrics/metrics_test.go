// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	RecordAPIRequest("GET", "/api/v1/recommendations", 200, 42*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	if after != before+1 {
		t.Errorf("counter went %v -> %v, want +1", before, after)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("gauge = %v, want %v", got, base+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("gauge = %v, want %v", got, base)
	}
}

func TestCatalogGauges(t *testing.T) {
	CatalogSize.Set(123)
	if got := testutil.ToFloat64(CatalogSize); got != 123 {
		t.Errorf("CatalogSize = %v, want 123", got)
	}
	RatingEvents.Set(7)
	if got := testutil.ToFloat64(RatingEvents); got != 7 {
		t.Errorf("RatingEvents = %v, want 7", got)
	}
}
