// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package recommend

import (
	"sort"
	"time"
)

// Performance is a catalog entry as supplied by the external catalog
// service. The engine treats it as a read-only snapshot for the duration
// of one request; price, date, and time are free text and may be
// malformed or empty.
type Performance struct {
	// ID is the stable catalog identifier.
	ID string `json:"id"`

	// Title is the performance title.
	Title string `json:"title"`

	// Category is a genre tag, e.g. "뮤지컬".
	Category string `json:"category"`

	// Location is the venue region, e.g. "서울".
	Location string `json:"location"`

	// Price is free text and may contain currency symbols, commas,
	// or the literal "무료"/"free".
	Price string `json:"price"`

	// Date is an ISO-like date string; may be absent or malformed.
	Date string `json:"date"`

	// Time is free text that may contain a time-of-day token.
	Time string `json:"time"`

	// Description is free text, possibly empty.
	Description string `json:"description"`

	// Likes is the like count.
	Likes int `json:"likes"`

	// Comments is the ordered comment list; only the count matters
	// to the engine.
	Comments []Comment `json:"comments,omitempty"`
}

// Comment is a user comment on a performance.
type Comment struct {
	UserID  string `json:"user_id,omitempty"`
	Content string `json:"content,omitempty"`
}

// RatingEvent is a single explicit rating, used only to build the
// user×item matrix consumed by the collaborative filter.
type RatingEvent struct {
	UserID        string  `json:"user_id"`
	PerformanceID string  `json:"performance_id"`
	Rating        float64 `json:"rating"` // 1-5
}

// PreferenceSet is a tri-state string preference: the zero value (or an
// empty set) is unrestricted and matches everything.
type PreferenceSet struct {
	values map[string]struct{}
}

// NewPreferenceSet builds a preference set from the given values.
// Empty strings are ignored; no values means unrestricted.
func NewPreferenceSet(values ...string) PreferenceSet {
	s := PreferenceSet{}
	for _, v := range values {
		if v == "" {
			continue
		}
		if s.values == nil {
			s.values = make(map[string]struct{}, len(values))
		}
		s.values[v] = struct{}{}
	}
	return s
}

// Unrestricted reports whether the set matches everything.
func (s PreferenceSet) Unrestricted() bool {
	return len(s.values) == 0
}

// Contains reports whether v is one of the preferred values.
func (s PreferenceSet) Contains(v string) bool {
	_, ok := s.values[v]
	return ok
}

// Values returns the preferred values in sorted order.
func (s PreferenceSet) Values() []string {
	if len(s.values) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.values))
	for v := range s.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// BucketPreference is a tri-state price preference: the zero value is
// unrestricted.
type BucketPreference struct {
	bucket     PriceBucket
	restricted bool
}

// AnyPrice returns an unrestricted price preference.
func AnyPrice() BucketPreference {
	return BucketPreference{}
}

// PreferBucket returns a preference for the given bucket.
func PreferBucket(b PriceBucket) BucketPreference {
	return BucketPreference{bucket: b, restricted: true}
}

// Unrestricted reports whether any price is acceptable.
func (p BucketPreference) Unrestricted() bool {
	return !p.restricted
}

// Bucket returns the preferred bucket; meaningful only when restricted.
func (p BucketPreference) Bucket() PriceBucket {
	return p.bucket
}

// TimePreference is a tri-state time-of-day preference: the zero value
// is unrestricted.
type TimePreference struct {
	token      string
	restricted bool
}

// AnyTime returns an unrestricted time preference.
func AnyTime() TimePreference {
	return TimePreference{}
}

// PreferTime returns a preference for the given time-of-day token.
// An empty token means unrestricted.
func PreferTime(token string) TimePreference {
	if token == "" {
		return TimePreference{}
	}
	return TimePreference{token: token, restricted: true}
}

// Unrestricted reports whether any time is acceptable.
func (p TimePreference) Unrestricted() bool {
	return !p.restricted
}

// Token returns the preferred time token; empty when unrestricted.
func (p TimePreference) Token() string {
	return p.token
}

// Matches reports whether the preferred token appears in the
// performance's free-text time field.
func (p TimePreference) Matches(performanceTime string) bool {
	if !p.restricted {
		return false
	}
	return containsToken(performanceTime, p.token)
}

// UserProfile holds a user's explicit stated preferences. The zero value
// matches everything and carries no history or ratings.
type UserProfile struct {
	// Categories are the preferred genre tags.
	Categories PreferenceSet

	// Locations are the preferred venue regions.
	Locations PreferenceSet

	// Price is the preferred price bucket.
	Price BucketPreference

	// Time is the preferred time of day.
	Time TimePreference

	// ViewingHistory holds titles the user has already seen.
	ViewingHistory map[string]struct{}

	// Ratings maps performance ID to the user's rating in [1,5].
	Ratings map[string]float64
}

// Seen reports whether the title is in the user's viewing history.
func (p UserProfile) Seen(title string) bool {
	_, ok := p.ViewingHistory[title]
	return ok
}

// RatingFor returns the user's rating for the performance, if any.
func (p UserProfile) RatingFor(id string) (float64, bool) {
	r, ok := p.Ratings[id]
	return r, ok
}

// Recommendation is one ranked result. Performance is a reference into
// the caller's catalog, not an owned copy; Score is only meaningful for
// ranking within the result set it came from.
type Recommendation struct {
	// Performance references the recommended catalog entry.
	Performance *Performance `json:"performance"`

	// Score is the strategy-dependent ranking score.
	Score float64 `json:"score"`

	// Methods lists the strategies that contributed, in run order.
	Methods []string `json:"methods,omitempty"`

	// Reasons holds short human-readable justifications, in the order
	// strategies ran.
	Reasons []string `json:"reasons,omitempty"`
}

// Request is one recommendation request. The catalog and rating history
// are read-only snapshots supplied by the caller.
type Request struct {
	// UserID identifies the target user in the rating history.
	UserID string `json:"user_id"`

	// Profile holds the user's explicit preferences.
	Profile UserProfile `json:"-"`

	// Catalog is the candidate performance list.
	Catalog []*Performance `json:"-"`

	// Ratings is the global rating history across users. Optional;
	// collaborative filtering is skipped when empty.
	Ratings []RatingEvent `json:"-"`

	// TopN is the number of results to return.
	// Defaults to Config.DefaultTopN if zero.
	TopN int `json:"top_n,omitempty"`

	// Today anchors date-relative scoring. Zero means time.Now();
	// tests pin it for determinism.
	Today time.Time `json:"-"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Response is an ordered recommendation list plus diagnostics.
type Response struct {
	// Items is the ranked recommendation list.
	Items []Recommendation `json:"items"`

	// TotalCandidates is the catalog size considered.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// UserID is the user the recommendations are for.
	UserID string `json:"user_id"`

	// StrategiesUsed lists the strategies that contributed items.
	StrategiesUsed []string `json:"strategies_used"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// Strategy identifiers as reported in Recommendation.Methods and
// ResponseMetadata.StrategiesUsed.
const (
	StrategyPreference    = "preference"
	StrategyPopularity    = "popularity"
	StrategyDiversity     = "diversity"
	StrategyCollaborative = "collaborative"
	StrategyPersonalized  = "personalized"
	StrategySimilarity    = "similarity"
)
