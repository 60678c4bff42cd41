// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package catalog

import (
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/stagenote/recommender/internal/metrics"
	"github.com/stagenote/recommender/internal/recommend"
	"github.com/stagenote/recommender/internal/validation"
)

// Store holds the loaded catalog in memory. It is safe for concurrent
// use; readers get stable snapshots while Reload swaps the data.
type Store struct {
	mu           sync.RWMutex
	performances []*recommend.Performance
	byID         map[string]*recommend.Performance
	ratings      []recommend.RatingEvent
	profiles     map[string]recommend.UserProfile
	logger       zerolog.Logger
}

// performanceRecord is the on-disk catalog schema.
type performanceRecord struct {
	ID          string              `json:"id" validate:"required"`
	Title       string              `json:"title" validate:"required"`
	Category    string              `json:"category"`
	Location    string              `json:"location"`
	Price       string              `json:"price"`
	Date        string              `json:"date"`
	Time        string              `json:"time"`
	Description string              `json:"description"`
	Likes       int                 `json:"likes" validate:"min=0"`
	Comments    []recommend.Comment `json:"comments"`
}

// ratingRecord is the on-disk rating event schema.
type ratingRecord struct {
	UserID        string  `json:"user_id" validate:"required"`
	PerformanceID string  `json:"performance_id" validate:"required"`
	Rating        float64 `json:"rating" validate:"min=1,max=5"`
}

// ProfileRecord is the user profile wire schema, shared by the profile
// file and the API's inline profiles. Legacy exports use the literal
// "all" for unrestricted price and time preferences.
type ProfileRecord struct {
	UserID         string             `json:"user_id" validate:"required"`
	Categories     []string           `json:"preferred_categories"`
	Locations      []string           `json:"preferred_locations"`
	PriceRange     string             `json:"price_range"`
	PreferredTime  string             `json:"preferred_time"`
	ViewingHistory []string           `json:"viewing_history"`
	Ratings        map[string]float64 `json:"ratings"`
}

// Profile converts the record to the engine's tri-state preference
// types: the "all" sentinel and empty strings both mean unrestricted.
func (rec ProfileRecord) Profile() recommend.UserProfile {
	profile := recommend.UserProfile{
		Categories: recommend.NewPreferenceSet(rec.Categories...),
		Locations:  recommend.NewPreferenceSet(rec.Locations...),
		Ratings:    rec.Ratings,
	}

	if bucket, ok := recommend.ParseBucket(rec.PriceRange); ok {
		profile.Price = recommend.PreferBucket(bucket)
	}
	if rec.PreferredTime != "" && rec.PreferredTime != "all" {
		profile.Time = recommend.PreferTime(rec.PreferredTime)
	}

	if len(rec.ViewingHistory) > 0 {
		profile.ViewingHistory = make(map[string]struct{}, len(rec.ViewingHistory))
		for _, title := range rec.ViewingHistory {
			profile.ViewingHistory[title] = struct{}{}
		}
	}
	return profile
}

// NewStore creates an empty store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		byID:     make(map[string]*recommend.Performance),
		profiles: make(map[string]recommend.UserProfile),
		logger:   logger.With().Str("component", "catalog").Logger(),
	}
}

// Load reads the performance file and the optional ratings and
// profiles files. Records failing validation are skipped with a
// warning rather than failing the whole load.
func (s *Store) Load(performancesPath, ratingsPath, profilesPath string) error {
	performances, err := s.loadPerformances(performancesPath)
	if err != nil {
		return err
	}

	var ratings []recommend.RatingEvent
	if ratingsPath != "" {
		if ratings, err = s.loadRatings(ratingsPath); err != nil {
			return err
		}
	}

	profiles := make(map[string]recommend.UserProfile)
	if profilesPath != "" {
		if profiles, err = s.loadProfiles(profilesPath); err != nil {
			return err
		}
	}

	byID := make(map[string]*recommend.Performance, len(performances))
	for _, p := range performances {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.performances = performances
	s.byID = byID
	s.ratings = ratings
	s.profiles = profiles
	s.mu.Unlock()

	metrics.CatalogSize.Set(float64(len(performances)))
	metrics.RatingEvents.Set(float64(len(ratings)))

	s.logger.Info().
		Int("performances", len(performances)).
		Int("ratings", len(ratings)).
		Int("profiles", len(profiles)).
		Msg("catalog loaded")
	return nil
}

func (s *Store) loadPerformances(path string) ([]*recommend.Performance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read performances: %w", err)
	}

	var records []performanceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse performances %s: %w", path, err)
	}

	out := make([]*recommend.Performance, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		if verr := validation.ValidateStruct(&rec); verr != nil {
			s.logger.Warn().
				Int("index", i).
				Str("id", rec.ID).
				Err(verr).
				Msg("skipping invalid performance record")
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			s.logger.Warn().Str("id", rec.ID).Msg("skipping duplicate performance id")
			continue
		}
		seen[rec.ID] = struct{}{}
		out = append(out, &recommend.Performance{
			ID:          rec.ID,
			Title:       rec.Title,
			Category:    rec.Category,
			Location:    rec.Location,
			Price:       rec.Price,
			Date:        rec.Date,
			Time:        rec.Time,
			Description: rec.Description,
			Likes:       rec.Likes,
			Comments:    rec.Comments,
		})
	}
	return out, nil
}

func (s *Store) loadRatings(path string) ([]recommend.RatingEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ratings: %w", err)
	}

	var records []ratingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse ratings %s: %w", path, err)
	}

	out := make([]recommend.RatingEvent, 0, len(records))
	for i, rec := range records {
		if verr := validation.ValidateStruct(&rec); verr != nil {
			s.logger.Warn().
				Int("index", i).
				Err(verr).
				Msg("skipping invalid rating record")
			continue
		}
		out = append(out, recommend.RatingEvent{
			UserID:        rec.UserID,
			PerformanceID: rec.PerformanceID,
			Rating:        rec.Rating,
		})
	}
	return out, nil
}

func (s *Store) loadProfiles(path string) (map[string]recommend.UserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	var records []ProfileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}

	out := make(map[string]recommend.UserProfile, len(records))
	for i, rec := range records {
		if verr := validation.ValidateStruct(&rec); verr != nil {
			s.logger.Warn().
				Int("index", i).
				Err(verr).
				Msg("skipping invalid profile record")
			continue
		}
		out[rec.UserID] = rec.Profile()
	}
	return out, nil
}

// Performances returns the current catalog snapshot. Callers must not
// modify the returned slice.
func (s *Store) Performances() []*recommend.Performance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.performances
}

// Get returns the performance with the given ID.
func (s *Store) Get(id string) (*recommend.Performance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// Ratings returns the loaded rating events.
func (s *Store) Ratings() []recommend.RatingEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ratings
}

// Profile returns the stored profile for the user. Unknown users get
// the zero profile, which is fully unrestricted.
func (s *Store) Profile(userID string) (recommend.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	return p, ok
}

// Len returns the number of loaded performances.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.performances)
}
