// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNegativeTopN rejects requests asking for a negative result count.
var ErrNegativeTopN = errors.New("top_n must not be negative")

// Strategy is one recommendation method. Implementations must be
// stateless and safe for concurrent use; the engine runs them in
// parallel against a shared read-only request.
type Strategy interface {
	// Name returns the stable strategy identifier.
	Name() string

	// Recommend scores the request's catalog and returns at most topN
	// recommendations, best first.
	Recommend(ctx context.Context, req *Request, topN int) ([]Recommendation, error)
}

// Engine combines the individual strategies into hybrid
// recommendations. It is safe for concurrent use.
type Engine struct {
	config Config
	logger zerolog.Logger

	// Hybrid strategies in merge order. Fixed at construction; order
	// determines Methods and Reasons ordering in merged results.
	strategies []Strategy

	personalized PersonalizedStrategy
}

// NewEngine creates a recommendation engine with the standard strategy
// ensemble.
func NewEngine(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		strategies: []Strategy{
			PreferenceStrategy{},
			PopularityStrategy{},
			DiversityStrategy{},
			CollaborativeStrategy{},
		},
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config { return e.config }

// Recommend produces hybrid recommendations for the request. Each
// strategy contributes its top quarter of the requested count; scores
// for the same performance are weighted and summed across strategies.
// A failing strategy contributes nothing rather than failing the
// request.
func (e *Engine) Recommend(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	req, err := e.normalizeRequest(req)
	if err != nil {
		return nil, err
	}
	logger := e.requestLogger(req)

	// Each strategy fills a quarter of the slate. Integer division is
	// deliberate: four strategies at topN 10 contribute two each.
	perStrategy := req.TopN / 4

	results := e.runStrategies(ctx, req, perStrategy)
	items, used := e.merge(results)
	items = truncate(items, req.TopN)

	resp := &Response{
		Items:           items,
		TotalCandidates: len(req.Catalog),
		Metadata: ResponseMetadata{
			RequestID:      req.RequestID,
			UserID:         req.UserID,
			StrategiesUsed: used,
			LatencyMS:      time.Since(start).Milliseconds(),
			Timestamp:      time.Now().UTC(),
		},
	}

	logger.Debug().
		Int("results", len(items)).
		Int("candidates", len(req.Catalog)).
		Strs("strategies", used).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("hybrid recommendation complete")

	return resp, nil
}

// Personalized produces the situational slate (upcoming and in-season
// shows matching stated preferences) outside the hybrid weighting.
func (e *Engine) Personalized(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	req, err := e.normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	items, err := e.personalized.Recommend(ctx, req, req.TopN)
	if err != nil {
		return nil, fmt.Errorf("personalized recommendation: %w", err)
	}

	return &Response{
		Items:           items,
		TotalCandidates: len(req.Catalog),
		Metadata: ResponseMetadata{
			RequestID:      req.RequestID,
			UserID:         req.UserID,
			StrategiesUsed: []string{StrategyPersonalized},
			LatencyMS:      time.Since(start).Milliseconds(),
			Timestamp:      time.Now().UTC(),
		},
	}, nil
}

// SimilarTo ranks the catalog by content similarity to the target
// performance. The target itself is excluded.
func (e *Engine) SimilarTo(ctx context.Context, target *Performance, catalog []*Performance, topN int) ([]Recommendation, error) {
	if target == nil {
		return nil, errors.New("target performance is required")
	}
	if topN < 0 {
		return nil, ErrNegativeTopN
	}
	if topN == 0 {
		topN = e.config.DefaultTopN
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(catalog))
	for _, perf := range catalog {
		if perf.ID == target.ID {
			continue
		}
		recs = append(recs, Recommendation{
			Performance: perf,
			Score:       ContentSimilarity(target, perf),
			Methods:     []string{StrategySimilarity},
			Reasons:     []string{fmt.Sprintf("'%s'와 비슷한 공연", target.Title)},
		})
	}
	sortByScore(recs)
	return truncate(recs, topN), nil
}

// normalizeRequest validates the request and fills defaults, returning
// a shallow copy so callers never see mutations.
func (e *Engine) normalizeRequest(req *Request) (*Request, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}
	if req.TopN < 0 {
		return nil, ErrNegativeTopN
	}

	r := *req
	if r.TopN == 0 {
		r.TopN = e.config.DefaultTopN
	}
	if r.Today.IsZero() {
		r.Today = time.Now()
	}
	if r.RequestID == "" {
		r.RequestID = uuid.NewString()
	}
	return &r, nil
}

// requestLogger attaches request context to the engine logger.
func (e *Engine) requestLogger(req *Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Logger()
}

// strategyResult holds one strategy's contribution.
type strategyResult struct {
	name string
	recs []Recommendation
	err  error
}

// runStrategies runs every strategy in parallel. A panic inside a
// strategy is converted into that strategy's error.
func (e *Engine) runStrategies(ctx context.Context, req *Request, topN int) []strategyResult {
	results := make([]strategyResult, len(e.strategies))
	var wg sync.WaitGroup

	for i, strat := range e.strategies {
		wg.Add(1)
		go func(idx int, s Strategy) {
			defer wg.Done()
			results[idx] = e.runStrategy(ctx, req, s, topN)
		}(i, strat)
	}

	wg.Wait()
	return results
}

// runStrategy runs a single strategy with panic isolation.
func (e *Engine) runStrategy(ctx context.Context, req *Request, s Strategy, topN int) (result strategyResult) {
	result.name = s.Name()
	defer func() {
		if r := recover(); r != nil {
			result.recs = nil
			result.err = fmt.Errorf("strategy %s panicked: %v", result.name, r)
		}
	}()

	result.recs, result.err = s.Recommend(ctx, req, topN)
	return result
}

// merge combines per-strategy results into a single weighted list.
// Contributions are folded in strategy order so Methods and Reasons
// are deterministic; ties in the final score break by performance ID.
func (e *Engine) merge(results []strategyResult) ([]Recommendation, []string) {
	byID := make(map[string]*Recommendation)
	var order []string
	used := make([]string, 0, len(results))

	for _, result := range results {
		if result.err != nil {
			e.logger.Warn().
				Str("strategy", result.name).
				Err(result.err).
				Msg("strategy failed, skipping its contribution")
			continue
		}
		if len(result.recs) == 0 {
			continue
		}
		used = append(used, result.name)

		weight := e.weightOf(result.name)
		for _, rec := range result.recs {
			id := rec.Performance.ID
			merged, ok := byID[id]
			if !ok {
				merged = &Recommendation{Performance: rec.Performance}
				byID[id] = merged
				order = append(order, id)
			}
			merged.Score += rec.Score * weight
			merged.Methods = append(merged.Methods, result.name)
			merged.Reasons = append(merged.Reasons, rec.Reasons...)
		}
	}

	out := make([]Recommendation, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sortByScore(out)
	return out, used
}

// weightOf maps a strategy name to its configured weight.
func (e *Engine) weightOf(name string) float64 {
	switch name {
	case StrategyPreference:
		return e.config.Weights.Preference
	case StrategyPopularity:
		return e.config.Weights.Popularity
	case StrategyDiversity:
		return e.config.Weights.Diversity
	case StrategyCollaborative:
		return e.config.Weights.Collaborative
	default:
		return 0
	}
}
