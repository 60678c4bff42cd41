// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

// Package recommend implements a hybrid recommendation engine for live
// performances.
//
// # Architecture
//
// The engine combines four strategies into a single weighted slate:
//
//   - Preference: points for matches against stated genre, region,
//     price, and time preferences, adjusted by viewing history and
//     prior ratings
//   - Popularity: engagement (likes, comments) with an upcoming-date
//     recency bonus and per-genre weights
//   - Diversity: per-category quotas so one dominant genre cannot
//     crowd out the rest
//   - Collaborative: user-based k-nearest-neighbor filtering over
//     explicit ratings
//
// Each strategy contributes its top quarter of the requested count;
// scores for the same performance are weighted per strategy and
// summed. A separate personalized mode favors shows the user could
// attend soon, and SimilarTo ranks the catalog by content similarity
// to a given performance.
//
// # Determinism
//
// Same inputs produce identical outputs: strategies run in parallel
// but merge in a fixed order, grouping and matrix indices follow first
// encounter, sorts are stable, and score ties break by ascending
// performance ID. Date-relative scoring anchors on Request.Today so
// callers (and tests) can pin the clock.
//
// # Degradation
//
// Catalog fields are free text from upstream scrapers. Unparseable
// prices bucket as free, unparseable dates earn no recency or
// situational points, and a strategy that fails or panics contributes
// nothing rather than failing the request.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	resp, err := engine.Recommend(ctx, &recommend.Request{
//	    UserID:  userID,
//	    Profile: profile,
//	    Catalog: performances,
//	    Ratings: ratings,
//	    TopN:    20,
//	})
package recommend
