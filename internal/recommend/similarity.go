// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package recommend

import (
	"math"
	"sort"
)

// Content similarity weights. Category dominates because two shows in
// the same genre are interchangeable to most users in a way that two
// shows in the same city are not.
const (
	weightCategory = 0.3
	weightLocation = 0.2
	weightPrice    = 0.2
	weightText     = 0.3
)

// ContentSimilarity scores how alike two performances are, in [0, 1].
// Exact category and location matches, price bucket equality, and
// TF-IDF cosine similarity of the descriptions each contribute a
// weighted share.
func ContentSimilarity(a, b *Performance) float64 {
	var categorySim, locationSim, priceSim float64
	if a.Category == b.Category {
		categorySim = 1
	}
	if a.Location == b.Location {
		locationSim = 1
	}
	if BucketOf(a.Price) == BucketOf(b.Price) {
		priceSim = 1
	}
	textSim := textSimilarity(a.Description, b.Description)

	return categorySim*weightCategory +
		locationSim*weightLocation +
		priceSim*weightPrice +
		textSim*weightText
}

// textSimilarity computes the TF-IDF cosine similarity of two texts,
// treating them as a two-document corpus. Empty texts score 0.
func textSimilarity(text1, text2 string) float64 {
	if text1 == "" || text2 == "" {
		return 0
	}

	tf1 := termCounts(tokenize(text1))
	tf2 := termCounts(tokenize(text2))
	if len(tf1) == 0 || len(tf2) == 0 {
		return 0
	}

	// Smoothed IDF over the two-document corpus: terms shared by both
	// documents are discounted relative to terms unique to one.
	idf := func(term string) float64 {
		df := 0
		if _, ok := tf1[term]; ok {
			df++
		}
		if _, ok := tf2[term]; ok {
			df++
		}
		return math.Log(3.0/float64(1+df)) + 1
	}

	// Accumulate in sorted term order so identical inputs sum in an
	// identical order and produce bit-identical scores.
	var dot, norm1, norm2 float64
	for _, term := range sortedTerms(tf1) {
		w := idf(term)
		v1 := float64(tf1[term]) * w
		norm1 += v1 * v1
		if c2, ok := tf2[term]; ok {
			dot += v1 * float64(c2) * w
		}
	}
	for _, term := range sortedTerms(tf2) {
		v2 := float64(tf2[term]) * idf(term)
		norm2 += v2 * v2
	}
	if norm1 == 0 || norm2 == 0 {
		return 0
	}
	return dot / (math.Sqrt(norm1) * math.Sqrt(norm2))
}

// sortedTerms returns the map keys in sorted order.
func sortedTerms(tf map[string]int) []string {
	terms := make([]string, 0, len(tf))
	for t := range tf {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// termCounts builds raw term frequencies.
func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts
}

// cosine computes the cosine similarity of two equal-length vectors,
// returning 0 when either has zero magnitude.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
