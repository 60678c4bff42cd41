// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

package recommend

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Catalog price and date fields are free text entered by organizers.
// These parsers are strict; each caller decides its own lenient
// fallback so the degradation policy stays visible at the call site.

var (
	// ErrNoPrice indicates a price string with no parseable amount.
	ErrNoPrice = errors.New("no parseable price")

	// ErrNoDate indicates a date string in no recognized layout.
	ErrNoDate = errors.New("no parseable date")
)

// PriceBucket is a coarse price classification.
type PriceBucket int

const (
	// BucketLow covers prices up to 20,000.
	BucketLow PriceBucket = iota
	// BucketMedium covers prices up to 50,000.
	BucketMedium
	// BucketHigh covers everything above.
	BucketHigh
)

// String returns the bucket name.
func (b PriceBucket) String() string {
	switch b {
	case BucketLow:
		return "low"
	case BucketMedium:
		return "medium"
	case BucketHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseBucket converts a bucket name to a PriceBucket.
func ParseBucket(s string) (PriceBucket, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return BucketLow, true
	case "medium":
		return BucketMedium, true
	case "high":
		return BucketHigh, true
	default:
		return BucketLow, false
	}
}

// BucketForPrice classifies a numeric price.
func BucketForPrice(price int) PriceBucket {
	switch {
	case price <= 20000:
		return BucketLow
	case price <= 50000:
		return BucketMedium
	default:
		return BucketHigh
	}
}

// freeTokens mark a performance as free admission.
var freeTokens = []string{"무료", "free"}

// ParsePrice extracts the first integer run from a free-text price
// string, tolerating thousands separators ("80,000원" -> 80000).
// Strings containing a free-admission token parse as 0.
func ParsePrice(s string) (int, error) {
	lower := strings.ToLower(s)
	for _, tok := range freeTokens {
		if strings.Contains(lower, tok) {
			return 0, nil
		}
	}

	price := 0
	found := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			price = price*10 + int(r-'0')
			found = true
		case found && r == ',' && i+1 < len(runes) && runes[i+1] >= '0' && runes[i+1] <= '9':
			// thousands separator inside the number
		case found:
			return price, nil
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrNoPrice, s)
	}
	return price, nil
}

// BucketOf classifies a free-text price string, applying the lenient
// default: an unparsable, non-free price counts as 0 and lands in the
// low bucket alongside genuinely free performances.
func BucketOf(priceText string) PriceBucket {
	price, err := ParsePrice(priceText)
	if err != nil {
		price = 0
	}
	return BucketForPrice(price)
}

// dateLayouts are the accepted performance date formats, most common
// first.
var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
}

// ParseDate parses an ISO-like performance date string.
func ParseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrNoDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrNoDate, s)
}

// daysUntil returns whole days from today to the given date, both
// truncated to midnight UTC.
func daysUntil(date, today time.Time) int {
	d := asDay(date)
	t := asDay(today)
	return int(d.Sub(t).Hours() / 24)
}

// asDay truncates a time to its calendar day.
func asDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// containsToken reports whether the token occurs in the free-text
// field, ignoring case.
func containsToken(text, token string) bool {
	if token == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(token))
}

// tokenize lowercases text and splits it on anything that is not a
// letter or digit. Korean and other scripts survive intact.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
