// Package trend ranks recurring keywords by how fast their mention
// frequency is rising against a historical baseline.
package trend

import (
	"context"
	"fmt"

	"painradar/internal/ports"
)

// newKeywordMultiplier inflates keywords with no baseline presence so
// emergent pain points surface before they have history.
const newKeywordMultiplier = 10

// Direction classification thresholds.
const (
	risingThreshold  = 2.0
	fallingThreshold = 0.5
)

// Direction labels where a keyword's frequency is heading.
type Direction string

const (
	DirectionRising  Direction = "rising"
	DirectionStable  Direction = "stable"
	DirectionFalling Direction = "falling"
	DirectionNew     Direction = "new"
)

// Score computes the recency-weighted frequency ratio for one keyword.
// recentCount covers the last recentDays; baselineCount covers the full
// baselineDays window, so the baseline period excludes the recent days.
// A keyword with no baseline activity scores recentAvg times the
// new-keyword multiplier.
func Score(recentCount, recentDays, baselineCount, baselineDays int) float64 {
	if recentDays <= 0 {
		return 0
	}
	recentAvg := float64(recentCount) / float64(recentDays)

	baselinePeriod := baselineDays - recentDays
	var baselineAvg float64
	if baselinePeriod > 0 {
		baselineAvg = float64(baselineCount) / float64(baselinePeriod)
	}

	if baselineAvg > 0 {
		return recentAvg / baselineAvg
	}
	return recentAvg * newKeywordMultiplier
}

// Result is one keyword's trend evaluation.
type Result struct {
	Keyword     string
	RecentCount int
	RecentAvg   float64
	BaselineAvg float64
	Score       float64
	Direction   Direction
}

// Scorer evaluates keywords against the frequency history.
type Scorer struct {
	freq ports.FrequencyProvider
}

// NewScorer wires a frequency provider.
func NewScorer(freq ports.FrequencyProvider) *Scorer {
	return &Scorer{freq: freq}
}

// Trending scores each keyword over a recent window against the baseline
// window and classifies its direction. Keywords with no activity at all
// are omitted.
func (s *Scorer) Trending(ctx context.Context, keywords []string, recentDays, baselineDays int) ([]Result, error) {
	if s.freq == nil {
		return nil, fmt.Errorf("no frequency provider configured")
	}

	results := make([]Result, 0, len(keywords))
	for _, keyword := range keywords {
		recent, err := s.freq.RecentCount(ctx, keyword, recentDays)
		if err != nil {
			return nil, fmt.Errorf("recent count for %q: %w", keyword, err)
		}

		baseline, err := s.freq.BaselineCount(ctx, keyword, recentDays, baselineDays)
		if err != nil {
			return nil, fmt.Errorf("baseline count for %q: %w", keyword, err)
		}

		if recent == 0 && baseline == 0 {
			continue
		}

		r := Result{
			Keyword:     keyword,
			RecentCount: recent,
			Score:       Score(recent, recentDays, baseline, baselineDays),
		}
		if recentDays > 0 {
			r.RecentAvg = float64(recent) / float64(recentDays)
		}
		if period := baselineDays - recentDays; period > 0 {
			r.BaselineAvg = float64(baseline) / float64(period)
		}
		r.Direction = classify(r)
		results = append(results, r)
	}
	return results, nil
}

// classify buckets a result. A keyword absent from the baseline is
// emergent rather than trending, whatever its ratio says.
func classify(r Result) Direction {
	switch {
	case r.BaselineAvg == 0:
		return DirectionNew
	case r.Score > risingThreshold:
		return DirectionRising
	case r.Score < fallingThreshold:
		return DirectionFalling
	default:
		return DirectionStable
	}
}
