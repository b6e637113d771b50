package trend

import (
	"context"
	"errors"
	"math"
	"testing"

	"painradar/internal/ports"
)

func TestScoreRisingKeyword(t *testing.T) {
	t.Parallel()

	// 10 mentions in the last day against 7 spread over the prior 6 days.
	got := Score(10, 1, 7, 7)
	want := 10.0 / (7.0 / 6.0)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestScoreNewKeywordMultiplier(t *testing.T) {
	t.Parallel()

	got := Score(5, 1, 0, 7)
	if got != 50 {
		t.Fatalf("expected 50, got %f", got)
	}
}

func TestScoreZeroRecentDays(t *testing.T) {
	t.Parallel()

	if got := Score(10, 0, 7, 7); got != 0 {
		t.Fatalf("expected 0, got %f", got)
	}
}

func TestScoreEqualWindowsHaveNoBaseline(t *testing.T) {
	t.Parallel()

	// baselineDays == recentDays leaves no baseline period, so the
	// keyword counts as new.
	got := Score(4, 2, 9, 2)
	if got != 2*10 {
		t.Fatalf("expected new-keyword score 20, got %f", got)
	}
}

// stubFrequency answers the count queries from fixed tables.
type stubFrequency struct {
	recent   map[string]int
	baseline map[string]int
	err      error
}

var _ ports.FrequencyProvider = (*stubFrequency)(nil)

func (s *stubFrequency) RecentCount(_ context.Context, keyword string, _ int) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.recent[keyword], nil
}

func (s *stubFrequency) BaselineCount(_ context.Context, keyword string, _, _ int) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.baseline[keyword], nil
}

func (s *stubFrequency) KeywordFrequency(context.Context, int, int) ([]ports.KeywordCount, error) {
	return nil, nil
}

func TestTrendingClassifiesDirections(t *testing.T) {
	t.Parallel()

	freq := &stubFrequency{
		recent:   map[string]int{"rising": 18, "stable": 6, "falling": 1, "fresh": 3},
		baseline: map[string]int{"rising": 36, "stable": 36, "falling": 36, "fresh": 0},
	}
	scorer := NewScorer(freq)

	results, err := scorer.Trending(context.Background(),
		[]string{"rising", "stable", "falling", "fresh", "silent"}, 1, 7)
	if err != nil {
		t.Fatalf("trending: %v", err)
	}

	byKeyword := map[string]Result{}
	for _, r := range results {
		byKeyword[r.Keyword] = r
	}

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if _, ok := byKeyword["silent"]; ok {
		t.Fatal("keyword with no activity should be omitted")
	}
	if d := byKeyword["rising"].Direction; d != DirectionRising {
		t.Fatalf("expected rising, got %s", d)
	}
	if d := byKeyword["stable"].Direction; d != DirectionStable {
		t.Fatalf("expected stable, got %s", d)
	}
	if d := byKeyword["falling"].Direction; d != DirectionFalling {
		t.Fatalf("expected falling, got %s", d)
	}
	if d := byKeyword["fresh"].Direction; d != DirectionNew {
		t.Fatalf("expected new, got %s", d)
	}
}

func TestTrendingNewBeatsRatio(t *testing.T) {
	t.Parallel()

	// Zero baseline always classifies as new even though the score is
	// huge, which would otherwise read as rising.
	freq := &stubFrequency{
		recent:   map[string]int{"fresh": 20},
		baseline: map[string]int{},
	}
	scorer := NewScorer(freq)

	results, err := scorer.Trending(context.Background(), []string{"fresh"}, 1, 7)
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Direction != DirectionNew {
		t.Fatalf("expected new, got %s", results[0].Direction)
	}
	if results[0].Score != 200 {
		t.Fatalf("expected score 200, got %f", results[0].Score)
	}
}

func TestTrendingPropagatesQueryErrors(t *testing.T) {
	t.Parallel()

	freq := &stubFrequency{err: errors.New("db down")}
	scorer := NewScorer(freq)

	if _, err := scorer.Trending(context.Background(), []string{"x"}, 1, 7); err == nil {
		t.Fatal("expected query error to propagate")
	}
}

func TestTrendingWithoutProvider(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(nil)
	if _, err := scorer.Trending(context.Background(), []string{"x"}, 1, 7); err == nil {
		t.Fatal("expected error without a provider")
	}
}
