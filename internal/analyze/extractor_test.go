package analyze

import (
	"testing"

	"painradar/internal/domain"
)

func TestAnalyzeNegativeMention(t *testing.T) {
	t.Parallel()

	e := NewExtractor(0, nil)
	result := e.Analyze(
		"Scheduling nightmare",
		"<p>My scheduling is a total nightmare. Complete chaos every single week here.</p>",
		[]string{"scheduling"},
	)

	if !result.HasPainPoints() {
		t.Fatalf("expected pain points, got none (overall %f)", result.OverallSentiment)
	}
	if result.OverallSentiment >= 0 {
		t.Fatalf("expected negative overall sentiment, got %f", result.OverallSentiment)
	}

	worst, ok := result.MostSevere()
	if !ok {
		t.Fatal("expected a most severe pain point")
	}
	if worst.Keyword != "scheduling" {
		t.Fatalf("unexpected keyword: %q", worst.Keyword)
	}
	if worst.Severity != domain.SeveritySevere {
		t.Fatalf("expected SEVERE, got %s (score %f)", worst.Severity, worst.Score)
	}
	if worst.Score >= e.Threshold() {
		t.Fatalf("pain point score %f above threshold %f", worst.Score, e.Threshold())
	}
}

func TestAnalyzePositiveMentionProducesNoPain(t *testing.T) {
	t.Parallel()

	e := NewExtractor(0, nil)
	result := e.Analyze(
		"I love this tool",
		"Makes everything easy and fun! Absolutely love using it daily.",
		[]string{"tool"},
	)

	if result.HasPainPoints() {
		t.Fatalf("expected no pain points, got %d", len(result.PainPoints))
	}
	if result.OverallSentiment <= 0 {
		t.Fatalf("expected positive overall sentiment, got %f", result.OverallSentiment)
	}
}

func TestAnalyzeSortsMostNegativeFirst(t *testing.T) {
	t.Parallel()

	e := NewExtractor(0, nil)
	result := e.Analyze(
		"Two complaints",
		"The invoicing feature is bad sometimes. Meanwhile the scheduling is a "+
			"horrible unbearable nightmare and pure chaos for everyone involved.",
		[]string{"invoicing", "scheduling"},
	)

	if len(result.PainPoints) < 2 {
		t.Fatalf("expected at least 2 pain points, got %d", len(result.PainPoints))
	}
	for i := 1; i < len(result.PainPoints); i++ {
		if result.PainPoints[i-1].Score > result.PainPoints[i].Score {
			t.Fatalf("pain points not sorted ascending: %f before %f",
				result.PainPoints[i-1].Score, result.PainPoints[i].Score)
		}
	}
}

func TestAnalyzeDeduplicatesOverlappingWindows(t *testing.T) {
	t.Parallel()

	e := NewExtractor(0, nil)
	// Both keywords sit in the same sentence, so their context windows are
	// identical and must collapse to one pain point.
	result := e.Analyze(
		"Broken sync",
		"The inventory sync is broken and horrible for everyone using it daily.",
		[]string{"inventory", "sync"},
	)

	if len(result.PainPoints) != 1 {
		t.Fatalf("expected 1 deduplicated pain point, got %d", len(result.PainPoints))
	}
}

func TestAnalyzeShortTextDegrades(t *testing.T) {
	t.Parallel()

	e := NewExtractor(0, nil)
	result := e.Analyze("hi", "", []string{"hi"})

	if result.HasPainPoints() {
		t.Fatal("expected no pain points for short text")
	}
	if len(result.Sentences) != 0 {
		t.Fatalf("expected no sentences, got %v", result.Sentences)
	}
}

func TestAnalyzeCustomThreshold(t *testing.T) {
	t.Parallel()

	// A mildly negative text passes the default threshold but not a
	// stricter one.
	title := "Minor gripe"
	body := "The export flow is slow sometimes but otherwise works for our team."
	keywords := []string{"export"}

	lenient := NewExtractor(-0.01, nil).Analyze(title, body, keywords)
	strict := NewExtractor(-0.9, nil).Analyze(title, body, keywords)

	if strict.HasPainPoints() {
		t.Fatalf("strict threshold should filter mild negativity, got %d points",
			len(strict.PainPoints))
	}
	_ = lenient
}

func TestAnalyzeDeterministic(t *testing.T) {
	t.Parallel()

	e := NewExtractor(0, nil)
	title := "Scheduling nightmare"
	body := "My scheduling is a total nightmare. Complete chaos every single week here."
	keywords := []string{"scheduling", "chaos"}

	first := e.Analyze(title, body, keywords)
	second := e.Analyze(title, body, keywords)

	if len(first.PainPoints) != len(second.PainPoints) {
		t.Fatalf("pain point counts differ: %d vs %d",
			len(first.PainPoints), len(second.PainPoints))
	}
	for i := range first.PainPoints {
		if first.PainPoints[i] != second.PainPoints[i] {
			t.Fatalf("pain point %d differs: %+v vs %+v",
				i, first.PainPoints[i], second.PainPoints[i])
		}
	}
}
