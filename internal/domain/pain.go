package domain

// Severity buckets a compound score into coarse alert tiers.
type Severity string

const (
	SeverityMild     Severity = "MILD"
	SeverityModerate Severity = "MODERATE"
	SeveritySevere   Severity = "SEVERE"
)

// SeverityFor maps a negative compound score to its tier.
func SeverityFor(compound float64) Severity {
	switch {
	case compound <= -0.5:
		return SeveritySevere
	case compound <= -0.25:
		return SeverityModerate
	default:
		return SeverityMild
	}
}

// SentimentScore is the full valence breakdown for one text span.
// Negative, Neutral, and Positive are proportions summing to 1;
// Compound is the normalized aggregate in [-1, 1].
type SentimentScore struct {
	Negative float64
	Neutral  float64
	Positive float64
	Compound float64
}

// PainPoint is a sentiment-confirmed negative mention of a keyword.
// Score is the compound valence of the context snippet and is always
// below the configured negative threshold.
type PainPoint struct {
	Keyword       string
	Snippet       string
	Score         float64
	SentenceIndex int
	Severity      Severity
}

// AnalysisResult is the outcome of running the pipeline over one post.
type AnalysisResult struct {
	CleanText        string
	Sentences        []string
	PainPoints       []PainPoint
	OverallSentiment float64
}

// HasPainPoints reports whether any negative match survived filtering.
func (r AnalysisResult) HasPainPoints() bool {
	return len(r.PainPoints) > 0
}

// MostSevere returns the pain point with the lowest compound score.
// Pain points are kept sorted ascending, so this is the first entry.
func (r AnalysisResult) MostSevere() (PainPoint, bool) {
	if len(r.PainPoints) == 0 {
		return PainPoint{}, false
	}
	return r.PainPoints[0], true
}
