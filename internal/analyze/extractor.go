package analyze

import (
	"hash/fnv"
	"log/slog"
	"sort"

	"painradar/internal/domain"
)

const (
	// minTextLen is the shortest normalized text worth analyzing.
	minTextLen = 20

	// contextRadius is the number of sentences kept on each side of a match.
	contextRadius = 1

	// hashPrefixLen is how much of a snippet participates in window dedup.
	hashPrefixLen = 100
)

// DefaultNegativeThreshold marks compound scores below it as pain.
const DefaultNegativeThreshold = -0.05

// Extractor runs the full pipeline for one post: normalize, segment,
// locate keywords, score context windows, and keep only the negative ones.
type Extractor struct {
	threshold float64
	logger    *slog.Logger
}

// NewExtractor constructs an Extractor with the given negative threshold.
// A zero threshold is replaced by the default.
func NewExtractor(threshold float64, logger *slog.Logger) *Extractor {
	if threshold == 0 {
		threshold = DefaultNegativeThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{threshold: threshold, logger: logger}
}

// Threshold returns the configured negative-sentiment cutoff.
func (e *Extractor) Threshold() float64 {
	return e.threshold
}

// IsNegative reports whether a compound score counts as pain.
func (e *Extractor) IsNegative(compound float64) bool {
	return compound < e.threshold
}

// Analyze combines title and body, runs the pipeline, and returns every
// sentiment-confirmed pain point sorted most negative first. Malformed or
// too-short input degrades to an empty result; Analyze never fails.
func (e *Extractor) Analyze(title, body string, keywords []string) domain.AnalysisResult {
	combined := title
	if body != "" {
		combined = title + ". " + body
	}

	clean := Normalize(combined)
	if len(clean) < minTextLen {
		return domain.AnalysisResult{CleanText: clean}
	}

	sentences := Segment(clean)
	if len(sentences) == 0 {
		return domain.AnalysisResult{CleanText: clean}
	}

	overall := Score(clean).Compound

	var points []domain.PainPoint
	seenWindows := map[uint64]struct{}{}

	for _, keyword := range keywords {
		for _, idx := range Locate(sentences, keyword) {
			snippet, _, _ := Window(sentences, idx, contextRadius)

			h := snippetHash(snippet)
			if _, dup := seenWindows[h]; dup {
				continue
			}
			seenWindows[h] = struct{}{}

			compound := Score(snippet).Compound
			if !e.IsNegative(compound) {
				continue
			}

			points = append(points, domain.PainPoint{
				Keyword:       keyword,
				Snippet:       snippet,
				Score:         compound,
				SentenceIndex: idx,
				Severity:      domain.SeverityFor(compound),
			})
			e.logger.Debug("pain point found", "keyword", keyword, "score", compound)
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Score < points[j].Score
	})

	return domain.AnalysisResult{
		CleanText:        clean,
		Sentences:        sentences,
		PainPoints:       points,
		OverallSentiment: overall,
	}
}

// snippetHash fingerprints a window by its leading runes so overlapping
// context windows for adjacent keyword hits collapse to one.
func snippetHash(snippet string) uint64 {
	runes := []rune(snippet)
	if len(runes) > hashPrefixLen {
		runes = runes[:hashPrefixLen]
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(string(runes)))
	return h.Sum64()
}
