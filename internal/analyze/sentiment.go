package analyze

import (
	"math"
	"strings"
	"unicode"

	"painradar/internal/domain"
)

// Tuning constants for the valence heuristics. The normalization alpha and
// the increments are the empirical values the lexicon was calibrated with.
const (
	normalizationAlpha = 15.0
	negationDampener   = 0.74
	boosterIncrement   = 0.293
	capsEmphasis       = 0.733
	exclamationBonus   = 0.292
	maxExclamations    = 4
	negationLookback   = 3

	// Boost decays with distance from the scored word.
	boostDecayOne = 0.95
	boostDecayTwo = 0.90
)

// Score computes the sentiment of a text span: per-token lexicon valences
// adjusted for negation, intensifiers, capitalization, and exclamation
// emphasis, aggregated into a compound value in [-1, 1]. The function is
// pure; identical input always yields identical output.
func Score(text string) domain.SentimentScore {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return domain.SentimentScore{}
	}

	capDiff := hasCapsDifferential(tokens)
	valences := make([]float64, len(tokens))

	for i, token := range tokens {
		lower := strings.ToLower(token)
		valence, ok := lexicon[lower]
		if !ok {
			continue
		}

		if capDiff && isAllCaps(token) {
			valence += math.Copysign(capsEmphasis, valence)
		}

		for dist := 1; dist <= negationLookback && i-dist >= 0; dist++ {
			prev := strings.ToLower(tokens[i-dist])
			if _, negated := negations[prev]; negated {
				valence *= -negationDampener
				continue
			}
			if boost, boosted := boosters[prev]; boosted {
				scalar := boost
				if valence < 0 {
					scalar = -scalar
				}
				switch dist {
				case 2:
					scalar *= boostDecayOne
				case 3:
					scalar *= boostDecayTwo
				}
				if capDiff && isAllCaps(tokens[i-dist]) {
					scalar += math.Copysign(capsEmphasis, valence)
				}
				valence += scalar
			}
		}

		valences[i] = valence
	}

	return aggregate(valences, countExclamations(text))
}

func aggregate(valences []float64, exclamations int) domain.SentimentScore {
	var sum float64
	var posSum, negSum float64
	var neutral int

	for _, v := range valences {
		sum += v
		switch {
		case v > 0:
			posSum += v + 1 // +1 biases proportions toward scored terms
		case v < 0:
			negSum += -v + 1
		default:
			neutral++
		}
	}

	if exclamations > maxExclamations {
		exclamations = maxExclamations
	}
	emphasis := float64(exclamations) * exclamationBonus

	switch {
	case sum > 0:
		sum += emphasis
		posSum += emphasis
	case sum < 0:
		sum -= emphasis
		negSum += emphasis
	}

	score := domain.SentimentScore{Compound: normalize(sum)}

	total := posSum + negSum + float64(neutral)
	if total > 0 {
		score.Positive = posSum / total
		score.Negative = negSum / total
		score.Neutral = float64(neutral) / total
	}
	return score
}

// normalize maps an unbounded valence sum into [-1, 1].
func normalize(sum float64) float64 {
	norm := sum / math.Sqrt(sum*sum+normalizationAlpha)
	if norm > 1 {
		return 1
	}
	if norm < -1 {
		return -1
	}
	return norm
}

// tokenize splits text into word tokens, keeping intra-word apostrophes so
// contractions match the negation list.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			token := strings.Trim(current.String(), "'")
			if token != "" {
				tokens = append(tokens, token)
			}
			current.Reset()
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func countExclamations(text string) int {
	return strings.Count(text, "!")
}

// isAllCaps reports whether a token is emphasized via capitals. Single
// letters do not count.
func isAllCaps(token string) bool {
	letters := 0
	for _, r := range token {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters > 1
}

// hasCapsDifferential reports mixed casing: emphasis only means something
// when the writer is not shouting the whole message.
func hasCapsDifferential(tokens []string) bool {
	caps, plain := 0, 0
	for _, t := range tokens {
		if isAllCaps(t) {
			caps++
		} else {
			plain++
		}
	}
	return caps > 0 && plain > 0
}
