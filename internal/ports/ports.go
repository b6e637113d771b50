package ports

import (
	"context"

	"painradar/internal/domain"
)

// FeedFetcher pulls fresh entries from one configured source.
type FeedFetcher interface {
	Fetch(ctx context.Context, src domain.Source) ([]domain.Post, error)
}

// SeenStore persists the set of already-processed item identifiers so the
// tracker survives restarts. Load returns identifiers in insertion order.
type SeenStore interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
}

// PainRepository records matched posts and their pain points for the
// analytics queries. The pipeline only writes; it never reads back.
type PainRepository interface {
	SavePost(ctx context.Context, match domain.Match) error
	SavePainPoint(ctx context.Context, post domain.Post, point domain.PainPoint) error
}

// KeywordCount pairs a keyword with its occurrence count over some window.
type KeywordCount struct {
	Keyword string
	Count   int
}

// FrequencyProvider answers the historical-frequency queries consumed by
// the trend scorer.
type FrequencyProvider interface {
	// RecentCount counts occurrences of keyword within the last days.
	RecentCount(ctx context.Context, keyword string, days int) (int, error)

	// BaselineCount counts occurrences between daysStart and daysEnd ago.
	BaselineCount(ctx context.Context, keyword string, daysStart, daysEnd int) (int, error)

	// KeywordFrequency returns the most frequent keywords of the last days.
	KeywordFrequency(ctx context.Context, days, limit int) ([]KeywordCount, error)
}
