package feeds

import (
	"context"
	"fmt"
	"log/slog"

	"painradar/internal/domain"
	"painradar/internal/ports"
)

// RegistrySource implements FeedFetcher by dispatching each source to
// the fetcher strategy it names.
type RegistrySource struct {
	registry *Registry
	logger   *slog.Logger
}

var _ ports.FeedFetcher = (*RegistrySource)(nil)

// NewRegistrySource wires the fetcher registry behind the port.
func NewRegistrySource(reg *Registry, log *slog.Logger) *RegistrySource {
	return &RegistrySource{registry: reg, logger: log}
}

// Fetch resolves the source's fetcher by name and executes it.
func (s *RegistrySource) Fetch(ctx context.Context, src domain.Source) ([]domain.Post, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("fetcher registry is not configured")
	}

	fetcher, err := s.registry.Resolve(src.Fetcher)
	if err != nil {
		return nil, fmt.Errorf("source %s/%s: %w", src.Niche, src.Channel, err)
	}

	posts, err := fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.URL, err)
	}

	s.debug("source fetched", "niche", src.Niche, "channel", src.Channel, "posts", len(posts))
	return posts, nil
}

func (s *RegistrySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
