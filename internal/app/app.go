// Package app wires configuration into the running pipeline.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"painradar/internal/analyze"
	"painradar/internal/config"
	"painradar/internal/dedup"
	"painradar/internal/domain"
	"painradar/internal/feeds"
	"painradar/internal/infrastructure/rss"
	"painradar/internal/infrastructure/storage"
	"painradar/internal/logging"
	"painradar/internal/poller"
	"painradar/internal/trend"
)

// Application wires configs to the polling pipeline and its adapters.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	store     *storage.SQLStore
	tracker   dedup.Tracker
	scheduler *poller.Scheduler
	trends    *trend.Scorer
}

// New builds a runnable application instance. The database is optional;
// without a DSN matches are only logged.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	for _, issue := range cfg.Validate() {
		baseLogger.Warn("config issue", "issue", issue)
	}

	var store *storage.SQLStore
	if cfg.Database.DSN != "" {
		var err error
		store, err = storage.Open(cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open analytics store: %w", err)
		}
		baseLogger.Info("analytics store connected")
	} else {
		baseLogger.Info("no database configured, matches are log-only")
	}

	tracker := buildTracker(ctx, cfg.Dedup, baseLogger)

	extractor := analyze.NewExtractor(cfg.Analysis.NegativeThreshold,
		baseLogger.With("component", "extractor"))

	registry := feeds.NewRegistry()
	registry.Register(rss.NewFetcher(nil))
	source := feeds.NewRegistrySource(registry, baseLogger.With("component", "feeds"))

	a := &Application{
		cfg:     cfg,
		logger:  baseLogger,
		store:   store,
		tracker: tracker,
	}

	a.scheduler = poller.NewScheduler(cfg.Poller, cfg.Niches, cfg.Feed.URLTemplate, poller.SchedulerDeps{
		Fetcher:        source,
		Extractor:      extractor,
		Tracker:        tracker,
		Logger:         baseLogger,
		OnPainPoint:    a.handlePain,
		OnNeutralMatch: a.handleNeutral,
	})

	if store != nil {
		a.trends = trend.NewScorer(store)
	}

	return a, nil
}

// buildTracker picks the dedup policy: a persisted capacity-bounded set
// when a seen file is configured, a cooldown LRU otherwise.
func buildTracker(ctx context.Context, cfg config.DedupConfig, logger *slog.Logger) dedup.Tracker {
	if cfg.SeenFile != "" {
		seenStore := storage.NewSeenFile(cfg.SeenFile)
		return dedup.NewSeenSet(ctx, seenStore, cfg.MaxSeen, logger.With("component", "dedup"))
	}
	return dedup.NewCooldownCache(cfg.MaxSeen, cfg.Cooldown())
}

// Run polls until the context is canceled, then checkpoints the tracker
// and releases the store.
func (a *Application) Run(ctx context.Context) error {
	err := a.scheduler.Run(ctx)

	if persistent, ok := a.tracker.(dedup.PersistentTracker); ok {
		if perr := persistent.Persist(context.Background()); perr != nil {
			a.logger.Warn("final seen checkpoint failed", "error", perr)
		}
	}
	if a.store != nil {
		if cerr := a.store.Close(); cerr != nil {
			a.logger.Warn("closing analytics store failed", "error", cerr)
		}
	}

	stats := a.scheduler.Stats()
	a.logger.Info("pipeline finished",
		"cycles", stats.Cycles,
		"items", stats.ItemsSeen,
		"matches", stats.Matches,
		"painPoints", stats.PainPointsSeen)

	return err
}

// TrendReport logs the trending keywords over the given windows. It
// requires a configured database.
func (a *Application) TrendReport(ctx context.Context, recentDays, baselineDays int) error {
	if a.trends == nil || a.store == nil {
		return fmt.Errorf("trend report requires a configured database")
	}
	defer a.store.Close()

	var keywords []string
	for _, n := range a.cfg.Niches {
		keywords = append(keywords, n.Keywords...)
	}

	results, err := a.trends.Trending(ctx, keywords, recentDays, baselineDays)
	if err != nil {
		return fmt.Errorf("score trends: %w", err)
	}

	for _, r := range results {
		a.logger.Info("keyword trend",
			"keyword", r.Keyword,
			"direction", string(r.Direction),
			"score", r.Score,
			"recent", r.RecentCount)
	}

	top, err := a.store.KeywordFrequency(ctx, recentDays, 10)
	if err != nil {
		return fmt.Errorf("keyword frequency: %w", err)
	}
	for _, kc := range top {
		a.logger.Info("top keyword", "keyword", kc.Keyword, "count", kc.Count)
	}
	return nil
}

func (a *Application) handlePain(ctx context.Context, match domain.Match) {
	if a.store == nil {
		return
	}

	if err := a.store.SavePost(ctx, match); err != nil {
		a.logger.Error("save post failed", "post", match.Post.ID, "error", err)
		return
	}
	for _, point := range match.Analysis.PainPoints {
		if err := a.store.SavePainPoint(ctx, match.Post, point); err != nil {
			a.logger.Error("save pain point failed",
				"post", match.Post.ID, "keyword", point.Keyword, "error", err)
		}
	}
}

func (a *Application) handleNeutral(ctx context.Context, match domain.Match) {
	if a.store == nil {
		return
	}

	if err := a.store.SavePost(ctx, match); err != nil {
		a.logger.Error("save post failed", "post", match.Post.ID, "error", err)
	}
}
