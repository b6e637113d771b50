// Package poller runs the recurring fetch-analyze-emit loop over the
// configured niches.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"painradar/internal/analyze"
	"painradar/internal/config"
	"painradar/internal/dedup"
	"painradar/internal/domain"
	"painradar/internal/ports"
)

// State reflects where the scheduler currently is in its loop.
type State string

const (
	StateIdle     State = "idle"
	StatePolling  State = "polling"
	StateSleeping State = "sleeping"
	StateStopped  State = "stopped"
)

// Retry backoff bounds in seconds, scaled by the attempt number.
const (
	retryDelayMin = 2 * time.Second
	retryDelayMax = 5 * time.Second
)

// ignoredAuthors are dropped before any analysis. Bot and tombstone
// entries carry no signal.
var ignoredAuthors = map[string]struct{}{
	"AutoModerator": {},
	"[deleted]":     {},
}

// Stats is a snapshot of the scheduler's counters.
type Stats struct {
	Cycles         int
	ItemsSeen      int
	Duplicates     int
	Matches        int
	PainPointsSeen int
	NeutralMatches int
	FetchFailures  int
}

// SchedulerDeps wires the driven adapters into the polling loop.
// Clock and Rand default to real implementations when nil.
type SchedulerDeps struct {
	Fetcher   ports.FeedFetcher
	Extractor *analyze.Extractor
	Tracker   dedup.Tracker
	Clock     Clock
	Rand      func() float64
	Logger    *slog.Logger

	// OnPainPoint receives matches that produced at least one pain
	// point. OnNeutralMatch receives keyword matches that did not.
	// Panics inside either are recovered and logged.
	OnPainPoint    func(ctx context.Context, match domain.Match)
	OnNeutralMatch func(ctx context.Context, match domain.Match)
}

// niche is a pre-expanded polling unit: its sources plus the keywords
// in configured and lowercase form.
type niche struct {
	name     string
	keywords []string
	lowered  []string
	sources  []domain.Source
}

// Scheduler drives the polling cycle across all niches.
type Scheduler struct {
	cfg       config.PollerConfig
	niches    []niche
	fetcher   ports.FeedFetcher
	extractor *analyze.Extractor
	tracker   dedup.Tracker
	clock     Clock
	randFloat func() float64
	logger    *slog.Logger
	onPain    func(ctx context.Context, match domain.Match)
	onNeutral func(ctx context.Context, match domain.Match)

	mu    sync.Mutex
	state State
	stats Stats
}

// NewScheduler expands the niche configuration into sources and wires
// the dependencies.
func NewScheduler(cfg config.PollerConfig, niches []config.NicheConfig, urlTemplate string, deps SchedulerDeps) *Scheduler {
	clock := deps.Clock
	if clock == nil {
		clock = NewClock()
	}

	randFloat := deps.Rand
	if randFloat == nil {
		randFloat = rand.Float64
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	expanded := make([]niche, 0, len(niches))
	for _, n := range niches {
		lowered := make([]string, len(n.Keywords))
		for i, kw := range n.Keywords {
			lowered[i] = strings.ToLower(kw)
		}
		expanded = append(expanded, niche{
			name:     n.Name,
			keywords: n.Keywords,
			lowered:  lowered,
			sources:  n.Sources(urlTemplate),
		})
	}

	return &Scheduler{
		cfg:       cfg,
		niches:    expanded,
		fetcher:   deps.Fetcher,
		extractor: deps.Extractor,
		tracker:   deps.Tracker,
		clock:     clock,
		randFloat: randFloat,
		logger:    logger.With("component", "poller"),
		onPain:    deps.OnPainPoint,
		onNeutral: deps.OnNeutralMatch,
		state:     StateIdle,
	}
}

// Run polls until the context is canceled. Cancellation is the only way
// to stop; in-flight fetches finish, no new attempts start.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("poller starting",
		"niches", len(s.niches),
		"intervalMin", s.cfg.IntervalMin(),
		"intervalMax", s.cfg.IntervalMax())

	for {
		if ctx.Err() != nil {
			s.setState(StateStopped)
			s.logger.Info("poller stopped")
			return nil
		}

		s.PollOnce(ctx)

		s.mu.Lock()
		s.stats.Cycles++
		cycles := s.stats.Cycles
		s.mu.Unlock()

		delay := s.uniform(s.cfg.IntervalMin(), s.cfg.IntervalMax())
		s.logger.Info("cycle complete", "cycle", cycles, "sleep", delay)

		s.setState(StateSleeping)
		if err := s.clock.Sleep(ctx, delay); err != nil {
			s.setState(StateStopped)
			s.logger.Info("poller stopped")
			return nil
		}
	}
}

// PollOnce sweeps every niche a single time. Niches run sequentially
// unless parallelism is configured above 1; ordering inside a niche is
// preserved either way.
func (s *Scheduler) PollOnce(ctx context.Context) {
	s.setState(StatePolling)

	if s.cfg.Parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.Parallelism)
		for _, n := range s.niches {
			n := n
			g.Go(func() error {
				s.pollNiche(gctx, n)
				return nil
			})
		}
		_ = g.Wait()
		return
	}

	jitterMin := time.Duration(s.cfg.NicheJitterMinSeconds) * time.Second
	jitterMax := time.Duration(s.cfg.NicheJitterMaxSeconds) * time.Second
	for i, n := range s.niches {
		if ctx.Err() != nil {
			return
		}
		s.pollNiche(ctx, n)
		if i < len(s.niches)-1 {
			if err := s.clock.Sleep(ctx, s.uniform(jitterMin, jitterMax)); err != nil {
				return
			}
		}
	}
}

// Stats returns a snapshot of the counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// State returns the scheduler's current loop phase.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) pollNiche(ctx context.Context, n niche) {
	delayMin := time.Duration(s.cfg.SourceDelayMinSeconds) * time.Second
	delayMax := time.Duration(s.cfg.SourceDelayMaxSeconds) * time.Second

	for i, src := range n.sources {
		if ctx.Err() != nil {
			return
		}

		posts, err := s.fetchWithRetry(ctx, src)
		if err != nil {
			s.count(func(st *Stats) { st.FetchFailures++ })
			s.logger.Warn("source failed, moving on",
				"niche", n.name, "channel", src.Channel, "error", err)
		}
		for _, post := range posts {
			s.processPost(ctx, n, post)
		}

		if i < len(n.sources)-1 {
			if err := s.clock.Sleep(ctx, s.uniform(delayMin, delayMax)); err != nil {
				return
			}
		}
	}

	if persistent, ok := s.tracker.(dedup.PersistentTracker); ok {
		if err := persistent.Persist(ctx); err != nil {
			s.logger.Warn("seen checkpoint failed", "niche", n.name, "error", err)
		}
	}
}

// fetchWithRetry attempts the fetch up to the configured limit, backing
// off uniform(2,5)*attempt seconds between attempts.
func (s *Scheduler) fetchWithRetry(ctx context.Context, src domain.Source) ([]domain.Post, error) {
	attempts := s.cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			backoff := s.uniform(retryDelayMin, retryDelayMax) * time.Duration(attempt)
			if err := s.clock.Sleep(ctx, backoff); err != nil {
				return nil, err
			}
		}

		fetchCtx := ctx
		cancel := context.CancelFunc(func() {})
		if s.cfg.FetchTimeoutSeconds > 0 {
			fetchCtx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.FetchTimeoutSeconds)*time.Second)
		}
		posts, err := s.fetcher.Fetch(fetchCtx, src)
		cancel()

		if err == nil {
			return posts, nil
		}
		lastErr = err
		s.logger.Debug("fetch attempt failed",
			"channel", src.Channel, "attempt", attempt, "error", err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("fetch %s after %d attempts: %w", src.URL, attempts, lastErr)
}

func (s *Scheduler) processPost(ctx context.Context, n niche, post domain.Post) {
	s.count(func(st *Stats) { st.ItemsSeen++ })

	if _, ignored := ignoredAuthors[post.Author]; ignored {
		return
	}

	if maxAge := s.cfg.MaxItemAge(); maxAge > 0 && !post.Published.IsZero() {
		if s.clock.Now().Sub(post.Published) > maxAge {
			return
		}
	}

	if s.tracker != nil && s.tracker.Check(post.ID) {
		s.count(func(st *Stats) { st.Duplicates++ })
		return
	}

	combined := post.CombinedText()
	matched := matchedKeywords(combined, n)
	if len(matched) == 0 {
		return
	}
	s.count(func(st *Stats) { st.Matches++ })

	result := s.extractor.Analyze(post.Title, post.Body, n.keywords)
	match := domain.Match{Post: post, Keywords: matched, Analysis: result}

	if result.HasPainPoints() {
		s.count(func(st *Stats) { st.PainPointsSeen += len(result.PainPoints) })
		s.logger.Info("pain point detected",
			"niche", n.name,
			"channel", post.Channel,
			"keywords", matched,
			"compound", result.OverallSentiment,
			"painPoints", len(result.PainPoints))
		s.emit(ctx, s.onPain, match, "pain")
		return
	}

	if result.OverallSentiment != 0 || len(matched) > 0 {
		s.count(func(st *Stats) { st.NeutralMatches++ })
		s.logger.Debug("keyword match without pain",
			"niche", n.name, "channel", post.Channel, "keywords", matched)
		s.emit(ctx, s.onNeutral, match, "neutral")
	}
}

// emit runs a callback, catching panics so one bad consumer cannot
// abort the cycle.
func (s *Scheduler) emit(ctx context.Context, fn func(ctx context.Context, match domain.Match), match domain.Match, name string) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("callback panicked", "callback", name, "panic", r)
		}
	}()
	fn(ctx, match)
}

func (s *Scheduler) count(apply func(st *Stats)) {
	s.mu.Lock()
	apply(&s.stats)
	s.mu.Unlock()
}

func (s *Scheduler) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// uniform picks a random duration in [min, max].
func (s *Scheduler) uniform(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(s.randFloat()*float64(max-min))
}

// matchedKeywords returns the configured keywords whose lowercase form
// occurs in the combined text, preserving configuration order.
func matchedKeywords(combined string, n niche) []string {
	var matched []string
	for i, kw := range n.lowered {
		if strings.Contains(combined, kw) {
			matched = append(matched, n.keywords[i])
		}
	}
	return matched
}
