package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"painradar/internal/domain"
)

const (
	configPathEnv      = "PAINRADAR_CONFIG"
	databaseDSNEnv     = "DATABASE_DSN"
	seenFileEnv        = "SEEN_POSTS_FILE"
	logLevelEnv        = "LOG_LEVEL"
	pollIntervalMinEnv = "POLL_INTERVAL_MIN"
	pollIntervalMaxEnv = "POLL_INTERVAL_MAX"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Poller   PollerConfig   `yaml:"poller"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Dedup    DedupConfig    `yaml:"dedup"`
	Feed     FeedConfig     `yaml:"feed"`
	Niches   []NicheConfig  `yaml:"niches"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes the analytics store. An empty DSN disables it;
// a postgres:// DSN selects the Postgres driver, anything else is treated
// as a SQLite path.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// PollerConfig defines cycle timing, retry policy, and politeness delays.
// All durations are in seconds except MaxItemAgeHours.
type PollerConfig struct {
	IntervalMinSeconds    int `yaml:"intervalMinSeconds"`
	IntervalMaxSeconds    int `yaml:"intervalMaxSeconds"`
	NicheJitterMinSeconds int `yaml:"nicheJitterMinSeconds"`
	NicheJitterMaxSeconds int `yaml:"nicheJitterMaxSeconds"`
	SourceDelayMinSeconds int `yaml:"sourceDelayMinSeconds"`
	SourceDelayMaxSeconds int `yaml:"sourceDelayMaxSeconds"`
	MaxAttempts           int `yaml:"maxAttempts"`
	MaxItemAgeHours       int `yaml:"maxItemAgeHours"`
	FetchTimeoutSeconds   int `yaml:"fetchTimeoutSeconds"`
	Parallelism           int `yaml:"parallelism"`
}

// IntervalMin returns the minimum inter-cycle sleep.
func (p PollerConfig) IntervalMin() time.Duration {
	return time.Duration(p.IntervalMinSeconds) * time.Second
}

// IntervalMax returns the maximum inter-cycle sleep.
func (p PollerConfig) IntervalMax() time.Duration {
	return time.Duration(p.IntervalMaxSeconds) * time.Second
}

// MaxItemAge returns the oldest publication age still processed.
func (p PollerConfig) MaxItemAge() time.Duration {
	return time.Duration(p.MaxItemAgeHours) * time.Hour
}

// AnalysisConfig tunes the sentiment filter.
type AnalysisConfig struct {
	NegativeThreshold float64 `yaml:"negativeThreshold"`
}

// DedupConfig bounds the seen-posts tracker.
type DedupConfig struct {
	SeenFile        string `yaml:"seenFile"`
	MaxSeen         int    `yaml:"maxSeen"`
	CooldownSeconds int    `yaml:"cooldownSeconds"`
}

// Cooldown returns how long an identifier stays suppressed in the
// cooldown tracker.
func (d DedupConfig) Cooldown() time.Duration {
	return time.Duration(d.CooldownSeconds) * time.Second
}

// FeedConfig holds the endpoint template expanded per channel.
type FeedConfig struct {
	URLTemplate string `yaml:"urlTemplate"`
}

// NicheConfig describes one topic category: its channels and keywords.
type NicheConfig struct {
	Name     string   `yaml:"name"`
	Channels []string `yaml:"channels"`
	Keywords []string `yaml:"keywords"`
	Fetcher  string   `yaml:"fetcher"`
}

// Sources expands the niche's channels into concrete feed sources.
func (n NicheConfig) Sources(urlTemplate string) []domain.Source {
	fetcher := n.Fetcher
	if fetcher == "" {
		fetcher = "rss"
	}
	sources := make([]domain.Source, 0, len(n.Channels))
	for _, channel := range n.Channels {
		sources = append(sources, domain.Source{
			Niche:   n.Name,
			Channel: channel,
			URL:     fmt.Sprintf(urlTemplate, channel),
			Fetcher: fetcher,
		})
	}
	return sources
}

// Load reads .env, YAML configuration (if present), and environment
// overrides, in that order of increasing precedence.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Niches) == 0 {
		cfg.Niches = defaultConfig().Niches
	}

	return cfg
}

// Validate reports configuration problems without failing startup.
func (c Config) Validate() []string {
	var issues []string
	if c.Poller.IntervalMinSeconds < 60 {
		issues = append(issues, "poller interval minimum should be at least 60 seconds to avoid rate limiting")
	}
	if c.Poller.IntervalMaxSeconds < c.Poller.IntervalMinSeconds {
		issues = append(issues, "poller interval maximum should not be below the minimum")
	}
	for _, niche := range c.Niches {
		if len(niche.Keywords) == 0 {
			issues = append(issues, fmt.Sprintf("niche %s has no keywords configured", niche.Name))
		}
		if len(niche.Channels) == 0 {
			issues = append(issues, fmt.Sprintf("niche %s has no channels configured", niche.Name))
		}
	}
	return issues
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(seenFileEnv); v != "" {
		c.Dedup.SeenFile = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := envInt(pollIntervalMinEnv); v > 0 {
		c.Poller.IntervalMinSeconds = v
	}

	if v := envInt(pollIntervalMaxEnv); v > 0 {
		c.Poller.IntervalMaxSeconds = v
	}
}

func envInt(key string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: invalid %s=%q: %v", key, raw, err)
		return 0
	}
	return v
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Poller.IntervalMinSeconds > 0 {
		base.Poller.IntervalMinSeconds = override.Poller.IntervalMinSeconds
	}
	if override.Poller.IntervalMaxSeconds > 0 {
		base.Poller.IntervalMaxSeconds = override.Poller.IntervalMaxSeconds
	}
	if override.Poller.NicheJitterMinSeconds > 0 {
		base.Poller.NicheJitterMinSeconds = override.Poller.NicheJitterMinSeconds
	}
	if override.Poller.NicheJitterMaxSeconds > 0 {
		base.Poller.NicheJitterMaxSeconds = override.Poller.NicheJitterMaxSeconds
	}
	if override.Poller.SourceDelayMinSeconds > 0 {
		base.Poller.SourceDelayMinSeconds = override.Poller.SourceDelayMinSeconds
	}
	if override.Poller.SourceDelayMaxSeconds > 0 {
		base.Poller.SourceDelayMaxSeconds = override.Poller.SourceDelayMaxSeconds
	}
	if override.Poller.MaxAttempts > 0 {
		base.Poller.MaxAttempts = override.Poller.MaxAttempts
	}
	if override.Poller.MaxItemAgeHours > 0 {
		base.Poller.MaxItemAgeHours = override.Poller.MaxItemAgeHours
	}
	if override.Poller.FetchTimeoutSeconds > 0 {
		base.Poller.FetchTimeoutSeconds = override.Poller.FetchTimeoutSeconds
	}
	if override.Poller.Parallelism > 0 {
		base.Poller.Parallelism = override.Poller.Parallelism
	}

	if override.Analysis.NegativeThreshold != 0 {
		base.Analysis.NegativeThreshold = override.Analysis.NegativeThreshold
	}

	if override.Dedup.SeenFile != "" {
		base.Dedup.SeenFile = override.Dedup.SeenFile
	}
	if override.Dedup.MaxSeen > 0 {
		base.Dedup.MaxSeen = override.Dedup.MaxSeen
	}
	if override.Dedup.CooldownSeconds > 0 {
		base.Dedup.CooldownSeconds = override.Dedup.CooldownSeconds
	}

	if override.Feed.URLTemplate != "" {
		base.Feed = override.Feed
	}

	if len(override.Niches) > 0 {
		base.Niches = override.Niches
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{DSN: ""},
		Poller: PollerConfig{
			IntervalMinSeconds:    300,
			IntervalMaxSeconds:    600,
			NicheJitterMinSeconds: 5,
			NicheJitterMaxSeconds: 15,
			SourceDelayMinSeconds: 1,
			SourceDelayMaxSeconds: 3,
			MaxAttempts:           3,
			MaxItemAgeHours:       168,
			FetchTimeoutSeconds:   30,
			Parallelism:           1,
		},
		Analysis: AnalysisConfig{NegativeThreshold: -0.05},
		Dedup: DedupConfig{
			SeenFile:        "data/seen_posts.json",
			MaxSeen:         10000,
			CooldownSeconds: 3600,
		},
		Feed: FeedConfig{URLTemplate: "https://old.reddit.com/r/%s/new/.rss?limit=25"},
		Niches: []NicheConfig{
			{
				Name:     "sweaty-startup",
				Channels: []string{"sweatystartup", "smallbusiness", "Entrepreneur"},
				Keywords: []string{"paperwork", "scheduling nightmare", "invoicing mess", "no show"},
			},
			{
				Name:     "agency-owners",
				Channels: []string{"freelance", "webdev", "marketing"},
				Keywords: []string{"client onboarding", "scope creep", "chasing clients", "getting paid"},
			},
			{
				Name:     "ecommerce-ops",
				Channels: []string{"shopify", "ecommerce", "dropship"},
				Keywords: []string{"too many apps", "inventory sync", "broken theme", "shipping rates", "sync error"},
			},
			{
				Name:     "content-creators",
				Channels: []string{"NewTubers", "Twitch", "youtubers"},
				Keywords: []string{"editing takes forever", "editor expensive", "captioning time"},
			},
			{
				Name:     "recruiters",
				Channels: []string{"recruiting", "humanresources", "recruitinghell"},
				Keywords: []string{"clunky ats", "resume parsing", "manual entry", "candidate tracking"},
			},
		},
	}
}
