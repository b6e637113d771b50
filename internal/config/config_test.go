package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsAreComplete(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Poller.IntervalMin() != 5*time.Minute {
		t.Fatalf("unexpected interval min: %v", cfg.Poller.IntervalMin())
	}
	if cfg.Poller.MaxItemAge() != 7*24*time.Hour {
		t.Fatalf("unexpected max item age: %v", cfg.Poller.MaxItemAge())
	}
	if cfg.Analysis.NegativeThreshold >= 0 {
		t.Fatalf("negative threshold must be negative: %f", cfg.Analysis.NegativeThreshold)
	}
	if len(cfg.Niches) == 0 {
		t.Fatal("expected default niches")
	}
	for _, n := range cfg.Niches {
		if len(n.Channels) == 0 || len(n.Keywords) == 0 {
			t.Fatalf("niche %s is incomplete", n.Name)
		}
	}
}

func TestNicheSourcesExpandTemplate(t *testing.T) {
	n := NicheConfig{Name: "ops", Channels: []string{"shopify", "ecommerce"}}

	sources := n.Sources("https://old.reddit.com/r/%s/new/.rss?limit=25")
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(sources))
	}
	if sources[0].URL != "https://old.reddit.com/r/shopify/new/.rss?limit=25" {
		t.Fatalf("unexpected url: %s", sources[0].URL)
	}
	if sources[0].Fetcher != "rss" {
		t.Fatalf("expected default fetcher rss, got %s", sources[0].Fetcher)
	}
	if sources[1].Niche != "ops" || sources[1].Channel != "ecommerce" {
		t.Fatalf("unexpected source: %+v", sources[1])
	}
}

func TestMergeConfigOverridesSelectively(t *testing.T) {
	base := defaultConfig()
	override := Config{
		Logging: LoggingConfig{Level: "debug"},
		Poller:  PollerConfig{IntervalMinSeconds: 120},
		Niches:  []NicheConfig{{Name: "custom", Channels: []string{"c"}, Keywords: []string{"k"}}},
	}

	merged := mergeConfig(base, override)

	if merged.Logging.Level != "debug" {
		t.Fatalf("logging not overridden: %s", merged.Logging.Level)
	}
	if merged.Poller.IntervalMinSeconds != 120 {
		t.Fatalf("interval min not overridden: %d", merged.Poller.IntervalMinSeconds)
	}
	if merged.Poller.IntervalMaxSeconds != base.Poller.IntervalMaxSeconds {
		t.Fatal("interval max should keep the default")
	}
	if len(merged.Niches) != 1 || merged.Niches[0].Name != "custom" {
		t.Fatalf("niches not overridden: %v", merged.Niches)
	}
}

func TestLoadReadsYAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
logging:
  level: warn
poller:
  intervalMinSeconds: 240
niches:
  - name: testing
    channels: [testchan]
    keywords: [testing pain]
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(pollIntervalMaxEnv, "900")
	t.Setenv(logLevelEnv, "debug")

	cfg := Load()

	if cfg.Poller.IntervalMinSeconds != 240 {
		t.Fatalf("yaml interval min not applied: %d", cfg.Poller.IntervalMinSeconds)
	}
	if cfg.Poller.IntervalMaxSeconds != 900 {
		t.Fatalf("env interval max not applied: %d", cfg.Poller.IntervalMaxSeconds)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("env should win over yaml: %s", cfg.Logging.Level)
	}
	if len(cfg.Niches) != 1 || cfg.Niches[0].Name != "testing" {
		t.Fatalf("yaml niches not applied: %v", cfg.Niches)
	}
}

func TestValidateFlagsProblems(t *testing.T) {
	cfg := defaultConfig()
	cfg.Poller.IntervalMinSeconds = 10
	cfg.Niches = append(cfg.Niches, NicheConfig{Name: "empty"})

	issues := cfg.Validate()
	if len(issues) < 2 {
		t.Fatalf("expected issues for short interval and empty niche, got %v", issues)
	}
}
