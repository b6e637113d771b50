// Package rss fetches and decodes RSS/Atom feeds into domain posts.
package rss

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"painradar/internal/domain"
)

// userAgents are rotated per request so one identity does not hammer
// the feed host.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
}

var (
	fullnameExpr = regexp.MustCompile(`t3_(\w+)`)
	commentsExpr = regexp.MustCompile(`/comments/(\w+)/`)
	channelExpr  = regexp.MustCompile(`/r/(\w+)/`)
)

// Fetcher pulls a feed URL and converts its entries. One shared rate
// limiter paces all requests regardless of source.
type Fetcher struct {
	client  *http.Client
	parser  *gofeed.Parser
	limiter *rate.Limiter
	uaIndex atomic.Uint64
}

// NewFetcher wires an HTTP client; a nil client gets a 30 second
// timeout. Requests are paced to one per two seconds.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{
		client:  client,
		parser:  gofeed.NewParser(),
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// Name identifies the strategy inside the feeds registry.
func (f *Fetcher) Name() string {
	return "rss"
}

// Fetch downloads and parses the source's feed URL.
func (f *Fetcher) Fetch(ctx context.Context, src domain.Source) ([]domain.Post, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.nextUserAgent())

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	posts := make([]domain.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		posts = append(posts, convertItem(item, src))
	}
	return posts, nil
}

func (f *Fetcher) nextUserAgent() string {
	n := f.uaIndex.Add(1)
	return userAgents[int(n-1)%len(userAgents)]
}

func convertItem(item *gofeed.Item, src domain.Source) domain.Post {
	body := item.Content
	if body == "" {
		body = item.Description
	}

	author := ""
	if item.Author != nil {
		author = strings.TrimPrefix(item.Author.Name, "/u/")
		author = strings.TrimPrefix(author, "u/")
	}

	var published time.Time
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	channel := src.Channel
	if channel == "" {
		if m := channelExpr.FindStringSubmatch(item.Link); m != nil {
			channel = m[1]
		}
	}

	return domain.Post{
		ID:        extractID(item),
		Title:     item.Title,
		Body:      body,
		Author:    author,
		Channel:   channel,
		Link:      item.Link,
		Niche:     src.Niche,
		Published: published,
	}
}

// extractID prefers the feed entry's stable identifier. Reddit GUIDs
// look like t3_abc123; permalinks carry the same id in their path.
// Anything else falls back to a hash of the link or title.
func extractID(item *gofeed.Item) string {
	if m := fullnameExpr.FindStringSubmatch(item.GUID); m != nil {
		return m[1]
	}
	if m := commentsExpr.FindStringSubmatch(item.Link); m != nil {
		return m[1]
	}
	if item.GUID != "" {
		return hashID(item.GUID)
	}
	if item.Link != "" {
		return hashID(item.Link)
	}
	return hashID(item.Title)
}

func hashID(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:8])
}
