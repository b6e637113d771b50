package domain

import (
	"strings"
	"time"
)

// Source identifies one polled feed endpoint under a niche.
type Source struct {
	Niche   string
	Channel string
	URL     string
	Fetcher string
}

// Post is a core entity describing one entry fetched from a feed.
// Body holds the raw markup as delivered by the provider.
type Post struct {
	ID        string
	Title     string
	Body      string
	Author    string
	Channel   string
	Link      string
	Niche     string
	Published time.Time
}

// CombinedText returns the lowercase title and body used for the cheap
// keyword pre-filter before the full pipeline runs.
func (p Post) CombinedText() string {
	return strings.ToLower(p.Title + " " + p.Body)
}

// Match couples a post with its pipeline outcome. Ownership of the value
// passes to the callback that receives it.
type Match struct {
	Post     Post
	Keywords []string
	Analysis AnalysisResult
}
