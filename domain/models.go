package domain

import (
	"fmt"
	"strings"
	"time"
)

// Outlet identifies a configured news source with its own feed URL and
// extraction rules.
type Outlet string

const (
	OutletTechCrunch  Outlet = "techcrunch"
	OutletArsTechnica Outlet = "arstechnica"
)

// Outlets lists every configured source in a stable order.
func Outlets() []Outlet {
	return []Outlet{OutletTechCrunch, OutletArsTechnica}
}

func ParseOutlet(s string) (Outlet, error) {
	switch Outlet(strings.ToLower(strings.TrimSpace(s))) {
	case OutletTechCrunch:
		return OutletTechCrunch, nil
	case OutletArsTechnica:
		return OutletArsTechnica, nil
	}
	return "", fmt.Errorf("unknown outlet: %q", s)
}

func (o Outlet) DisplayName() string {
	switch o {
	case OutletTechCrunch:
		return "TechCrunch"
	case OutletArsTechnica:
		return "Ars Technica"
	}
	return string(o)
}

// OutletForLink infers the outlet from an article link.
func OutletForLink(link string) Outlet {
	if strings.Contains(strings.ToLower(link), "techcrunch") {
		return OutletTechCrunch
	}
	return OutletArsTechnica
}

// FeedItem is a discovered article reference. Items are append-only: once
// stored they are never deleted, and Processed flips false to true exactly
// once when a post has been generated from the item.
type FeedItem struct {
	ID          string
	Title       string
	Link        string
	Creator     string
	PublishedAt time.Time
	Categories  []string
	GUID        string
	Description string
	Outlet      Outlet
	Processed   bool
}

// Post is a generated social post. Content is plain text with newline
// separated paragraphs and must be free of markup when persisted.
type Post struct {
	ID         string
	Title      string
	Content    string
	Tags       []string
	SourceLink string
	ImageLink  string
	PostTime   time.Time
}

// ChannelInfo holds the metadata of the published feed document.
type ChannelInfo struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// RunnerStatus is a snapshot of the background runner's schedules.
type RunnerStatus struct {
	AggregateInterval time.Duration
	ProcessInterval   time.Duration
	LastAggregate     time.Time
	LastProcess       time.Time
}
