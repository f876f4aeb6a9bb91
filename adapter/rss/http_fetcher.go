package rss

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"viralfeed/domain"
)

// HTTPFetcher retrieves an outlet's feed over HTTP and normalizes its
// entries. A malformed single entry is skipped and logged, never fatal to
// the whole fetch.
type HTTPFetcher struct {
	client *http.Client
	parser *gofeed.Parser
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: 20 * time.Second},
		parser: gofeed.NewParser(),
	}
}

var _ domain.FeedFetcher = (*HTTPFetcher)(nil)

func (f *HTTPFetcher) Fetch(ctx context.Context, outlet domain.Outlet, feedURL string) ([]domain.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Outlet: outlet, URL: feedURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.FetchError{Outlet: outlet, URL: feedURL, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{Outlet: outlet, URL: feedURL, Err: err}
	}
	feed, err := f.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s feed: %w", outlet, err)
	}

	items := make([]domain.FeedItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		item, err := mapItem(outlet, entry)
		if err != nil {
			log.Printf("rss: skipping malformed %s entry: %v", outlet, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func mapItem(outlet domain.Outlet, entry *gofeed.Item) (domain.FeedItem, error) {
	if entry.Link == "" {
		return domain.FeedItem{}, fmt.Errorf("entry %q has no link", entry.Title)
	}
	if entry.Title == "" {
		return domain.FeedItem{}, fmt.Errorf("entry %s has no title", entry.Link)
	}
	published, err := publishedAt(entry)
	if err != nil {
		return domain.FeedItem{}, fmt.Errorf("entry %s: %w", entry.Link, err)
	}

	guid := entry.GUID
	if guid == "" {
		guid = entry.Link
	}
	return domain.FeedItem{
		ID:          uuid.NewString(),
		Title:       entry.Title,
		Link:        entry.Link,
		Creator:     creator(entry),
		PublishedAt: published,
		Categories:  append([]string(nil), entry.Categories...),
		GUID:        guid,
		Description: entry.Description,
		Outlet:      outlet,
	}, nil
}

// publishedAt normalizes the publication time to UTC. gofeed already knows
// the common feed date dialects; the explicit layouts cover entries it gives
// up on.
func publishedAt(entry *gofeed.Item) (time.Time, error) {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed.UTC(), nil
	}
	if entry.Published == "" {
		return time.Time{}, fmt.Errorf("no publication date")
	}
	return parseFallback(entry.Published)
}

func parseFallback(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC1123Z, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable publication date %q", raw)
}

// creator prefers the Dublin Core creator element the outlets use, falling
// back to the plain item author.
func creator(entry *gofeed.Item) string {
	if entry.DublinCoreExt != nil && len(entry.DublinCoreExt.Creator) > 0 {
		return entry.DublinCoreExt.Creator[0]
	}
	if len(entry.Authors) > 0 && entry.Authors[0] != nil {
		return entry.Authors[0].Name
	}
	return ""
}
