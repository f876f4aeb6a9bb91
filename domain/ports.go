package domain

import (
	"context"
	"time"
)

// Repository is the persistence port for feed items and generated posts.
type Repository interface {
	Ensure(ctx context.Context) error

	// SaveItem inserts the item unless one with the same link exists.
	// It reports whether a row was actually inserted.
	SaveItem(ctx context.Context, item FeedItem) (bool, error)
	// UnprocessedItems returns at most limit unprocessed items, newest first
	// by publication time.
	UnprocessedItems(ctx context.Context, limit int) ([]FeedItem, error)
	// MarkProcessed flips the processed flag for the item with the given
	// link. Applying it to an already processed item is a no-op.
	MarkProcessed(ctx context.Context, link string) error

	SavePost(ctx context.Context, post Post) error
	// RecentPosts returns at most limit posts, newest first by post time.
	RecentPosts(ctx context.Context, limit int) ([]Post, error)
}

// FeedFetcher fetches and parses an outlet's RSS feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, outlet Outlet, feedURL string) ([]FeedItem, error)
}

// ArticleExtractor fetches an article page and slices out the body text and
// an optional lead image link using the outlet's marker rules.
type ArticleExtractor interface {
	Extract(ctx context.Context, outlet Outlet, url string) (text string, imageLink string, err error)
}

// GenRequest is one call to the generation service. The service is expected
// to answer with a single JSON object.
type GenRequest struct {
	System          string
	User            string
	Temperature     float32
	MaxOutputTokens int32
}

// Generator is the generation-service port.
type Generator interface {
	Generate(ctx context.Context, req GenRequest) (string, error)
}

// BlobStore persists the published feed document. Get returns ErrNotExist
// when the document has not been written yet.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// Runner exposes application-level controls for the background schedules.
type Runner interface {
	Start(ctx context.Context) error
	Stop() error

	SetAggregateInterval(d time.Duration)
	SetProcessInterval(d time.Duration)
	Status() RunnerStatus
}
