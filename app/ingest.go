package app

import (
	"context"
	"log"

	"viralfeed/domain"
)

// IngestService pulls every configured outlet's feed and records the items
// that have not been seen before. A failing outlet is logged and the rest
// continue.
type IngestService struct {
	fetcher domain.FeedFetcher
	store   *ItemStore
	feeds   map[domain.Outlet]string
}

func NewIngestService(fetcher domain.FeedFetcher, store *ItemStore, feeds map[domain.Outlet]string) *IngestService {
	return &IngestService{fetcher: fetcher, store: store, feeds: feeds}
}

func (s *IngestService) Run(ctx context.Context) {
	for _, outlet := range domain.Outlets() {
		feedURL := s.feeds[outlet]
		if feedURL == "" {
			log.Printf("ingest: no feed URL configured for %s, skipping", outlet)
			continue
		}
		items, err := s.fetcher.Fetch(ctx, outlet, feedURL)
		if err != nil {
			log.Printf("ingest: fetching %s failed: %v", outlet, err)
			continue
		}
		log.Printf("ingest: %s returned %d items", outlet, len(items))
		s.store.SaveNew(ctx, items)
	}
}
