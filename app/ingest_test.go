package app

import (
	"context"
	"testing"

	"viralfeed/domain"
)

func TestIngestContinuesPastFailingOutlet(t *testing.T) {
	repo := newFakeRepo()
	fetcher := &fakeFetcher{
		feeds: map[domain.Outlet][]domain.FeedItem{
			domain.OutletArsTechnica: {{ID: "1", Title: "ars story", Link: "https://arstechnica.com/a", Outlet: domain.OutletArsTechnica}},
		},
		errs: map[domain.Outlet]error{
			domain.OutletTechCrunch: &domain.FetchError{Outlet: domain.OutletTechCrunch, URL: "https://techcrunch.com/feed/", Status: 503},
		},
	}
	svc := NewIngestService(fetcher, NewItemStore(repo), map[domain.Outlet]string{
		domain.OutletTechCrunch:  "https://techcrunch.com/feed/",
		domain.OutletArsTechnica: "https://feeds.arstechnica.com/arstechnica/index",
	})

	svc.Run(context.Background())

	if len(fetcher.fetched) != 2 {
		t.Errorf("fetched %v, want both outlets attempted", fetcher.fetched)
	}
	if len(repo.items) != 1 || repo.items[0].Link != "https://arstechnica.com/a" {
		t.Errorf("repo items = %+v, want the item from the healthy outlet", repo.items)
	}
}

func TestIngestSkipsOutletWithoutURL(t *testing.T) {
	repo := newFakeRepo()
	fetcher := &fakeFetcher{
		feeds: map[domain.Outlet][]domain.FeedItem{
			domain.OutletTechCrunch: {{ID: "1", Title: "tc story", Link: "https://techcrunch.com/a", Outlet: domain.OutletTechCrunch}},
		},
	}
	svc := NewIngestService(fetcher, NewItemStore(repo), map[domain.Outlet]string{
		domain.OutletTechCrunch: "https://techcrunch.com/feed/",
	})

	svc.Run(context.Background())

	if len(fetcher.fetched) != 1 || fetcher.fetched[0] != domain.OutletTechCrunch {
		t.Errorf("fetched %v, want only the configured outlet", fetcher.fetched)
	}
	if len(repo.items) != 1 {
		t.Errorf("repo holds %d items, want 1", len(repo.items))
	}
}
