package app

import (
	"context"
	"testing"
	"time"

	"viralfeed/domain"
)

func testItems() []domain.FeedItem {
	return []domain.FeedItem{
		{ID: "1", Title: "first", Link: "https://techcrunch.com/a", PublishedAt: time.Now().UTC()},
		{ID: "2", Title: "second", Link: "https://techcrunch.com/b", PublishedAt: time.Now().UTC()},
	}
}

func TestSaveNewIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	store := NewItemStore(repo)
	ctx := context.Background()

	store.SaveNew(ctx, testItems())
	store.SaveNew(ctx, testItems())

	if len(repo.items) != 2 {
		t.Errorf("repo holds %d items after double save, want 2 (one per unique link)", len(repo.items))
	}
}

func TestSaveNewContinuesPastFailures(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErrs["https://techcrunch.com/a"] = errRepoDown
	store := NewItemStore(repo)

	store.SaveNew(context.Background(), testItems())

	if len(repo.items) != 1 || repo.items[0].Link != "https://techcrunch.com/b" {
		t.Errorf("repo items = %+v, want only the item that did not fail", repo.items)
	}
}

func TestReadsReturnEmptyOnStorageError(t *testing.T) {
	repo := newFakeRepo()
	repo.items = testItems()
	repo.posts = []domain.Post{{ID: "p1", Title: "post"}}
	repo.failAll = true
	store := NewItemStore(repo)
	ctx := context.Background()

	if got := store.Unprocessed(ctx, 10); len(got) != 0 {
		t.Errorf("Unprocessed() = %v, want empty on storage error", got)
	}
	if got := store.RecentPosts(ctx, 10); len(got) != 0 {
		t.Errorf("RecentPosts() = %v, want empty on storage error", got)
	}
}

func TestUnprocessedExcludesProcessed(t *testing.T) {
	repo := newFakeRepo()
	items := testItems()
	items[0].Processed = true
	repo.items = items
	store := NewItemStore(repo)

	got := store.Unprocessed(context.Background(), 10)
	if len(got) != 1 || got[0].Link != "https://techcrunch.com/b" {
		t.Errorf("Unprocessed() = %+v, want only the unprocessed item", got)
	}
}

func TestMarkProcessedIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.items = testItems()
	store := NewItemStore(repo)
	ctx := context.Background()

	store.MarkProcessed(ctx, repo.items[0])
	store.MarkProcessed(ctx, repo.items[0])

	if !repo.items[0].Processed {
		t.Error("item should be processed")
	}
	if repo.items[1].Processed {
		t.Error("other item must stay unprocessed")
	}
}
