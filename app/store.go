package app

import (
	"context"
	"log"

	"viralfeed/domain"
)

// ItemStore wraps the repository with the batch-job error policy: write
// failures are logged per item and read failures surface as empty results,
// so a transient storage problem never kills a run.
type ItemStore struct {
	repo domain.Repository
}

func NewItemStore(repo domain.Repository) *ItemStore {
	return &ItemStore{repo: repo}
}

// SaveNew inserts every item whose link is not stored yet. Each decision is
// independent: duplicates and storage errors are logged and the rest of the
// batch continues.
func (s *ItemStore) SaveNew(ctx context.Context, items []domain.FeedItem) {
	for _, item := range items {
		inserted, err := s.repo.SaveItem(ctx, item)
		switch {
		case err != nil:
			log.Printf("store: saving item %s failed: %v", item.Link, err)
		case !inserted:
			log.Printf("store: item %s already exists, skipping", item.Link)
		}
	}
}

func (s *ItemStore) Unprocessed(ctx context.Context, limit int) []domain.FeedItem {
	items, err := s.repo.UnprocessedItems(ctx, limit)
	if err != nil {
		log.Printf("store: listing unprocessed items failed: %v", err)
		return nil
	}
	return items
}

func (s *ItemStore) RecentPosts(ctx context.Context, limit int) []domain.Post {
	posts, err := s.repo.RecentPosts(ctx, limit)
	if err != nil {
		log.Printf("store: listing recent posts failed: %v", err)
		return nil
	}
	return posts
}

func (s *ItemStore) MarkProcessed(ctx context.Context, item domain.FeedItem) {
	if err := s.repo.MarkProcessed(ctx, item.Link); err != nil {
		log.Printf("store: marking %s processed failed: %v", item.Link, err)
	}
}

func (s *ItemStore) SavePost(ctx context.Context, post domain.Post) {
	if err := s.repo.SavePost(ctx, post); err != nil {
		log.Printf("store: saving post %q failed: %v", post.Title, err)
	}
}
