package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"viralfeed/domain"
)

// ProcessService runs the posting pipeline end to end for one item: pick a
// candidate, extract the article, compose a post, persist it and republish
// the feed. A failed item is left unprocessed for a future run.
type ProcessService struct {
	store          *ItemStore
	selector       *Selector
	articles       domain.ArticleExtractor
	composer       *Composer
	publisher      *Publisher
	candidateLimit int
	recentLimit    int
}

func NewProcessService(store *ItemStore, selector *Selector, articles domain.ArticleExtractor,
	composer *Composer, publisher *Publisher, candidateLimit, recentLimit int) *ProcessService {
	return &ProcessService{
		store:          store,
		selector:       selector,
		articles:       articles,
		composer:       composer,
		publisher:      publisher,
		candidateLimit: candidateLimit,
		recentLimit:    recentLimit,
	}
}

func (s *ProcessService) Run(ctx context.Context) error {
	candidates := s.store.Unprocessed(ctx, s.candidateLimit)
	recent := s.store.RecentPosts(ctx, s.recentLimit)

	index, err := s.selector.Choose(ctx, candidates, recent)
	if errors.Is(err, domain.ErrNoCandidates) {
		log.Printf("process: no unprocessed items, nothing to do")
		return nil
	}
	if err != nil {
		return err
	}
	item := candidates[index]
	log.Printf("process: selected %q (%s)", item.Title, item.Link)

	text, imageLink, err := s.articles.Extract(ctx, item.Outlet, item.Link)
	if err != nil {
		return fmt.Errorf("process %s: %w", item.Link, err)
	}

	post, err := s.composer.Generate(ctx, text, item)
	if err != nil {
		return fmt.Errorf("process %s: %w", item.Link, err)
	}
	post.ImageLink = imageLink

	s.store.SavePost(ctx, post)
	s.store.MarkProcessed(ctx, item)

	if err := s.publisher.Publish(ctx, post); err != nil {
		return fmt.Errorf("publish %q: %w", post.Title, err)
	}
	log.Printf("process: published %q", post.Title)
	return nil
}
