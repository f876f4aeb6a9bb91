package app

import (
	"context"
	"errors"
	"fmt"

	"viralfeed/domain"
)

// fakeGenerator replays canned responses and records every request.
type fakeGenerator struct {
	responses []string
	err       error
	requests  []domain.GenRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req domain.GenRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	i := len(f.requests) - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], nil
}

// fakeRepo is an in-memory Repository enforcing the same link uniqueness the
// real schema does.
type fakeRepo struct {
	items    []domain.FeedItem
	posts    []domain.Post
	failAll  bool
	saveErrs map[string]error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{saveErrs: map[string]error{}}
}

var errRepoDown = errors.New("connection refused")

func (r *fakeRepo) Ensure(context.Context) error { return nil }

func (r *fakeRepo) SaveItem(_ context.Context, item domain.FeedItem) (bool, error) {
	if r.failAll {
		return false, errRepoDown
	}
	if err := r.saveErrs[item.Link]; err != nil {
		return false, err
	}
	for _, existing := range r.items {
		if existing.Link == item.Link {
			return false, nil
		}
	}
	r.items = append(r.items, item)
	return true, nil
}

func (r *fakeRepo) UnprocessedItems(_ context.Context, limit int) ([]domain.FeedItem, error) {
	if r.failAll {
		return nil, errRepoDown
	}
	var out []domain.FeedItem
	for _, item := range r.items {
		if !item.Processed && len(out) < limit {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeRepo) MarkProcessed(_ context.Context, link string) error {
	if r.failAll {
		return errRepoDown
	}
	for i := range r.items {
		if r.items[i].Link == link {
			r.items[i].Processed = true
			return nil
		}
	}
	return fmt.Errorf("no item with link %s", link)
}

func (r *fakeRepo) SavePost(_ context.Context, post domain.Post) error {
	if r.failAll {
		return errRepoDown
	}
	r.posts = append(r.posts, post)
	return nil
}

func (r *fakeRepo) RecentPosts(_ context.Context, limit int) ([]domain.Post, error) {
	if r.failAll {
		return nil, errRepoDown
	}
	if len(r.posts) > limit {
		return r.posts[:limit], nil
	}
	return r.posts, nil
}

// fakeFetcher serves canned feed items per outlet and records the outlets
// actually fetched.
type fakeFetcher struct {
	feeds   map[domain.Outlet][]domain.FeedItem
	errs    map[domain.Outlet]error
	fetched []domain.Outlet
}

func (f *fakeFetcher) Fetch(_ context.Context, outlet domain.Outlet, _ string) ([]domain.FeedItem, error) {
	f.fetched = append(f.fetched, outlet)
	if err := f.errs[outlet]; err != nil {
		return nil, err
	}
	return f.feeds[outlet], nil
}

// fakeExtractor returns a canned article body and image link.
type fakeExtractor struct {
	text  string
	image string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(context.Context, domain.Outlet, string) (string, string, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.text, f.image, nil
}

// fakeBlob is an in-memory BlobStore.
type fakeBlob struct {
	objects map[string][]byte
}

func newFakeBlob() *fakeBlob { return &fakeBlob{objects: map[string][]byte{}} }

func (b *fakeBlob) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := b.objects[key]
	if !ok {
		return nil, domain.ErrNotExist
	}
	return data, nil
}

func (b *fakeBlob) Put(_ context.Context, key string, body []byte, _ string) error {
	b.objects[key] = body
	return nil
}
