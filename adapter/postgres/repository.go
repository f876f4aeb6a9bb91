package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"viralfeed/domain"
)

type Repository struct{ db *sql.DB }

func New(db *sql.DB) *Repository { return &Repository{db: db} }

var _ domain.Repository = (*Repository)(nil)

func (r *Repository) Ensure(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS items (
    id UUID PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    title TEXT NOT NULL,
    link TEXT UNIQUE NOT NULL,
    creator TEXT NOT NULL DEFAULT '',
    published_at TIMESTAMPTZ NOT NULL,
    categories TEXT[] NOT NULL DEFAULT '{}',
    guid TEXT NOT NULL,
    description TEXT NOT NULL,
    outlet TEXT NOT NULL,
    processed BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS items_processed_published_idx ON items (processed, published_at DESC);
CREATE TABLE IF NOT EXISTS posts (
    id UUID PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    tags TEXT[] NOT NULL DEFAULT '{}',
    source_link TEXT NOT NULL,
    image_link TEXT NOT NULL DEFAULT '',
    post_time TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *Repository) SaveItem(ctx context.Context, item domain.FeedItem) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO items (id, title, link, creator, published_at, categories, guid, description, outlet, processed)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (link) DO NOTHING`,
		item.ID, item.Title, item.Link, item.Creator, item.PublishedAt.UTC(),
		pq.Array(item.Categories), item.GUID, item.Description, string(item.Outlet), item.Processed,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) UnprocessedItems(ctx context.Context, limit int) ([]domain.FeedItem, error) {
	return scanItems(r.db.QueryContext(ctx, `
SELECT id, title, link, creator, published_at, categories, guid, description, outlet, processed
FROM items WHERE processed = FALSE
ORDER BY published_at DESC
LIMIT $1`, limit))
}

func (r *Repository) MarkProcessed(ctx context.Context, link string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE items SET processed = TRUE WHERE link = $1`, link)
	return err
}

func (r *Repository) SavePost(ctx context.Context, post domain.Post) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO posts (id, title, content, tags, source_link, image_link, post_time)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		post.ID, post.Title, post.Content, pq.Array(post.Tags),
		post.SourceLink, post.ImageLink, post.PostTime.UTC(),
	)
	return err
}

func (r *Repository) RecentPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	return scanPosts(r.db.QueryContext(ctx, `
SELECT id, title, content, tags, source_link, image_link, post_time
FROM posts
ORDER BY post_time DESC
LIMIT $1`, limit))
}

func scanItems(rows *sql.Rows, err error) ([]domain.FeedItem, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.FeedItem
	for rows.Next() {
		var it domain.FeedItem
		var categories pq.StringArray
		var outlet string
		var published time.Time
		if err := rows.Scan(&it.ID, &it.Title, &it.Link, &it.Creator, &published,
			&categories, &it.GUID, &it.Description, &outlet, &it.Processed); err != nil {
			return nil, err
		}
		it.PublishedAt = published.UTC()
		it.Categories = []string(categories)
		it.Outlet = domain.Outlet(outlet)
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanPosts(rows *sql.Rows, err error) ([]domain.Post, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Post
	for rows.Next() {
		var p domain.Post
		var tags pq.StringArray
		var postTime time.Time
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &tags, &p.SourceLink, &p.ImageLink, &postTime); err != nil {
			return nil, err
		}
		p.Tags = []string(tags)
		p.PostTime = postTime.UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}
