package article

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"viralfeed/domain"
)

// Client fetches an article page and renders it to markdown twice: once with
// hyperlinks stripped for body extraction, once preserving link targets for
// image discovery.
type Client struct {
	client *http.Client
}

func NewClient() *Client {
	return &Client{client: &http.Client{Timeout: 30 * time.Second}}
}

var _ domain.ArticleExtractor = (*Client)(nil)

func (c *Client) Extract(ctx context.Context, outlet domain.Outlet, pageURL string) (string, string, error) {
	body, linked, err := c.fetch(ctx, outlet, pageURL)
	if err != nil {
		return "", "", err
	}
	return Extract(outlet, body, linked)
}

func (c *Client) fetch(ctx context.Context, outlet domain.Outlet, pageURL string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", &domain.FetchError{Outlet: outlet, URL: pageURL, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", &domain.FetchError{Outlet: outlet, URL: pageURL, Status: resp.StatusCode}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", &domain.FetchError{Outlet: outlet, URL: pageURL, Err: err}
	}
	linked, err := htmltomarkdown.ConvertString(string(raw))
	if err != nil {
		return "", "", fmt.Errorf("render %s: %w", pageURL, err)
	}
	return StripLinks(linked), linked, nil
}

var inlineLink = regexp.MustCompile(`(^|[^!])\[([^\]]*)\]\([^)]*\)`)

// StripLinks removes inline hyperlinks, keeping their anchor text. Image
// references stay intact so image-based markers keep working.
func StripLinks(md string) string {
	for {
		next := inlineLink.ReplaceAllString(md, "$1$2")
		if next == md {
			return md
		}
		md = next
	}
}
