package app

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"

	"viralfeed/domain"
	"viralfeed/internal/textutil"
)

const rssTimeLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// feedDoc mirrors the published RSS 2.0 document, including the non-standard
// image_link element consumed downstream.
type feedDoc struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	Channel feedChannel `xml:"channel"`
}

type feedChannel struct {
	Title         string      `xml:"title"`
	Link          string      `xml:"link"`
	Description   string      `xml:"description"`
	Language      string      `xml:"language"`
	PubDate       string      `xml:"pubDate"`
	LastBuildDate string      `xml:"lastBuildDate,omitempty"`
	Items         []feedEntry `xml:"item"`
}

type feedEntry struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	ImageLink   string `xml:"image_link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Publisher maintains the single external feed document: read, prepend the
// new entry, rewrite build metadata, write back. Last writer wins; publishing
// is a sequential batch step.
type Publisher struct {
	blob    domain.BlobStore
	key     string
	channel domain.ChannelInfo
	now     func() time.Time
}

func NewPublisher(blob domain.BlobStore, key string, channel domain.ChannelInfo) *Publisher {
	return &Publisher{blob: blob, key: key, channel: channel, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, post domain.Post) error {
	doc, err := p.load(ctx)
	if err != nil {
		return err
	}
	now := p.now().UTC().Format(rssTimeLayout)
	doc.Channel.LastBuildDate = now
	doc.Channel.Items = append([]feedEntry{p.entry(post, now)}, doc.Channel.Items...)

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	body := append([]byte(xml.Header), out...)
	return p.blob.Put(ctx, p.key, body, "application/rss+xml")
}

func (p *Publisher) load(ctx context.Context) (*feedDoc, error) {
	data, err := p.blob.Get(ctx, p.key)
	if errors.Is(err, domain.ErrNotExist) {
		return p.newDoc(), nil
	}
	if err != nil {
		return nil, err
	}
	var doc feedDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse existing feed: %w", err)
	}
	doc.Version = "2.0"
	return &doc, nil
}

func (p *Publisher) newDoc() *feedDoc {
	return &feedDoc{
		Version: "2.0",
		Channel: feedChannel{
			Title:       p.channel.Title,
			Link:        p.channel.Link,
			Description: p.channel.Description,
			Language:    p.channel.Language,
			PubDate:     p.now().UTC().Format(rssTimeLayout),
		},
	}
}

func (p *Publisher) entry(post domain.Post, now string) feedEntry {
	content := textutil.StripTrailingHashtagLine(post.Content)
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, "#"+tag)
	}
	source := domain.OutletForLink(post.SourceLink).DisplayName()
	return feedEntry{
		Title:       post.Title,
		Link:        post.SourceLink,
		ImageLink:   post.ImageLink,
		Description: fmt.Sprintf("%s\n\nSource: %s\n%s", content, source, strings.Join(tags, " ")),
		PubDate:     now,
	}
}
