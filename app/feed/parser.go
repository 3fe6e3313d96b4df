package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
)

// trackingParams are query parameters dropped from item links so the same
// recipe shared through different campaigns maps to one source URL.
var trackingParams = []string{"fbclid", "gclid", "dclid", "msclkid", "mc_cid", "mc_eid", "ref", "_hsenc", "_hsmi"}

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Metadata, []Item, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title:       html.UnescapeString(feed.Title),
		Link:        feed.Link,
		Description: html.UnescapeString(feed.Description),
		Language:    feed.Language,
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		normalized := p.normalizeItem(item)
		if normalized.Link == "" {
			continue
		}
		items = append(items, normalized)
	}

	return metadata, items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Item {
	link := p.normalizeURL(strings.TrimSpace(item.Link))

	normalized := Item{
		GUID:        cmp.Or(item.GUID, link),
		Title:       html.UnescapeString(strings.TrimSpace(item.Title)),
		Link:        link,
		Description: html.UnescapeString(item.Description),
	}

	if item.PublishedParsed != nil {
		normalized.PublishedAt = *item.PublishedParsed
	}

	if item.Categories != nil {
		normalized.Categories = item.Categories
	}

	return normalized
}

func (p *Parser) normalizeURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawURL
	}

	if u.RawQuery == "" {
		return u.String()
	}

	query := u.Query()
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			query.Del(key)
		}
	}
	for _, param := range trackingParams {
		query.Del(param)
	}
	u.RawQuery = query.Encode()

	return u.String()
}
