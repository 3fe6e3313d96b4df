package scraper

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is a fetched HTML document shared by all strategies of one run.
type Page struct {
	URL  *url.URL
	Body []byte

	doc *goquery.Document
}

func NewPage(rawURL string, body []byte) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url %q: %w", ErrFetch, rawURL, err)
	}
	return &Page{URL: u, Body: body}, nil
}

// Document parses the body on first use.
func (p *Page) Document() (*goquery.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	p.doc = doc
	return doc, nil
}

// Host returns the lowercased host without port or a leading "www.".
func (p *Page) Host() string {
	return normalizeHost(p.URL.Hostname())
}

// Resolve turns a possibly relative reference into an absolute URL.
func (p *Page) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := p.URL.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
}
