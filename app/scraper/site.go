package scraper

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/go-shiori/go-readability"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

// SiteScraper reads recipes from known sites using their site definitions.
type SiteScraper struct {
	registry *SiteRegistry
}

func NewSiteScraper(registry *SiteRegistry) *SiteScraper {
	return &SiteScraper{registry: registry}
}

func (s *SiteScraper) Name() string {
	return "site"
}

func (s *SiteScraper) Extract(page *Page) (*recipe.Recipe, error) {
	site, ok := s.registry.Lookup(page.Host())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSite, page.Host())
	}

	doc, err := page.Document()
	if err != nil {
		return nil, err
	}

	sel := site.Selectors
	r := &recipe.Recipe{
		Title:        sel.Title.First(doc),
		Description:  sel.Description.First(doc),
		PrepTime:     sel.PrepTime.First(doc),
		CookTime:     sel.CookTime.First(doc),
		Servings:     sel.Servings.First(doc),
		Image:        page.Resolve(sel.Image.First(doc)),
		Tags:         sel.Tags.All(doc),
		Ingredients:  sel.Ingredients.All(doc),
		Instructions: sel.Instructions.All(doc),
	}

	if len(cleanLines(r.Ingredients)) == 0 {
		return nil, fmt.Errorf("%w: site %s matched no ingredients", ErrNoRecipe, site.Name)
	}

	if r.Title == "" || r.Description == "" || r.Image == "" {
		s.fillFromArticle(page, r)
	}

	return r, nil
}

// fillFromArticle fills missing title, description and image from readability's page metadata.
func (s *SiteScraper) fillFromArticle(page *Page, r *recipe.Recipe) {
	article, err := readability.FromReader(bytes.NewReader(page.Body), page.URL)
	if err != nil {
		slog.Debug("Readability metadata unavailable", "url", page.URL.String(), "error", err)
		return
	}

	if r.Title == "" {
		r.Title = article.Title
	}
	if r.Description == "" {
		r.Description = article.Excerpt
	}
	if r.Image == "" {
		r.Image = page.Resolve(article.Image)
	}
}
