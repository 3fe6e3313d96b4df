package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

// Strategy is one way of extracting a recipe from a fetched page.
type Strategy interface {
	Name() string
	Extract(page *Page) (*recipe.Recipe, error)
}

type Result struct {
	Recipe   recipe.Recipe
	Strategy string
}

// Chain fetches a page once and tries its strategies in order; the first one
// producing a titled recipe wins. Results are never merged across strategies.
type Chain struct {
	fetcher    PageFetcher
	strategies []Strategy
	now        func() time.Time
}

func NewChain(fetcher PageFetcher, strategies ...Strategy) *Chain {
	return &Chain{
		fetcher:    fetcher,
		strategies: strategies,
		now:        time.Now,
	}
}

// NewDefaultChain wires the site, microdata and JSON-LD strategies in that order.
func NewDefaultChain(fetcher PageFetcher, registry *SiteRegistry) *Chain {
	return NewChain(fetcher,
		NewSiteScraper(registry),
		NewMicrodataScraper(),
		NewJSONLDScraper(),
	)
}

func (c *Chain) Run(ctx context.Context, rawURL string) (*Result, error) {
	page, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return c.Extract(page, rawURL)
}

// Extract runs the strategies on an already fetched page. sourceURL is recorded as the recipe's origin.
func (c *Chain) Extract(page *Page, sourceURL string) (*Result, error) {
	var errs []error

	for _, strategy := range c.strategies {
		raw, err := strategy.Extract(page)
		if err == nil && raw == nil {
			err = ErrNoRecipe
		}
		if err != nil {
			slog.Info("Strategy failed", "strategy", strategy.Name(), "url", sourceURL, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", strategy.Name(), err))
			continue
		}

		r := normalize(raw, sourceURL, c.now())
		if strings.TrimSpace(r.Title) == "" {
			slog.Info("Strategy failed", "strategy", strategy.Name(), "url", sourceURL, "error", "no title")
			errs = append(errs, fmt.Errorf("%s: %w: no title", strategy.Name(), ErrNoRecipe))
			continue
		}

		slog.Info("Recipe extracted", "strategy", strategy.Name(), "url", sourceURL, "title", r.Title)
		return &Result{Recipe: r, Strategy: strategy.Name()}, nil
	}

	return nil, fmt.Errorf("%w: %s: %w", ErrUnparseable, sourceURL, errors.Join(errs...))
}
