package scraper

import "errors"

var (
	// ErrFetch means the page could not be downloaded; no strategy runs after it.
	ErrFetch = errors.New("failed to fetch page")
	// ErrUnparseable means every strategy failed on the fetched page.
	ErrUnparseable = errors.New("no strategy could extract a recipe")
	// ErrUnsupportedSite is returned by the site scraper for hosts without a site definition.
	ErrUnsupportedSite = errors.New("unsupported site")
	// ErrNoRecipe is returned by a strategy that found no recipe data on the page.
	ErrNoRecipe = errors.New("no recipe found")
)
