package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortTitleAsc  SortKey = "title-asc"
	SortTitleDesc SortKey = "title-desc"
	SortPrepTime  SortKey = "prep-time"
	SortCookTime  SortKey = "cook-time"
)

// SortKeys lists the accepted keys in display order.
var SortKeys = []SortKey{SortNewest, SortOldest, SortTitleAsc, SortTitleDesc, SortPrepTime, SortCookTime}

// ParseSort validates a sort key. An empty string means SortNewest.
func ParseSort(s string) (SortKey, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return SortNewest, nil
	}
	key := SortKey(s)
	if !slices.Contains(SortKeys, key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
	return key, nil
}

func sortRecipes(recipes []recipe.Recipe, key SortKey) {
	switch key {
	case SortOldest:
		slices.SortStableFunc(recipes, func(a, b recipe.Recipe) int {
			return addedAt(a).Compare(addedAt(b))
		})
	case SortTitleAsc, SortTitleDesc:
		c := collate.New(language.English)
		slices.SortStableFunc(recipes, func(a, b recipe.Recipe) int {
			if key == SortTitleDesc {
				return c.CompareString(b.Title, a.Title)
			}
			return c.CompareString(a.Title, b.Title)
		})
	case SortPrepTime:
		slices.SortStableFunc(recipes, func(a, b recipe.Recipe) int {
			return cmp.Compare(recipe.Minutes(a.PrepTime), recipe.Minutes(b.PrepTime))
		})
	case SortCookTime:
		slices.SortStableFunc(recipes, func(a, b recipe.Recipe) int {
			return cmp.Compare(recipe.Minutes(a.CookTime), recipe.Minutes(b.CookTime))
		})
	default:
		slices.SortStableFunc(recipes, func(a, b recipe.Recipe) int {
			return addedAt(b).Compare(addedAt(a))
		})
	}
}

// addedAt parses DateAdded; missing or malformed dates sort as the Unix epoch.
func addedAt(r recipe.Recipe) time.Time {
	t, err := time.Parse(recipe.DateLayout, strings.TrimSpace(r.DateAdded))
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}
