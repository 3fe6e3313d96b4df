package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

var (
	ErrNotFound    = errors.New("recipe not found")
	ErrInvalidSort = errors.New("invalid sort key")
)

// Query selects and orders recipes. The zero value matches everything, newest first.
type Query struct {
	Search string
	Tag    string
	Sort   SortKey
}

// Apply filters recipes by search text, then by tag, then sorts them.
// The input slice is not modified.
func Apply(recipes []recipe.Recipe, q Query) []recipe.Recipe {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		if q.Tag != "" && !slices.Contains(r.Tags, q.Tag) {
			continue
		}
		matched = append(matched, r)
	}

	sortRecipes(matched, q.Sort)
	return matched
}

func matchesSearch(r recipe.Recipe, needle string) bool {
	if containsFold(r.Title, needle) || containsFold(r.Description, needle) {
		return true
	}
	for _, ingredient := range r.Ingredients {
		if containsFold(ingredient, needle) {
			return true
		}
	}
	for _, tag := range r.Tags {
		if containsFold(tag, needle) {
			return true
		}
	}
	return false
}

// containsFold expects needle to be lowercased already.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// Find returns the recipe with the given id.
func Find(recipes []recipe.Recipe, id string) (recipe.Recipe, error) {
	for _, r := range recipes {
		if r.ID == id {
			return r, nil
		}
	}
	return recipe.Recipe{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Tags returns every distinct tag in the collection, sorted.
func Tags(recipes []recipe.Recipe) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, r := range recipes {
		for _, tag := range r.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}
