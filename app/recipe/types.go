package recipe

import "strings"

// Recipe is one entry of the JSON store. Field names follow the store's camelCase keys.
type Recipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PrepTime     string   `json:"prepTime"`
	CookTime     string   `json:"cookTime"`
	Servings     string   `json:"servings"`
	Image        string   `json:"image"`
	Tags         []string `json:"tags"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Notes        string   `json:"notes"`
	SourceURL    string   `json:"sourceUrl"`
	DateAdded    string   `json:"dateAdded"` // YYYY-MM-DD
}

// DateLayout is the calendar date format used by DateAdded.
const DateLayout = "2006-01-02"

// EnsureLists replaces nil slices with empty ones so the store never encodes null lists.
func (r *Recipe) EnsureLists() {
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
}

// NonBlank returns the entries of lines that contain something other than whitespace.
func NonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
