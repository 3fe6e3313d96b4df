package scraper

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

// JSONLDScraper reads schema.org Recipe objects from application/ld+json script blocks.
type JSONLDScraper struct{}

func NewJSONLDScraper() *JSONLDScraper {
	return &JSONLDScraper{}
}

func (s *JSONLDScraper) Name() string {
	return "json-ld"
}

func (s *JSONLDScraper) Extract(page *Page) (*recipe.Recipe, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}

	var found map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			slog.Debug("Skipping malformed JSON-LD block", "index", i, "error", err)
			return true
		}
		found = findRecipeNode(data)
		return found == nil
	})

	if found == nil {
		return nil, fmt.Errorf("%w: no schema.org Recipe in JSON-LD", ErrNoRecipe)
	}

	r := &recipe.Recipe{
		Title:        stringValue(found["name"]),
		Description:  stringValue(found["description"]),
		PrepTime:     stringValue(found["prepTime"]),
		CookTime:     stringValue(found["cookTime"]),
		Servings:     stringValue(found["recipeYield"]),
		Image:        page.Resolve(imageValue(found["image"])),
		Ingredients:  stringList(found["recipeIngredient"]),
		Instructions: instructionLines(found["recipeInstructions"]),
	}

	if len(r.Ingredients) == 0 {
		r.Ingredients = stringList(found["ingredients"])
	}

	r.Tags = append(r.Tags, keywordList(found["keywords"])...)
	r.Tags = append(r.Tags, stringList(found["recipeCategory"])...)

	return r, nil
}

// findRecipeNode searches top-level arrays and @graph containers for the first Recipe object.
func findRecipeNode(data any) map[string]any {
	switch v := data.(type) {
	case []any:
		for _, item := range v {
			if node := findRecipeNode(item); node != nil {
				return node
			}
		}
	case map[string]any:
		if isRecipeType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return findRecipeNode(graph)
		}
	}
	return nil
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe" || strings.HasSuffix(v, "/Recipe") || v == "schema:Recipe"
	case []any:
		for _, item := range v {
			if isRecipeType(item) {
				return true
			}
		}
	}
	return false
}

// stringValue reads a string or number; a list yields its first entry.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		if len(val) > 0 {
			return stringValue(val[0])
		}
	}
	return ""
}

func stringList(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := stringValue(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// imageValue accepts a URL string, a list of images, or an ImageObject.
func imageValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		for _, item := range val {
			if s := imageValue(item); s != "" {
				return s
			}
		}
	case map[string]any:
		return firstNonEmpty(stringValue(val["url"]), stringValue(val["contentUrl"]))
	}
	return ""
}

func keywordList(v any) []string {
	switch val := v.(type) {
	case string:
		return splitKeywords(val)
	case []any:
		return stringList(val)
	}
	return nil
}

// instructionLines flattens strings, HowToStep and HowToSection entries.
// A section contributes its name as "<name>:" before its steps.
func instructionLines(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		var out []string
		for _, item := range val {
			out = append(out, instructionLines(item)...)
		}
		return out
	case map[string]any:
		if typeName(val["@type"]) == "HowToSection" {
			var out []string
			if name := strings.TrimSpace(stringValue(val["name"])); name != "" {
				out = append(out, name+":")
			}
			return append(out, instructionLines(val["itemListElement"])...)
		}
		if text := firstNonEmpty(stringValue(val["text"]), stringValue(val["name"])); text != "" {
			return []string{text}
		}
	}
	return nil
}

func typeName(t any) string {
	switch v := t.(type) {
	case string:
		return v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "Thing" {
				return s
			}
		}
	}
	return ""
}
