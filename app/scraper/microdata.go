package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

// MicrodataScraper reads schema.org Recipe microdata (itemscope/itemprop attributes).
type MicrodataScraper struct{}

func NewMicrodataScraper() *MicrodataScraper {
	return &MicrodataScraper{}
}

func (s *MicrodataScraper) Name() string {
	return "microdata"
}

func (s *MicrodataScraper) Extract(page *Page) (*recipe.Recipe, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}

	scope := doc.Find(`[itemtype*="schema.org/Recipe"]`).First()
	if scope.Length() == 0 {
		return nil, fmt.Errorf("%w: no schema.org/Recipe microdata", ErrNoRecipe)
	}

	r := &recipe.Recipe{
		Title:        prop(scope, "name"),
		Description:  prop(scope, "description"),
		PrepTime:     prop(scope, "prepTime"),
		CookTime:     prop(scope, "cookTime"),
		Servings:     firstNonEmpty(prop(scope, "recipeYield"), prop(scope, "yields")),
		Image:        page.Resolve(imageProp(scope)),
		Ingredients:  props(scope, "recipeIngredient"),
		Instructions: microdataInstructions(scope),
	}

	if len(r.Ingredients) == 0 {
		r.Ingredients = props(scope, "ingredients")
	}

	for _, keywords := range props(scope, "keywords") {
		r.Tags = append(r.Tags, splitKeywords(keywords)...)
	}
	r.Tags = append(r.Tags, props(scope, "recipeCategory")...)

	return r, nil
}

func itempropSelector(name string) string {
	return fmt.Sprintf(`[itemprop~="%s"]`, name)
}

// itemValue prefers the content attribute, as used by meta tags, over the element text.
func itemValue(sel *goquery.Selection) string {
	if content, ok := sel.Attr("content"); ok && strings.TrimSpace(content) != "" {
		return content
	}
	return strings.TrimSpace(sel.Text())
}

func prop(scope *goquery.Selection, name string) string {
	sel := scope.Find(itempropSelector(name)).First()
	if sel.Length() == 0 {
		return ""
	}
	return itemValue(sel)
}

func props(scope *goquery.Selection, name string) []string {
	var values []string
	scope.Find(itempropSelector(name)).Each(func(_ int, sel *goquery.Selection) {
		if v := itemValue(sel); v != "" {
			values = append(values, v)
		}
	})
	return values
}

func imageProp(scope *goquery.Selection) string {
	sel := scope.Find(itempropSelector("image")).First()
	if sel.Length() == 0 {
		return ""
	}
	for _, attr := range []string{"src", "content", "href"} {
		if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func microdataInstructions(scope *goquery.Selection) []string {
	var instructions []string
	scope.Find(itempropSelector("recipeInstructions")).Each(func(_ int, sel *goquery.Selection) {
		steps := sel.Find(itempropSelector("text"))
		if steps.Length() == 0 {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				instructions = append(instructions, text)
			}
			return
		}
		steps.Each(func(_ int, step *goquery.Selection) {
			if text := strings.TrimSpace(step.Text()); text != "" {
				instructions = append(instructions, text)
			}
		})
	})
	return instructions
}

func splitKeywords(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
