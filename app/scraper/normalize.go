package scraper

import (
	"html"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

var (
	stripPolicy = bluemonday.StrictPolicy()
	whitespace  = regexp.MustCompile(`[\s\p{Z}]+`)
)

// cleanText strips markup, decodes entities and collapses whitespace.
func cleanText(s string) string {
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// cleanLines cleans every entry and drops the empty ones. A single entry
// spanning several lines is split into one entry per line first.
func cleanLines(lines []string) []string {
	if len(lines) == 1 && strings.Contains(lines[0], "\n") {
		lines = strings.Split(lines[0], "\n")
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if cleaned := cleanText(line); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func uniqueTags(tags []string) []string {
	cleaned := cleanLines(tags)
	out := make([]string, 0, len(cleaned))
	for _, tag := range cleaned {
		if !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}

// formatTime stores a bare minute count ("25") as "25 min" and converts ISO durations.
func formatTime(s string) string {
	if n, err := strconv.Atoi(s); err == nil {
		return recipe.FormatMinutes(n)
	}
	return recipe.FormatISODuration(s)
}

// normalize turns raw strategy output into a storable record.
func normalize(raw *recipe.Recipe, sourceURL string, today time.Time) recipe.Recipe {
	r := recipe.Recipe{
		Title:        cleanText(raw.Title),
		Description:  cleanText(raw.Description),
		PrepTime:     formatTime(cleanText(raw.PrepTime)),
		CookTime:     formatTime(cleanText(raw.CookTime)),
		Servings:     cleanText(raw.Servings),
		Image:        strings.TrimSpace(raw.Image),
		Tags:         uniqueTags(raw.Tags),
		Ingredients:  cleanLines(raw.Ingredients),
		Instructions: cleanLines(raw.Instructions),
		Notes:        "",
		SourceURL:    sourceURL,
		DateAdded:    today.Format(recipe.DateLayout),
	}
	r.ID = recipe.GenerateID(r.Title)
	r.EnsureLists()
	return r
}
