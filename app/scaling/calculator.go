package scaling

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

// ErrInvalidServings is returned when a requested serving count is not an integer >= 1.
var ErrInvalidServings = errors.New("servings must be a whole number of at least 1")

var firstInteger = regexp.MustCompile(`\d+`)

// Calculator holds a recipe's original ingredient list and the list currently shown,
// which may be scaled. Scaling never modifies the original list.
type Calculator struct {
	scaler           Scaler
	original         []string
	originalServings int
	displayed        []string
	input            int
}

// NewCalculator prepares a calculator for the given ingredients and free-text servings ("4 servings").
func NewCalculator(ingredients []string, servings string, scaler Scaler) *Calculator {
	original := recipe.NonBlank(ingredients)
	c := &Calculator{
		scaler:           scaler,
		original:         original,
		originalServings: ParseServings(servings),
	}
	c.Reset()
	return c
}

// ParseServings returns the first integer in a servings text, or 1 when there is none.
func ParseServings(servings string) int {
	m := firstInteger.FindString(servings)
	if m == "" {
		return 1
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Scale shows the ingredients scaled to newServings. Invalid input leaves the current view as it was.
func (c *Calculator) Scale(newServings string) ([]string, error) {
	trimmed := strings.TrimSpace(newServings)
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidServings, newServings)
	}

	multiplier := float64(n) / float64(c.originalServings)
	c.displayed = c.scaler.ScaleAll(c.original, multiplier)
	c.input = n

	return c.Displayed(), nil
}

// Reset shows the original ingredients and restores the original serving count.
func (c *Calculator) Reset() []string {
	c.displayed = append([]string(nil), c.original...)
	c.input = c.originalServings
	return c.Displayed()
}

// Displayed returns a copy of the ingredient lines currently shown.
func (c *Calculator) Displayed() []string {
	return append([]string(nil), c.displayed...)
}

// Input returns the serving count currently entered.
func (c *Calculator) Input() int {
	return c.input
}

// OriginalServings returns the serving count the ingredient list was written for.
func (c *Calculator) OriginalServings() int {
	return c.originalServings
}
