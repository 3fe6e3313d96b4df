package recipe

import (
	"regexp"
	"strings"
)

var (
	ingredientHeaders  = []string{"ingredient", "what you need", "you will need"}
	instructionHeaders = []string{"instruction", "direction", "steps", "method", "preparation", "how to make"}

	measurementWord = regexp.MustCompile(`\b(cup|cups|tablespoon|tbsp|teaspoon|tsp|ounce|oz|pound|lb|gram|g|kg|ml|liter|pinch|dash)\b`)
	leadingNumber   = regexp.MustCompile(`^\d+`)
)

const (
	maxHeaderLength     = 50
	maxIngredientLength = 100
	minLineLength       = 3
)

type section int

const (
	sectionUnknown section = iota
	sectionIngredients
	sectionInstructions
)

// SplitText separates free recipe text (typed or OCR'd) into ingredients and instructions.
// Short lines naming a section switch the current section; outside any section a line
// is an ingredient when it is short and starts with a number or names a measurement.
func SplitText(text string) (ingredients, instructions []string) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	current := sectionUnknown
	for _, line := range lines {
		lower := strings.ToLower(line)

		if len(line) < maxHeaderLength {
			if containsAny(lower, ingredientHeaders) {
				current = sectionIngredients
				continue
			}
			if containsAny(lower, instructionHeaders) {
				current = sectionInstructions
				continue
			}
		}

		if len(line) < minLineLength {
			continue
		}

		switch current {
		case sectionIngredients:
			ingredients = append(ingredients, line)
		case sectionInstructions:
			instructions = append(instructions, line)
		default:
			looksLikeIngredient := measurementWord.MatchString(lower) || leadingNumber.MatchString(line)
			if looksLikeIngredient && len(line) < maxIngredientLength {
				ingredients = append(ingredients, line)
			} else {
				instructions = append(instructions, line)
			}
		}
	}

	if len(ingredients) == 0 && len(instructions) == 0 {
		instructions = lines
	}

	return ingredients, instructions
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
