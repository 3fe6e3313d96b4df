package scaling

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var vulgarFractions = map[rune]string{
	'¼': "1/4", '½': "1/2", '¾': "3/4",
	'⅐': "1/7", '⅑': "1/9", '⅒': "1/10",
	'⅓': "1/3", '⅔': "2/3",
	'⅕': "1/5", '⅖': "2/5", '⅗': "3/5", '⅘': "4/5",
	'⅙': "1/6", '⅚': "5/6",
	'⅛': "1/8", '⅜': "3/8", '⅝': "5/8", '⅞': "7/8",
}

// fractionSlash is U+2044, used by some sites between digits instead of '/'.
const fractionSlash = '⁄'

var (
	// Alternatives are tried left to right, so a mixed number wins over the fraction inside it.
	quantityPattern = regexp.MustCompile(`\d+[ \t]+\d+/\d+|\d+/\d+|\d*\.\d+|\d+`)

	mixedNumber = regexp.MustCompile(`^(\d+)[ \t]+(\d+)/(\d+)$`)
	fraction    = regexp.MustCompile(`^(\d+)/(\d+)$`)
	decimal     = regexp.MustCompile(`^(?:\d+|\d*\.\d+)$`)
)

const (
	// maxTerms bounds the continued fraction expansion regardless of tolerance.
	maxTerms = 64
	// maxDenominator stops the expansion before convergents get unreadable or overflow.
	maxDenominator = 1_000_000
	// minRemainder treats a smaller fractional part as exact to avoid dividing by ~0.
	minRemainder = 1e-12
)

// NormalizeFractions replaces Unicode vulgar fractions with ASCII "n/d".
// A glyph directly after a digit becomes the fractional part of a mixed number: "1½" -> "1 1/2".
func NormalizeFractions(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	for _, r := range s {
		if ascii, ok := vulgarFractions[r]; ok {
			if unicode.IsDigit(prev) {
				b.WriteByte(' ')
			}
			b.WriteString(ascii)
		} else if r == fractionSlash {
			b.WriteByte('/')
		} else {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

// ParseQuantity reads a mixed number ("1 1/2"), fraction ("3/4"), decimal or integer.
// It reports false for anything else, including a zero denominator.
func ParseQuantity(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	if m := mixedNumber.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		frac, ok := ratio(m[2], m[3])
		if !ok {
			return 0, false
		}
		return whole + frac, true
	}

	if m := fraction.FindStringSubmatch(s); m != nil {
		return ratio(m[1], m[2])
	}

	if decimal.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	return 0, false
}

func ratio(num, den string) (float64, bool) {
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// DecimalToFraction renders x as "n", "n/d" or "w n/d" using DefaultTolerance.
func DecimalToFraction(x float64) string {
	return formatFraction(x, DefaultTolerance)
}

func formatFraction(x, tolerance float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}

	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	num, den := approximate(x, tolerance)
	whole, rem := num/den, num%den

	switch {
	case rem == 0:
		return fmt.Sprintf("%s%d", sign, whole)
	case whole == 0:
		return fmt.Sprintf("%s%d/%d", sign, rem, den)
	default:
		return fmt.Sprintf("%s%d %d/%d", sign, whole, rem, den)
	}
}

// approximate returns the first continued fraction convergent num/den of x (x >= 0)
// whose relative error is within tolerance. The expansion is bounded by maxTerms and
// maxDenominator; den is always >= 1.
func approximate(x, tolerance float64) (num, den int64) {
	if x == 0 {
		return 0, 1
	}

	// (h0, k0) and (h1, k1) are the two most recent convergents.
	h0, h1 := int64(0), int64(1)
	k0, k1 := int64(1), int64(0)

	b := x
	for i := 0; i < maxTerms; i++ {
		a := math.Floor(b)
		if a > math.MaxInt32 {
			break
		}
		ai := int64(a)

		h2 := ai*h1 + h0
		k2 := ai*k1 + k0
		if k2 > maxDenominator {
			break
		}
		h0, h1 = h1, h2
		k0, k1 = k1, k2

		if math.Abs(x-float64(h1)/float64(k1)) <= x*tolerance {
			break
		}

		remainder := b - a
		if remainder < minRemainder {
			break
		}
		b = 1 / remainder
	}

	if k1 == 0 {
		// Only reachable when x itself is too large to take one step.
		return int64(math.Round(x)), 1
	}
	return h1, k1
}
