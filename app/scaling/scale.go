package scaling

import (
	"math"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

const (
	// DefaultPinchThreshold is the scaled amount below which a quantity renders as "pinch of".
	DefaultPinchThreshold = 0.1
	// DefaultTolerance is the relative error accepted when turning a decimal back into a fraction.
	DefaultTolerance = 1e-6

	pinch = "pinch of"
)

// Scaler rewrites the quantities in ingredient lines.
type Scaler struct {
	PinchThreshold float64
	Tolerance      float64
}

// NewScaler returns a Scaler using the given constants; non-positive values fall back to the defaults.
func NewScaler(pinchThreshold, tolerance float64) Scaler {
	if pinchThreshold <= 0 {
		pinchThreshold = DefaultPinchThreshold
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return Scaler{PinchThreshold: pinchThreshold, Tolerance: tolerance}
}

// DefaultScaler uses DefaultPinchThreshold and DefaultTolerance.
func DefaultScaler() Scaler {
	return NewScaler(DefaultPinchThreshold, DefaultTolerance)
}

// ScaleIngredient scales line with the default constants.
func ScaleIngredient(line string, multiplier float64) string {
	return DefaultScaler().Scale(line, multiplier)
}

// Scale multiplies every quantity in line by multiplier and leaves the remaining text untouched.
// A multiplier of exactly 1 returns line unchanged, as does a non-positive or non-finite one.
// Scaled amounts under the pinch threshold become "pinch of"; that substitution is lossy.
func (s Scaler) Scale(line string, multiplier float64) string {
	if multiplier == 1 || !(multiplier > 0) || math.IsInf(multiplier, 0) {
		return line
	}

	normalized := NormalizeFractions(line)
	return quantityPattern.ReplaceAllStringFunc(normalized, func(token string) string {
		value, ok := ParseQuantity(token)
		if !ok {
			return token
		}

		scaled := value * multiplier
		if scaled < s.PinchThreshold {
			return pinch
		}
		return formatFraction(scaled, s.Tolerance)
	})
}

// ScaleAll scales every non-blank line; blank lines are dropped.
func (s Scaler) ScaleAll(lines []string, multiplier float64) []string {
	kept := recipe.NonBlank(lines)
	out := make([]string, len(kept))
	for i, line := range kept {
		out[i] = s.Scale(line, multiplier)
	}
	return out
}
