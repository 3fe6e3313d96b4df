package scaling

import (
	"math"
	"testing"
)

func TestNormalizeFractions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"½ cup sugar", "1/2 cup sugar"},
		{"1½ cups flour", "1 1/2 cups flour"},
		{"2 ¾ cups milk", "2 3/4 cups milk"},
		{"⅓ tsp salt", "1/3 tsp salt"},
		{"1⁄2 lemon", "1/2 lemon"},
		{"no quantity here", "no quantity here"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeFractions(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"2", 2, true},
		{"1.5", 1.5, true},
		{".5", 0.5, true},
		{".", 0, false},
		{"3/4", 0.75, true},
		{"1 1/2", 1.5, true},
		{" 2 1/4 ", 2.25, true},
		{"1/0", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, ok := ParseQuantity(tt.input)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestDecimalToFraction(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0.5, "1/2"},
		{0.75, "3/4"},
		{1.5, "1 1/2"},
		{2, "2"},
		{1.0 / 3.0, "1/3"},
		{0.125, "1/8"},
		{4.5, "4 1/2"},
		{0, "0"},
	}

	for _, tt := range tests {
		result := DecimalToFraction(tt.input)
		if result != tt.expected {
			t.Errorf("DecimalToFraction(%v): expected %q, got %q", tt.input, tt.expected, result)
		}
	}
}

func TestDecimalToFractionRoundTrip(t *testing.T) {
	inputs := []string{"1/3", "2/3", "1 1/2", "3/8", "7/16", "2 5/6", "0.2", "1.75", "12", "0.333"}

	for _, input := range inputs {
		value, ok := ParseQuantity(input)
		if !ok {
			t.Fatalf("Expected %q to parse", input)
		}

		back, ok := ParseQuantity(DecimalToFraction(value))
		if !ok {
			t.Fatalf("Expected rendered fraction of %q to parse", input)
		}
		if math.Abs(back-value) > 1e-6 {
			t.Errorf("Round trip of %q: expected %v, got %v", input, value, back)
		}
	}
}

func TestApproximateBoundsDenominator(t *testing.T) {
	_, den := approximate(math.Pi, 0)
	if den < 1 || den > maxDenominator {
		t.Errorf("Expected denominator in [1, %d], got %d", maxDenominator, den)
	}
}
