package recipe

import "testing"

func TestGenerateID(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Grandma's Chocolate Chip Cookies!", "grandmas-chocolate-chip-cookies"},
		{"Simple Banana Muffins", "simple-banana-muffins"},
		{"  Mac & Cheese  ", "mac-cheese"},
		{"Crème Brûlée", "creme-brulee"},
		{"One-Pot -- Chili", "one-pot-chili"},
		{"Pad Thai (Easy)\tVersion", "pad-thai-easy-version"},
		{"Chocolate\u00a0Cake", "chocolate-cake"},
		{"Thin\u2009Mint\u3000Bars", "thin-mint-bars"},
		{"!!!", "untitled"},
		{"", "untitled"},
	}

	for _, tt := range tests {
		if got := GenerateID(tt.title); got != tt.expected {
			t.Errorf("GenerateID(%q): expected '%s', got '%s'", tt.title, tt.expected, got)
		}
	}
}

func TestGenerateIDIsStable(t *testing.T) {
	title := "Grandma's Chocolate Chip Cookies!"
	if GenerateID(title) != GenerateID(GenerateID(title)) {
		t.Errorf("Expected ID generation to be idempotent on its own output")
	}
}
