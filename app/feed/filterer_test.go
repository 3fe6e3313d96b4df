package feed

import (
	"testing"
)

func TestFilterer_NoFilters(t *testing.T) {
	filterer := NewFilterer()

	items := []Item{
		{Title: "Miso Salmon"},
		{Title: "Roast Chicken"},
	}

	result := filterer.Run(items, nil)

	if len(result) != 2 {
		t.Errorf("Expected 2 items, got %d", len(result))
	}
	for i, item := range result {
		if item.IsFiltered {
			t.Errorf("Item %d should not be filtered when no filters are given", i)
		}
	}
}

func TestFilterer_CombinedIncludeExclude(t *testing.T) {
	filterer := NewFilterer()

	items := []Item{
		{Title: "Vegan Chocolate Cake"},
		{Title: "Chocolate Cake Sponsored Post"},
		{Title: "Vegan Curry"},
		{Title: "Beef Stew"},
	}

	filters := []Filter{
		{
			Field:    "title",
			Includes: []string{"vegan", "cake"},
			Excludes: []string{"sponsored"},
		},
	}

	result := filterer.Run(items, filters)

	if result[0].IsFiltered {
		t.Errorf("First item should not be filtered")
	}
	if !result[1].IsFiltered {
		t.Errorf("Second item should be filtered due to excluded term")
	}
	if result[2].IsFiltered {
		t.Errorf("Third item should not be filtered")
	}
	if !result[3].IsFiltered {
		t.Errorf("Fourth item should be filtered, no included terms")
	}
	if result[3].FilterReason == "" {
		t.Errorf("Expected a filter reason for the fourth item")
	}
}

func TestFilterer_CategoriesField(t *testing.T) {
	filterer := NewFilterer()

	items := []Item{
		{Title: "Article 1", Categories: []string{"Dessert", "Baking"}},
		{Title: "Article 2", Categories: []string{"Drinks"}},
	}

	filters := []Filter{
		{Field: "categories", Includes: []string{"dessert"}},
	}

	result := filterer.Run(items, filters)

	if result[0].IsFiltered {
		t.Errorf("First item should not be filtered")
	}
	if !result[1].IsFiltered {
		t.Errorf("Second item should be filtered")
	}
}

func TestFilterer_CaseInsensitive(t *testing.T) {
	filterer := NewFilterer()

	items := []Item{
		{Title: "QUICK PASTA"},
		{Title: "slow roast"},
	}

	result := filterer.Run(items, []Filter{{Field: "title", Includes: []string{"Pasta"}}})

	if result[0].IsFiltered {
		t.Errorf("First item should not be filtered (case insensitive)")
	}
	if !result[1].IsFiltered {
		t.Errorf("Second item should be filtered")
	}
}

func TestFilterer_UnknownField(t *testing.T) {
	filterer := NewFilterer()

	items := []Item{{Title: "Anything"}}
	result := filterer.Run(items, []Filter{{Field: "unknown", Excludes: []string{"anything"}}})

	if result[0].IsFiltered {
		t.Errorf("Unknown field should never match an exclude")
	}
}
