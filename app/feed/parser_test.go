package feed

import (
	"testing"
)

func TestParseRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Weeknight Kitchen</title>
    <link>https://example.com</link>
    <description>New recipes every week</description>
    <language>en-us</language>
    <item>
      <title>Miso Glazed Salmon</title>
      <link>https://example.com/recipes/miso-salmon</link>
      <description>Sticky, salty, quick.</description>
      <guid>recipe-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <category>Dinner</category>
      <category>Fish</category>
    </item>
    <item>
      <title>Brown Butter Cookies</title>
      <link>https://example.com/recipes/brown-butter-cookies</link>
      <pubDate>Mon, 03 Jul 2023 11:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Announcement without a link</title>
    </item>
  </channel>
</rss>`

	parser := NewParser()
	metadata, items, err := parser.Run([]byte(rssData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if metadata.Title != "Weeknight Kitchen" {
		t.Errorf("Expected title 'Weeknight Kitchen', got: %s", metadata.Title)
	}
	if metadata.Language != "en-us" {
		t.Errorf("Expected language 'en-us', got: %s", metadata.Language)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items with links, got: %d", len(items))
	}

	item1 := items[0]
	if item1.Title != "Miso Glazed Salmon" {
		t.Errorf("Expected title 'Miso Glazed Salmon', got: %s", item1.Title)
	}
	if item1.GUID != "recipe-1" {
		t.Errorf("Expected GUID 'recipe-1', got: %s", item1.GUID)
	}
	if len(item1.Categories) != 2 {
		t.Errorf("Expected 2 categories, got: %d", len(item1.Categories))
	}
	if item1.PublishedAt.IsZero() {
		t.Error("Expected published date to be parsed")
	}

	if items[1].GUID != "https://example.com/recipes/brown-butter-cookies" {
		t.Errorf("Expected GUID to fall back to link, got: %s", items[1].GUID)
	}
}

func TestParseAtom(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Baking Notes</title>
  <link href="https://example.com"/>
  <updated>2023-07-03T12:00:00Z</updated>
  <id>urn:uuid:1234567890</id>
  <entry>
    <title>Sourdough Focaccia</title>
    <link href="https://example.com/focaccia"/>
    <id>urn:uuid:entry-1</id>
    <updated>2023-07-03T10:00:00Z</updated>
  </entry>
</feed>`

	parser := NewParser()
	metadata, items, err := parser.Run([]byte(atomData))

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if metadata.Title != "Baking Notes" {
		t.Errorf("Expected title 'Baking Notes', got: %s", metadata.Title)
	}

	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got: %d", len(items))
	}

	if items[0].Link != "https://example.com/focaccia" {
		t.Errorf("Expected link 'https://example.com/focaccia', got: %s", items[0].Link)
	}
}

func TestParseInvalidFeed(t *testing.T) {
	parser := NewParser()
	_, _, err := parser.Run([]byte("invalid xml"))

	if err == nil {
		t.Error("Expected error for invalid XML")
	}
}

func TestParser_normalizeURL(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "URL with UTM parameters",
			input:    "https://example.com/recipe?utm_source=twitter&utm_medium=social&utm_campaign=test",
			expected: "https://example.com/recipe",
		},
		{
			name:     "URL with Facebook tracking",
			input:    "https://example.com/page?fbclid=IwAR123456789&other=keep",
			expected: "https://example.com/page?other=keep",
		},
		{
			name:     "URL with multiple tracking parameters",
			input:    "https://example.com/content?utm_source=email&fbclid=xyz789&ref=homepage&print=1",
			expected: "https://example.com/content?print=1",
		},
		{
			name:     "URL without tracking parameters",
			input:    "https://example.com/clean?page=1&sort=date",
			expected: "https://example.com/clean?page=1&sort=date",
		},
		{
			name:     "Empty URL",
			input:    "",
			expected: "",
		},
		{
			name:     "Invalid URL",
			input:    "not-a-valid-url",
			expected: "not-a-valid-url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.normalizeURL(tt.input)
			if result != tt.expected {
				t.Errorf("normalizeURL(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseRSSWithTrackingParamsAndEntities(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Mum &amp; Dad&#8217;s Recipes</title>
    <link>https://example.com</link>
    <description>Family food</description>
    <item>
      <title>Mac &amp; Cheese</title>
      <link>https://example.com/mac?utm_source=rss&amp;fbclid=abc</link>
    </item>
  </channel>
</rss>`

	metadata, items, err := NewParser().Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if metadata.Title != "Mum & Dad’s Recipes" {
		t.Errorf("Expected decoded title, got %q", metadata.Title)
	}
	if items[0].Title != "Mac & Cheese" {
		t.Errorf("Expected decoded item title, got %q", items[0].Title)
	}
	if items[0].Link != "https://example.com/mac" {
		t.Errorf("Expected normalized link, got %q", items[0].Link)
	}
}
