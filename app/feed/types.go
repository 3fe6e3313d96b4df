package feed

import (
	"time"
)

type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// Item is one feed entry pointing at a recipe page.
type Item struct {
	GUID        string
	Title       string
	Link        string
	Description string
	PublishedAt time.Time // zero when the feed gives no date
	Categories  []string

	IsFiltered   bool
	FilterReason string
}

// Filter keeps items whose field contains one of Includes and none of Excludes.
type Filter struct {
	Field    string
	Includes []string
	Excludes []string
}
