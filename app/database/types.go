package database

import (
	"time"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Attempt is one ingestion try, successful or not.
type Attempt struct {
	ID        string // UUID
	URL       string
	RecipeID  string
	Strategy  string // strategy that produced the recipe, empty on failure
	Status    string // success, failed, skipped
	Error     string
	Source    string // cli, feed
	CreatedAt time.Time
}
