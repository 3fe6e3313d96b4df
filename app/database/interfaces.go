package database

type AttemptRepository interface {
	RecordAttempt(attempt Attempt) (string, error)
	GetRecentAttempts(limit int) ([]Attempt, error)
	GetAttemptsByURL(url string) ([]Attempt, error)
	GetAttemptStats() (map[string]int, error)
}
