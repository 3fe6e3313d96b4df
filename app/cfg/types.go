package cfg

import "time"

type Cfg struct {
	// Storage
	StorePath string
	SitesDir  string
	HistoryDB string

	// Ingestion
	UserAgent      string
	FetchTimeout   time.Duration
	ConflictPolicy string

	// Scaling
	PinchThreshold    float64
	FractionTolerance float64

	// HTTP API
	Port         string
	APIAccessKey string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
