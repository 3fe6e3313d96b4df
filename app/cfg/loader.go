package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"time"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// Options are the global command-line options shared by every command.
// The parser fills them from flags, then environment, then defaults.
type Options struct {
	// Storage
	StorePath string `long:"store" env:"RECIPES_FILE" default:"data/recipes.json" description:"Path to the recipes JSON file"`
	SitesDir  string `long:"sites-dir" env:"SITES_DIR" default:"./sites" description:"Directory with extra site definition files (*.yml)"`
	HistoryDB string `long:"history-db" env:"HISTORY_DB" description:"SQLite file for the ingest history (disabled when empty)"`

	// Ingestion
	UserAgent      string        `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (compatible; RecipeBox/1.0)" description:"User agent string for HTTP requests"`
	FetchTimeout   time.Duration `long:"timeout" env:"FETCH_TIMEOUT" default:"30s" description:"Timeout for fetching a page or feed"`
	ConflictPolicy string        `long:"conflict-policy" env:"CONFLICT_POLICY" default:"prompt" choice:"prompt" choice:"overwrite" description:"What to do when a recipe id already exists"`

	// Scaling
	PinchThreshold    float64 `long:"pinch-threshold" env:"PINCH_THRESHOLD" default:"0.1" description:"Scaled amounts below this render as 'pinch of'"`
	FractionTolerance float64 `long:"fraction-tolerance" env:"FRACTION_TOLERANCE" default:"0.000001" description:"Relative error allowed when rendering fractions"`

	// HTTP API
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port for the serve command"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for /api endpoints (optional)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for dateAdded and timestamps (e.g., UTC, Europe/Berlin)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load validates parsed options and makes them available through Get.
func Load(opts *Options) (*Cfg, error) {
	if opts.StorePath == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if opts.FetchTimeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", opts.FetchTimeout)
	}
	if opts.PinchThreshold < 0 {
		return nil, fmt.Errorf("pinch threshold must be non-negative, got %v", opts.PinchThreshold)
	}
	if opts.FractionTolerance <= 0 || opts.FractionTolerance >= 1 {
		return nil, fmt.Errorf("fraction tolerance must be between 0 and 1, got %v", opts.FractionTolerance)
	}

	cfg := &Cfg{
		StorePath:         opts.StorePath,
		SitesDir:          opts.SitesDir,
		HistoryDB:         opts.HistoryDB,
		UserAgent:         opts.UserAgent,
		FetchTimeout:      opts.FetchTimeout,
		ConflictPolicy:    opts.ConflictPolicy,
		PinchThreshold:    opts.PinchThreshold,
		FractionTolerance: opts.FractionTolerance,
		Port:              opts.Port,
		APIAccessKey:      opts.APIAccessKey,
		Timezone:          opts.Timezone,
		Debug:             opts.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	time.Local = loc
	return nil
}
