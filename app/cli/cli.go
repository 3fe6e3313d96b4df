package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/lysyi3m/recipe-box/app/cfg"
	"github.com/lysyi3m/recipe-box/app/database"
	"github.com/lysyi3m/recipe-box/app/scaling"
	"github.com/lysyi3m/recipe-box/app/scraper"
	"github.com/lysyi3m/recipe-box/app/store"
)

// Env is where commands print results and read confirmations from.
type Env struct {
	Out io.Writer
	In  io.Reader

	reader *bufio.Reader
}

// confirmer shares one buffered reader across prompts so queued answers are not lost.
func (e *Env) confirmer() store.Confirmer {
	if e.reader == nil {
		e.reader = bufio.NewReader(e.In)
	}
	return store.TerminalConfirmer{In: e.reader, Out: e.Out}
}

type command struct {
	name  string
	short string
	long  string
	data  interface{}
}

// Register adds every recipe-box command to parser.
func Register(parser *flags.Parser, env *Env) error {
	commands := []command{
		{"ingest", "Ingest a recipe from a URL", "Fetch a recipe page, extract the recipe and add it to the store.", &IngestCommand{env: env}},
		{"ingest-feed", "Ingest every recipe linked from a feed", "Ingest each RSS/Atom item whose link is not already in the store.", &IngestFeedCommand{env: env}},
		{"import", "Import a recipe from text", "Create a recipe from a title and free text holding ingredients and instructions.", &ImportCommand{env: env}},
		{"delete", "Delete a recipe", "Remove the recipe with the given id from the store.", &DeleteCommand{env: env}},
		{"update-notes", "Replace a recipe's notes", "Set the notes of the recipe with the given id.", &UpdateNotesCommand{env: env}},
		{"update-meta", "Update recipe metadata", "Change description, image, times, servings or source URL of a recipe.", &UpdateMetaCommand{env: env}},
		{"list", "List recipes", "Search, filter by tag and sort the stored recipes.", &ListCommand{env: env}},
		{"show", "Show a recipe", "Print one recipe in full.", &ShowCommand{env: env}},
		{"scale", "Scale a recipe's ingredients", "Print the ingredients of a recipe scaled to a serving count.", &ScaleCommand{env: env}},
		{"export", "Export recipes to XLSX or CSV", "Write every stored recipe to a spreadsheet; the format follows the file extension.", &ExportCommand{env: env}},
		{"history", "Show recent ingest attempts", "List ingest attempts recorded in the history database.", &HistoryCommand{env: env}},
		{"serve", "Serve the read-only HTTP API", "Serve the recipe catalog as JSON over HTTP.", &ServeCommand{env: env}},
	}

	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return fmt.Errorf("failed to register command %s: %w", c.name, err)
		}
	}

	return nil
}

func openStore() *store.Store {
	return store.New(cfg.Get().StorePath)
}

func newScaler() scaling.Scaler {
	c := cfg.Get()
	return scaling.NewScaler(c.PinchThreshold, c.FractionTolerance)
}

func newChain() (*scraper.Chain, error) {
	c := cfg.Get()

	registry := scraper.NewSiteRegistry(c.SitesDir)
	if err := registry.Run(); err != nil {
		return nil, fmt.Errorf("failed to load site definitions: %w", err)
	}
	slog.Debug("Site definitions loaded", "count", registry.GetSiteCount())

	fetcher := scraper.NewFetcher(c.FetchTimeout, c.UserAgent)
	return scraper.NewDefaultChain(fetcher, registry), nil
}

// openHistory returns a nil repository when no history database is configured.
func openHistory() (database.AttemptRepository, func(), error) {
	path := cfg.Get().HistoryDB
	if path == "" {
		return nil, func() {}, nil
	}

	db, err := database.Open(path)
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Warn("Failed to close history database", "error", err)
		}
	}

	return database.NewAttemptRepository(db), closeDB, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
