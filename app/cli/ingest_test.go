package cli

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lysyi3m/recipe-box/app/cfg"
	"github.com/lysyi3m/recipe-box/app/database"
	"github.com/lysyi3m/recipe-box/app/scraper"
)

const recipePage = `<!DOCTYPE html>
<html><head><title>%[1]s</title>
<script type="application/ld+json">
{"@context": "https://schema.org", "@type": "Recipe", "name": "%[1]s",
 "recipeYield": "4", "totalTime": "PT20M", "prepTime": "PT10M",
 "recipeIngredient": ["2 eggs", "1 cup flour"],
 "recipeInstructions": [{"@type": "HowToStep", "text": "Mix."}, {"@type": "HowToStep", "text": "Bake."}]}
</script></head><body><p>Recipe page</p></body></html>`

const plainPage = `<!DOCTYPE html><html><head></head><body><p>Nothing to eat here.</p></body></html>`

var recipeTitles = map[string]string{
	"lemon-cake":      "Lemon Cake",
	"known-soup":      "Known Soup",
	"sponsored-bread": "Sponsored Bread",
}

func newRecipeSite(t *testing.T) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/recipes/", func(w http.ResponseWriter, r *http.Request) {
		title, ok := recipeTitles[strings.TrimPrefix(r.URL.Path, "/recipes/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, recipePage, title)
	})
	mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, plainPage)
	})
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Kitchen Blog</title><link>%[1]s</link><description>Recipes</description>
<item><title>Lemon Cake</title><link>%[1]s/recipes/lemon-cake</link></item>
<item><title>Known Soup</title><link>%[1]s/recipes/known-soup</link></item>
<item><title>Shop news</title><link>%[1]s/plain</link></item>
<item><title>Sponsored Bread</title><link>%[1]s/recipes/sponsored-bread</link></item>
</channel></rss>`, server.URL)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestIngestCommand(t *testing.T) {
	site := newRecipeSite(t)
	historyPath := ""
	te := newTestEnv(t, "", func(opts *cfg.Options) {
		historyPath = filepath.Join(filepath.Dir(opts.StorePath), "history.db")
		opts.HistoryDB = historyPath
	})

	cmd := &IngestCommand{env: te.env}
	cmd.Args.URL = site.URL + "/recipes/lemon-cake"
	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	recipes := te.load(t)
	if len(recipes) != 1 {
		t.Fatalf("Expected 1 recipe, got %d", len(recipes))
	}

	r := recipes[0]
	if r.ID != "lemon-cake" || r.Title != "Lemon Cake" {
		t.Errorf("Expected lemon-cake, got %s / %s", r.ID, r.Title)
	}
	if r.PrepTime != "10 min" || r.SourceURL != cmd.Args.URL {
		t.Errorf("Expected normalized fields, got %+v", r)
	}
	if !strings.Contains(te.out.String(), "via json-ld") {
		t.Errorf("Expected strategy in output, got %q", te.out.String())
	}

	db, err := database.Open(historyPath)
	if err != nil {
		t.Fatalf("Failed to open history: %v", err)
	}
	defer db.Close()

	attempts, err := database.NewAttemptRepository(db).GetRecentAttempts(10)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}
	if len(attempts) != 1 || attempts[0].Status != database.StatusSuccess || attempts[0].Strategy != "json-ld" {
		t.Errorf("Expected one successful json-ld attempt, got %+v", attempts)
	}
	if attempts[0].Source != "cli" {
		t.Errorf("Expected source cli, got %s", attempts[0].Source)
	}
}

func TestIngestCommandAllStrategiesFail(t *testing.T) {
	site := newRecipeSite(t)
	te := newTestEnv(t, "", nil)
	te.seed(t, pancakes())

	before, err := os.ReadFile(te.storePath)
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}

	cmd := &IngestCommand{env: te.env}
	cmd.Args.URL = site.URL + "/plain"
	err = cmd.Execute(nil)
	if !errors.Is(err, scraper.ErrUnparseable) {
		t.Fatalf("Expected ErrUnparseable, got %v", err)
	}

	after, err := os.ReadFile(te.storePath)
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Expected store to be byte-identical after a failed ingest")
	}
}

func TestIngestCommandFetchFailure(t *testing.T) {
	site := newRecipeSite(t)
	te := newTestEnv(t, "", nil)

	cmd := &IngestCommand{env: te.env}
	cmd.Args.URL = site.URL + "/missing"
	if err := cmd.Execute(nil); !errors.Is(err, scraper.ErrFetch) {
		t.Errorf("Expected ErrFetch, got %v", err)
	}

	if _, err := os.Stat(te.storePath); !os.IsNotExist(err) {
		t.Errorf("Expected no store file to be created, got %v", err)
	}
}

func TestIngestCommandPromptDeclined(t *testing.T) {
	site := newRecipeSite(t)
	te := newTestEnv(t, "n\n", nil)
	existing := pancakes()
	existing.ID = "lemon-cake"
	te.seed(t, existing)

	cmd := &IngestCommand{env: te.env}
	cmd.Args.URL = site.URL + "/recipes/lemon-cake"
	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("Expected a declined prompt to succeed, got %v", err)
	}

	if !strings.Contains(te.out.String(), "not added") {
		t.Errorf("Expected 'not added' message, got %q", te.out.String())
	}
	if title := te.load(t)[0].Title; title != "Pancakes" {
		t.Errorf("Expected existing recipe to stay, got %s", title)
	}
}

func TestIngestCommandOverwritePolicy(t *testing.T) {
	site := newRecipeSite(t)
	te := newTestEnv(t, "", func(opts *cfg.Options) {
		opts.ConflictPolicy = "overwrite"
	})
	existing := pancakes()
	existing.ID = "lemon-cake"
	te.seed(t, existing, pancakes())

	cmd := &IngestCommand{env: te.env}
	cmd.Args.URL = site.URL + "/recipes/lemon-cake"
	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	recipes := te.load(t)
	if len(recipes) != 2 {
		t.Fatalf("Expected 2 recipes, got %d", len(recipes))
	}
	if recipes[0].Title != "Lemon Cake" {
		t.Errorf("Expected replacement in place, got %s first", recipes[0].Title)
	}
}

func TestIngestFeedCommand(t *testing.T) {
	site := newRecipeSite(t)
	te := newTestEnv(t, "", nil)
	known := pancakes()
	known.ID = "known-soup"
	known.SourceURL = site.URL + "/recipes/known-soup"
	te.seed(t, known)

	cmd := &IngestFeedCommand{env: te.env, Excludes: []string{"sponsored"}}
	cmd.Args.URL = site.URL + "/feed.xml"
	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("Expected per-item failures not to fail the command, got %v", err)
	}

	recipes := te.load(t)
	if len(recipes) != 2 {
		t.Fatalf("Expected 2 recipes, got %d", len(recipes))
	}
	if recipes[1].ID != "lemon-cake" {
		t.Errorf("Expected lemon-cake to be added, got %s", recipes[1].ID)
	}

	expected := "Added 1, replaced 0, declined 0, already stored 1, filtered 1, failed 1"
	if !strings.Contains(te.out.String(), expected) {
		t.Errorf("Expected summary %q, got %q", expected, te.out.String())
	}
}

func TestIngestFeedCommandLimit(t *testing.T) {
	site := newRecipeSite(t)
	te := newTestEnv(t, "", nil)

	cmd := &IngestFeedCommand{env: te.env, Limit: 1}
	cmd.Args.URL = site.URL + "/feed.xml"
	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if recipes := te.load(t); len(recipes) != 1 {
		t.Errorf("Expected limit to stop after 1 recipe, got %d", len(recipes))
	}
}

func TestIngestFeedCommandBadFeed(t *testing.T) {
	site := newRecipeSite(t)
	te := newTestEnv(t, "", nil)

	cmd := &IngestFeedCommand{env: te.env}
	cmd.Args.URL = site.URL + "/plain"
	if err := cmd.Execute(nil); err == nil {
		t.Error("Expected an error for a page that is not a feed")
	}
}
