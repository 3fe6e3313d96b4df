package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "recipes.json"))
}

func seed(t *testing.T, s *Store, recipes ...recipe.Recipe) {
	t.Helper()
	if err := s.Save(recipes); err != nil {
		t.Fatalf("Failed to seed store: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	recipes, err := s.Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if recipes == nil || len(recipes) != 0 {
		t.Errorf("Expected empty collection, got %v", recipes)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load(); err == nil {
		t.Error("Expected error for malformed store")
	}
}

func TestSaveFormat(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, recipe.Recipe{ID: "creme-brulee", Title: "Crème Brûlée & <Co>"})

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.HasSuffix(content, "]\n") {
		t.Errorf("Expected trailing newline after array, got %q", content[len(content)-3:])
	}
	if !strings.Contains(content, "\n  {\n    \"id\": \"creme-brulee\"") {
		t.Errorf("Expected two-space indentation, got:\n%s", content)
	}
	if !strings.Contains(content, "Crème Brûlée & <Co>") {
		t.Errorf("Expected non-ASCII and markup characters verbatim, got:\n%s", content)
	}
	if !strings.Contains(content, `"tags": []`) || strings.Contains(content, "null") {
		t.Errorf("Expected empty lists encoded as [], got:\n%s", content)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, recipe.Recipe{ID: "a", Title: "A"})
	seed(t, s, recipe.Recipe{ID: "b", Title: "B"})

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the store file, got %d entries", len(entries))
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, recipe.Recipe{ID: "a", Title: "A"}, recipe.Recipe{ID: "b", Title: "B"})

	removed, err := s.Delete("a")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if removed.Title != "A" {
		t.Errorf("Expected removed recipe A, got %s", removed.Title)
	}

	recipes, _ := s.Load()
	if len(recipes) != 1 || recipes[0].ID != "b" {
		t.Errorf("Expected only b to remain, got %v", recipes)
	}
}

func TestDeleteMissingLeavesFileUntouched(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, recipe.Recipe{ID: "a", Title: "A"})
	before, _ := os.ReadFile(s.Path())

	_, err := s.Delete("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	after, _ := os.ReadFile(s.Path())
	if string(before) != string(after) {
		t.Error("Expected store to be unchanged")
	}
}

func TestUpdateNotes(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, recipe.Recipe{ID: "a", Title: "A"})

	if _, err := s.UpdateNotes("a", "Use less sugar"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	r, err := s.Get("a")
	if err != nil {
		t.Fatal(err)
	}
	if r.Notes != "Use less sugar" {
		t.Errorf("Expected notes to be set, got %q", r.Notes)
	}

	if _, err := s.UpdateNotes("missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMetadata(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, recipe.Recipe{ID: "a", Title: "A", Servings: "2", Image: "old.jpg"})

	servings := "4"
	prep := "15 min"
	r, err := s.UpdateMetadata("a", MetadataUpdate{Servings: &servings, PrepTime: &prep})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if r.Servings != "4" || r.PrepTime != "15 min" {
		t.Errorf("Expected servings and prep time updated, got %+v", r)
	}
	if r.Image != "old.jpg" {
		t.Errorf("Expected image untouched, got %s", r.Image)
	}

	if _, err := s.UpdateMetadata("a", MetadataUpdate{}); !errors.Is(err, ErrNoChanges) {
		t.Errorf("Expected ErrNoChanges, got %v", err)
	}
}

func TestSourceURLs(t *testing.T) {
	s := newTestStore(t)
	seed(t, s,
		recipe.Recipe{ID: "a", SourceURL: "https://example.com/a"},
		recipe.Recipe{ID: "b"},
	)

	urls, err := s.SourceURLs()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := urls["https://example.com/a"]; !ok || len(urls) != 1 {
		t.Errorf("Expected one source url, got %v", urls)
	}
}
