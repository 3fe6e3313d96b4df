package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

var ErrNotFound = errors.New("recipe not found")

// Store reads and rewrites the recipe collection kept in one JSON file.
// Every mutation loads the whole array, changes it, and writes it back.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored recipes. A missing or empty file is an empty collection.
func (s *Store) Load() ([]recipe.Recipe, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []recipe.Recipe{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []recipe.Recipe{}, nil
	}

	var recipes []recipe.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", s.path, err)
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}

	return recipes, nil
}

// Save replaces the whole collection. The file is written to a temporary
// sibling and renamed over the original so readers never see a partial write.
func (s *Store) Save(recipes []recipe.Recipe) error {
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	for i := range recipes {
		recipes[i].EnsureLists()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recipes); err != nil {
		return fmt.Errorf("failed to encode recipes: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".recipes-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set store permissions: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace store %s: %w", s.path, err)
	}

	return nil
}

// Get returns the recipe with the given id.
func (s *Store) Get(id string) (recipe.Recipe, error) {
	recipes, err := s.Load()
	if err != nil {
		return recipe.Recipe{}, err
	}

	i := indexOf(recipes, id)
	if i < 0 {
		return recipe.Recipe{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return recipes[i], nil
}

// SourceURLs returns the set of sourceUrl values already in the collection.
func (s *Store) SourceURLs() (map[string]struct{}, error) {
	recipes, err := s.Load()
	if err != nil {
		return nil, err
	}

	urls := make(map[string]struct{}, len(recipes))
	for _, r := range recipes {
		if r.SourceURL != "" {
			urls[r.SourceURL] = struct{}{}
		}
	}
	return urls, nil
}

// Delete removes the recipe with the given id and returns it.
func (s *Store) Delete(id string) (recipe.Recipe, error) {
	recipes, err := s.Load()
	if err != nil {
		return recipe.Recipe{}, err
	}

	i := indexOf(recipes, id)
	if i < 0 {
		return recipe.Recipe{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	removed := recipes[i]
	recipes = append(recipes[:i], recipes[i+1:]...)

	if err := s.Save(recipes); err != nil {
		return recipe.Recipe{}, err
	}
	return removed, nil
}

// UpdateNotes sets the notes of the recipe with the given id.
func (s *Store) UpdateNotes(id, notes string) (recipe.Recipe, error) {
	return s.modify(id, func(r *recipe.Recipe) {
		r.Notes = notes
	})
}

func (s *Store) modify(id string, change func(r *recipe.Recipe)) (recipe.Recipe, error) {
	recipes, err := s.Load()
	if err != nil {
		return recipe.Recipe{}, err
	}

	i := indexOf(recipes, id)
	if i < 0 {
		return recipe.Recipe{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	change(&recipes[i])

	if err := s.Save(recipes); err != nil {
		return recipe.Recipe{}, err
	}
	return recipes[i], nil
}

func indexOf(recipes []recipe.Recipe, id string) int {
	for i, r := range recipes {
		if r.ID == id {
			return i
		}
	}
	return -1
}
