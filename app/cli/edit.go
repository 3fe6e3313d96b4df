package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lysyi3m/recipe-box/app/recipe"
	"github.com/lysyi3m/recipe-box/app/store"
)

type DeleteCommand struct {
	Args struct {
		ID string `positional-arg-name:"id" description:"Recipe id"`
	} `positional-args:"yes" required:"yes"`

	env *Env
}

func (c *DeleteCommand) Execute(args []string) error {
	s := openStore()

	removed, err := s.Delete(c.Args.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			printAvailableIDs(c.env, s)
		}
		return err
	}

	fmt.Fprintf(c.env.Out, "Deleted recipe: %s (%s)\n", removed.Title, removed.ID)
	return nil
}

type UpdateNotesCommand struct {
	Args struct {
		ID    string `positional-arg-name:"id" description:"Recipe id"`
		Notes string `positional-arg-name:"notes" description:"New notes text; empty clears them"`
	} `positional-args:"yes" required:"2"`

	env *Env
}

func (c *UpdateNotesCommand) Execute(args []string) error {
	s := openStore()

	updated, err := s.UpdateNotes(c.Args.ID, c.Args.Notes)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			printAvailableIDs(c.env, s)
		}
		return err
	}

	fmt.Fprintf(c.env.Out, "Updated notes for: %s\n", updated.Title)
	return nil
}

type UpdateMetaCommand struct {
	Description *string `long:"description" description:"Recipe description"`
	Image       *string `long:"image" description:"Image URL"`
	PrepTime    *string `long:"prep-time" description:"Prep time (ISO 8601 durations are converted)"`
	CookTime    *string `long:"cook-time" description:"Cook time (ISO 8601 durations are converted)"`
	Servings    *string `long:"servings" description:"Servings text"`
	SourceURL   *string `long:"source-url" description:"Source URL"`

	Args struct {
		ID string `positional-arg-name:"id" description:"Recipe id"`
	} `positional-args:"yes" required:"yes"`

	env *Env
}

func (c *UpdateMetaCommand) Execute(args []string) error {
	update := store.MetadataUpdate{
		Description: c.Description,
		Image:       c.Image,
		PrepTime:    formatDuration(c.PrepTime),
		CookTime:    formatDuration(c.CookTime),
		Servings:    c.Servings,
		SourceURL:   c.SourceURL,
	}
	if update.Empty() {
		return fmt.Errorf("%w: pass at least one of --description, --image, --prep-time, --cook-time, --servings, --source-url", store.ErrNoChanges)
	}

	s := openStore()

	updated, err := s.UpdateMetadata(c.Args.ID, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			printAvailableIDs(c.env, s)
		}
		return err
	}

	fmt.Fprintf(c.env.Out, "Updated recipe: %s\n", updated.Title)
	printField(c.env, "Description", update.Description)
	printField(c.env, "Image", update.Image)
	printField(c.env, "Prep time", update.PrepTime)
	printField(c.env, "Cook time", update.CookTime)
	printField(c.env, "Servings", update.Servings)
	printField(c.env, "Source URL", update.SourceURL)
	return nil
}

func formatDuration(value *string) *string {
	if value == nil {
		return nil
	}
	formatted := recipe.FormatISODuration(*value)
	return &formatted
}

func printField(env *Env, name string, value *string) {
	if value != nil {
		fmt.Fprintf(env.Out, "  %s: %s\n", name, *value)
	}
}

// ImportCommand builds a recipe from typed or pasted text. An existing recipe with
// the same id is always replaced.
type ImportCommand struct {
	Title       string `long:"title" required:"true" description:"Recipe title"`
	Text        string `long:"text" required:"true" description:"Recipe text with ingredients and instructions"`
	PrepTime    string `long:"prep-time" description:"Prep time (e.g. \"10 min\")"`
	CookTime    string `long:"cook-time" description:"Cook time (e.g. \"30 min\")"`
	Servings    string `long:"servings" description:"Servings text"`
	Description string `long:"description" description:"Recipe description"`
	Image       string `long:"image" description:"Image URL"`
	Source      string `long:"source" description:"Source URL"`

	env *Env
	now func() time.Time
}

func (c *ImportCommand) Execute(args []string) error {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return fmt.Errorf("title must not be empty")
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}

	ingredients, instructions := recipe.SplitText(c.Text)
	r := recipe.Recipe{
		ID:           recipe.GenerateID(title),
		Title:        title,
		Description:  c.Description,
		PrepTime:     recipe.FormatISODuration(c.PrepTime),
		CookTime:     recipe.FormatISODuration(c.CookTime),
		Servings:     c.Servings,
		Image:        c.Image,
		Tags:         []string{},
		Ingredients:  ingredients,
		Instructions: instructions,
		SourceURL:    c.Source,
		DateAdded:    now().In(time.Local).Format(recipe.DateLayout),
	}

	fmt.Fprintf(c.env.Out, "Parsed recipe: %s (%s)\n", r.Title, r.ID)
	fmt.Fprintf(c.env.Out, "  Ingredients found: %d\n", len(ingredients))
	fmt.Fprintf(c.env.Out, "  Instructions found: %d\n", len(instructions))

	outcome, err := openStore().Upsert(r, store.PolicyOverwrite, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.env.Out, "Recipe %q %s\n", r.Title, outcome)
	return nil
}

func printAvailableIDs(env *Env, s *store.Store) {
	recipes, err := s.Load()
	if err != nil || len(recipes) == 0 {
		return
	}

	fmt.Fprintln(env.Out, "Available recipe IDs:")
	for _, r := range recipes {
		fmt.Fprintf(env.Out, "  - %s\n", r.ID)
	}
}
