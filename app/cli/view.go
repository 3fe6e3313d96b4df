package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/lysyi3m/recipe-box/app/catalog"
	"github.com/lysyi3m/recipe-box/app/database"
	"github.com/lysyi3m/recipe-box/app/export"
	"github.com/lysyi3m/recipe-box/app/recipe"
	"github.com/lysyi3m/recipe-box/app/scaling"
)

type ListCommand struct {
	Search string `long:"search" short:"s" description:"Case-insensitive text to find in title, description, ingredients or tags"`
	Tag    string `long:"tag" short:"t" description:"Only recipes with this tag"`
	Sort   string `long:"sort" default:"newest" description:"newest, oldest, title-asc, title-desc, prep-time or cook-time"`

	env *Env
}

func (c *ListCommand) Execute(args []string) error {
	sortKey, err := catalog.ParseSort(c.Sort)
	if err != nil {
		return err
	}

	recipes, err := openStore().Load()
	if err != nil {
		return err
	}

	result := catalog.Apply(recipes, catalog.Query{Search: c.Search, Tag: c.Tag, Sort: sortKey})
	if len(result) == 0 {
		fmt.Fprintln(c.env.Out, "No recipes found.")
		return nil
	}

	w := tabwriter.NewWriter(c.env.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPREP\tCOOK\tADDED\tTAGS")
	for _, r := range result {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Title, orDash(r.PrepTime), orDash(r.CookTime), orDash(r.DateAdded), strings.Join(r.Tags, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(c.env.Out, "%d of %d recipes\n", len(result), len(recipes))
	return nil
}

type ShowCommand struct {
	Args struct {
		ID string `positional-arg-name:"id" description:"Recipe id"`
	} `positional-args:"yes" required:"yes"`

	env *Env
}

func (c *ShowCommand) Execute(args []string) error {
	r, err := openStore().Get(c.Args.ID)
	if err != nil {
		return err
	}

	printRecipe(c.env, r)
	return nil
}

type ScaleCommand struct {
	Args struct {
		ID       string `positional-arg-name:"id" description:"Recipe id"`
		Servings string `positional-arg-name:"servings" description:"Target number of servings"`
	} `positional-args:"yes" required:"2"`

	env *Env
}

func (c *ScaleCommand) Execute(args []string) error {
	r, err := openStore().Get(c.Args.ID)
	if err != nil {
		return err
	}

	calc := scaling.NewCalculator(r.Ingredients, r.Servings, newScaler())
	ingredients, err := calc.Scale(c.Args.Servings)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.env.Out, "%s: %d servings (original %d)\n", r.Title, calc.Input(), calc.OriginalServings())
	for _, line := range ingredients {
		fmt.Fprintf(c.env.Out, "  - %s\n", line)
	}
	return nil
}

type ExportCommand struct {
	Args struct {
		Path string `positional-arg-name:"path" description:"Output file (.xlsx or .csv)"`
	} `positional-args:"yes" required:"yes"`

	env *Env
}

func (c *ExportCommand) Execute(args []string) error {
	recipes, err := openStore().Load()
	if err != nil {
		return err
	}

	if err := export.ToFile(c.Args.Path, recipes); err != nil {
		return err
	}

	fmt.Fprintf(c.env.Out, "Exported %d recipes to %s\n", len(recipes), c.Args.Path)
	return nil
}

var errHistoryDisabled = errors.New("ingest history is disabled; set --history-db or HISTORY_DB")

type HistoryCommand struct {
	Limit int    `long:"limit" short:"n" default:"20" description:"Number of attempts to show"`
	URL   string `long:"url" description:"Only attempts for this URL"`

	env *Env
}

func (c *HistoryCommand) Execute(args []string) error {
	history, closeHistory, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory()

	if history == nil {
		return errHistoryDisabled
	}
	if c.Limit < 1 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}

	var attempts []database.Attempt
	if c.URL != "" {
		attempts, err = history.GetAttemptsByURL(c.URL)
	} else {
		attempts, err = history.GetRecentAttempts(c.Limit)
	}
	if err != nil {
		return err
	}

	if len(attempts) == 0 {
		fmt.Fprintln(c.env.Out, "No ingest attempts recorded.")
		return nil
	}

	w := tabwriter.NewWriter(c.env.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSTATUS\tSTRATEGY\tSOURCE\tURL\tDETAIL")
	for _, a := range attempts {
		detail := a.RecipeID
		if a.Error != "" {
			detail = a.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(a.CreatedAt), a.Status, orDash(a.Strategy), a.Source, a.URL, detail)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats, err := history.GetAttemptStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.env.Out, "Totals: %d success, %d failed, %d skipped\n",
		stats[database.StatusSuccess], stats[database.StatusFailed], stats[database.StatusSkipped])
	return nil
}

func printRecipe(env *Env, r recipe.Recipe) {
	out := env.Out

	fmt.Fprintf(out, "%s\n", r.Title)
	fmt.Fprintf(out, "%s\n\n", strings.Repeat("=", len([]rune(r.Title))))

	if r.Description != "" {
		fmt.Fprintf(out, "%s\n\n", r.Description)
	}

	fmt.Fprintf(out, "ID:        %s\n", r.ID)
	fmt.Fprintf(out, "Prep time: %s\n", orDash(r.PrepTime))
	fmt.Fprintf(out, "Cook time: %s\n", orDash(r.CookTime))
	fmt.Fprintf(out, "Servings:  %s\n", orDash(r.Servings))
	if len(r.Tags) > 0 {
		fmt.Fprintf(out, "Tags:      %s\n", strings.Join(r.Tags, ", "))
	}
	if r.SourceURL != "" {
		fmt.Fprintf(out, "Source:    %s\n", r.SourceURL)
	}
	fmt.Fprintf(out, "Added:     %s\n", orDash(r.DateAdded))

	fmt.Fprintln(out, "\nIngredients:")
	for _, line := range r.Ingredients {
		fmt.Fprintf(out, "  - %s\n", line)
	}

	fmt.Fprintln(out, "\nInstructions:")
	for i, step := range r.Instructions {
		fmt.Fprintf(out, "  %d. %s\n", i+1, step)
	}

	if r.Notes != "" {
		fmt.Fprintf(out, "\nNotes:\n%s\n", r.Notes)
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
