package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/recipe-box/app/cfg"
	"github.com/lysyi3m/recipe-box/app/database"
	"github.com/lysyi3m/recipe-box/app/feed"
	"github.com/lysyi3m/recipe-box/app/scraper"
	"github.com/lysyi3m/recipe-box/app/store"
)

// ingester runs the scraper chain for one URL, stores the result and logs the attempt.
type ingester struct {
	chain   *scraper.Chain
	store   *store.Store
	policy  store.ConflictPolicy
	confirm store.Confirmer
	history database.AttemptRepository
	source  string
}

func newIngester(env *Env, history database.AttemptRepository, source string) (*ingester, error) {
	policy, err := store.ParsePolicy(cfg.Get().ConflictPolicy)
	if err != nil {
		return nil, err
	}

	chain, err := newChain()
	if err != nil {
		return nil, err
	}

	return &ingester{
		chain:   chain,
		store:   openStore(),
		policy:  policy,
		confirm: env.confirmer(),
		history: history,
		source:  source,
	}, nil
}

func (in *ingester) ingest(ctx context.Context, url string) (*scraper.Result, store.Outcome, error) {
	result, err := in.chain.Run(ctx, url)
	if err != nil {
		in.record(database.Attempt{URL: url, Status: database.StatusFailed, Error: err.Error()})
		return nil, store.Skipped, err
	}

	outcome, err := in.store.Upsert(result.Recipe, in.policy, in.confirm)
	if err != nil {
		in.record(database.Attempt{
			URL:      url,
			RecipeID: result.Recipe.ID,
			Strategy: result.Strategy,
			Status:   database.StatusFailed,
			Error:    err.Error(),
		})
		return nil, store.Skipped, fmt.Errorf("failed to store recipe: %w", err)
	}

	status := database.StatusSuccess
	if outcome == store.Skipped {
		status = database.StatusSkipped
	}
	in.record(database.Attempt{
		URL:      url,
		RecipeID: result.Recipe.ID,
		Strategy: result.Strategy,
		Status:   status,
	})

	return result, outcome, nil
}

// record never fails the ingest; the history is a log, not the store.
func (in *ingester) record(attempt database.Attempt) {
	if in.history == nil {
		return
	}

	attempt.Source = in.source
	if _, err := in.history.RecordAttempt(attempt); err != nil {
		slog.Warn("Failed to record ingest attempt", "url", attempt.URL, "error", err)
	}
}

type IngestCommand struct {
	Args struct {
		URL string `positional-arg-name:"url" description:"Recipe page URL"`
	} `positional-args:"yes" required:"yes"`

	env *Env
}

func (c *IngestCommand) Execute(args []string) error {
	history, closeHistory, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory()

	in, err := newIngester(c.env, history, "cli")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(c.env.Out, "Scraping recipe from: %s\n", c.Args.URL)

	result, outcome, err := in.ingest(ctx, c.Args.URL)
	if err != nil {
		return err
	}

	if outcome == store.Skipped {
		fmt.Fprintf(c.env.Out, "Recipe %q not added.\n", result.Recipe.Title)
		return nil
	}

	fmt.Fprintf(c.env.Out, "Recipe %q %s (id: %s, via %s)\n", result.Recipe.Title, outcome, result.Recipe.ID, result.Strategy)
	return nil
}

type IngestFeedCommand struct {
	Limit    int      `long:"limit" default:"0" description:"Ingest at most this many new links (0 means all)"`
	Includes []string `long:"include" description:"Only ingest items whose title contains this keyword (repeatable)"`
	Excludes []string `long:"exclude" description:"Skip items whose title contains this keyword (repeatable)"`

	Args struct {
		URL string `positional-arg-name:"feed-url" description:"RSS or Atom feed URL"`
	} `positional-args:"yes" required:"yes"`

	env *Env
}

// FeedSummary counts what happened to each feed item.
type FeedSummary struct {
	Added    int
	Replaced int
	Declined int
	Known    int
	Filtered int
	Failed   int
}

func (c *IngestFeedCommand) Execute(args []string) error {
	if c.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", c.Limit)
	}

	conf := cfg.Get()

	history, closeHistory, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory()

	in, err := newIngester(c.env, history, "feed")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	data, err := feed.NewClient(conf.FetchTimeout, conf.UserAgent).Fetch(ctx, c.Args.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch feed %s: %w", c.Args.URL, err)
	}

	metadata, items, err := feed.NewParser().Run(data)
	if err != nil {
		return fmt.Errorf("failed to read feed %s: %w", c.Args.URL, err)
	}

	var filters []feed.Filter
	if len(c.Includes) > 0 || len(c.Excludes) > 0 {
		filters = append(filters, feed.Filter{Field: "title", Includes: c.Includes, Excludes: c.Excludes})
	}
	items = feed.NewFilterer().Run(items, filters)

	known, err := in.store.SourceURLs()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.env.Out, "Feed: %s (%d items)\n", metadata.Title, len(items))

	summary := c.run(ctx, in, items, known)

	fmt.Fprintf(c.env.Out, "Added %d, replaced %d, declined %d, already stored %d, filtered %d, failed %d\n",
		summary.Added, summary.Replaced, summary.Declined, summary.Known, summary.Filtered, summary.Failed)

	return nil
}

func (c *IngestFeedCommand) run(ctx context.Context, in *ingester, items []feed.Item, known map[string]struct{}) FeedSummary {
	var summary FeedSummary
	processed := 0

	for _, item := range items {
		if item.IsFiltered {
			slog.Debug("Feed item filtered", "link", item.Link, "reason", item.FilterReason)
			summary.Filtered++
			continue
		}
		if _, ok := known[item.Link]; ok {
			summary.Known++
			continue
		}
		if c.Limit > 0 && processed >= c.Limit {
			break
		}
		if ctx.Err() != nil {
			break
		}
		processed++

		result, outcome, err := in.ingest(ctx, item.Link)
		if err != nil {
			slog.Warn("Failed to ingest feed item", "link", item.Link, "error", err)
			fmt.Fprintf(c.env.Out, "  failed:   %s\n", item.Link)
			summary.Failed++
			continue
		}
		known[item.Link] = struct{}{}

		switch outcome {
		case store.Added:
			summary.Added++
		case store.Replaced:
			summary.Replaced++
		case store.Skipped:
			summary.Declined++
		}
		fmt.Fprintf(c.env.Out, "  %-9s %s (%s)\n", outcome.String()+":", result.Recipe.Title, result.Recipe.ID)
	}

	return summary
}
