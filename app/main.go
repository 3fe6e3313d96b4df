package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/lysyi3m/recipe-box/app/cfg"
	"github.com/lysyi3m/recipe-box/app/cli"
)

func main() {
	// A .env file is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	var opts cfg.Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "recipe-box"
	parser.LongDescription = "Maintain a static recipe collection: ingest, edit, scale, export and serve recipes."

	env := &cli.Env{Out: os.Stdout, In: os.Stdin}
	if err := cli.Register(parser, env); err != nil {
		slog.Error("Failed to set up commands", "error", err)
		os.Exit(1)
	}

	parser.CommandHandler = func(command flags.Commander, args []string) error {
		conf, err := cfg.Load(&opts)
		if err != nil {
			return err
		}

		setupLogging(conf.Debug)
		slog.Debug("Configuration loaded", "version", conf.Version, "store", conf.StorePath, "sites_dir", conf.SitesDir)

		if command == nil {
			return nil
		}
		return command.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		// go-flags has already printed the error.
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
