package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/recipe-box/app/api"
	"github.com/lysyi3m/recipe-box/app/cfg"
)

type ServeCommand struct {
	env *Env
}

func (c *ServeCommand) Execute(args []string) error {
	conf := cfg.Get()

	history, closeHistory, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory()

	handler := api.NewHandler(openStore(), newScaler(), history, conf.Version)
	router := api.NewServer(handler, conf.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + conf.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", conf.Port, "store", conf.StorePath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	fmt.Fprintf(c.env.Out, "Serving recipes on http://localhost:%s/api/recipes\n", conf.Port)

	ctx, cancel := signalContext()
	defer cancel()

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case serveErr = <-serverErrChan:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	return serveErr
}
