package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"subburn/internal/config"
	"subburn/internal/logging"
	"subburn/internal/pipeline"
	"subburn/internal/transcache"
)

// newPipeline builds a pipeline from the loaded config, attaching the
// transcript cache when enabled. The returned cleanup closes the cache.
func newPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, func(), error) {
	p := pipeline.New(cfg, logger)
	cleanup := func() {}

	if cfg.Recognizer.CacheEnabled {
		store, err := transcache.Open(cfg.Recognizer.CachePath)
		if err != nil {
			logger.Warn("transcript cache disabled", logging.Error(err))
		} else {
			p.WithCache(store)
			cleanup = func() { _ = store.Close() }
		}
	}
	return p, cleanup, nil
}

// signalContext cancels on SIGINT or SIGTERM so interrupted runs leave
// no partial output behind.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printProgress(quiet bool) pipeline.ProgressFunc {
	if quiet {
		return nil
	}
	lastStage := ""
	return func(stage string, percent int) {
		if stage != lastStage {
			if lastStage != "" {
				fmt.Fprintln(os.Stderr)
			}
			lastStage = stage
		}
		fmt.Fprintf(os.Stderr, "\r%-10s %3d%%", stage, percent)
		if stage == "complete" {
			fmt.Fprintln(os.Stderr)
		}
	}
}
