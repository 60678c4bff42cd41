// StageNote - Performance Discovery and Recommendation
// Copyright 2026 StageNote Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagenote/recommender

// Package main is the entry point for the StageNote recommendation
// server.
//
// The server loads a performance catalog (plus optional rating events
// and user profiles) from JSON exports, builds the hybrid
// recommendation engine, and serves it over HTTP.
//
// Startup order:
//
//  1. Configuration: koanf layering of defaults, config.yaml, and
//     STAGENOTE_* environment variables
//  2. Logging: zerolog, JSON by default
//  3. Catalog: load and validate the data files
//  4. Engine: strategy weights and default result count from config
//  5. HTTP server: chi router with health, metrics, and API routes
//
// The server shuts down gracefully on SIGINT and SIGTERM, draining
// in-flight requests up to server.shutdown_timeout.
//
// Example:
//
//	export STAGENOTE_CATALOG_PATH=/data/performances.json
//	export STAGENOTE_CATALOG_RATINGS_PATH=/data/ratings.json
//	export STAGENOTE_LOGGING_LEVEL=debug
//	./stagenote-server
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/stagenote/recommender/internal/api"
	"github.com/stagenote/recommender/internal/catalog"
	"github.com/stagenote/recommender/internal/config"
	"github.com/stagenote/recommender/internal/logging"
	"github.com/stagenote/recommender/internal/recommend"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	store := catalog.NewStore(logger)
	if err := store.Load(cfg.Catalog.Path, cfg.Catalog.RatingsPath, cfg.Catalog.ProfilesPath); err != nil {
		return err
	}

	engine, err := recommend.NewEngine(cfg.Engine.Recommend(), logger)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.NewHandler(store, engine), cfg.Server)
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Int("performances", store.Len()).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info().Msg("shutdown complete")
	return nil
}
