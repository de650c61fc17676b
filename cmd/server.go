//go:build !integration

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitbucket.org/crgw/hunit-hub/internal/config"
	"bitbucket.org/crgw/hunit-hub/internal/hub/factory"
	"bitbucket.org/crgw/hunit-hub/internal/hunit"
	"bitbucket.org/crgw/hunit-hub/internal/tools/logger"
	"bitbucket.org/crgw/hunit-hub/internal/tools/redisfactory"
	"bitbucket.org/crgw/hunit-hub/internal/web"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func serverApp(httpServer *http.Server, log *zerolog.Logger) int {
	shutdown := false
	done := make(chan error, 1)
	stop := make(chan os.Signal, 1)
	go func() {
		log.
			Info().
			Msg("Listening on address " + httpServer.Addr)
		done <- httpServer.ListenAndServe()
	}()
	go func() {
		<-stop
		shutdown = true
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
	}()

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	err := <-done
	if err != nil && !shutdown {
		log.
			Error().
			Err(err).
			Msg("Server failed")
		return 1
	}
	return 0
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	redisFactory := redisfactory.New(cfg.CatalogRedisURI)

	hunitFactory := factory.NewFactory(
		cfg.HUnit.UserName,
		cfg.HUnit.Password,
		hunit.WithBaseURL(cfg.HUnit.BaseURL),
		hunit.WithTimeout(cfg.HUnit.Timeout),
		hunit.WithLogger(log),
	)

	appRouter := web.SetupRouter(log, cfg, hunitFactory, redisFactory)

	var host string
	if cfg.Test {
		host = "localhost"
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", host, cfg.Port),
		Handler: appRouter,
	}

	code := serverApp(httpServer, log)
	redisFactory.Close()
	os.Exit(code)
}
