package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hoteldesk/internal/adapters/observability"
	"hoteldesk/internal/shared"
)

func main() {
	os.Exit(run())
}

// run returns the exit status so deferred cleanup finishes before os.Exit.
func run() int {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise); stderr only
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	if srv := observability.Serve(cfg.MetricsAddr, reg); srv != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// restore default handling after the first signal so a second one kills
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := newRootCmd(cfg, os.Stdin).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
