// Package main is the entrypoint of ytproxy.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ytproxy/internal/cfg"
	"ytproxy/internal/utils/logging"
)

// main is the main entrypoint of the program.
func main() {
	startTime := time.Now()

	// Cancelled on shutdown signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cfg.Execute(ctx, func(ctx context.Context, s *cfg.Settings) error {
		logging.I("ytproxy (PID: %d) started at: %v", os.Getpid(), startTime.Format("2006-01-02 15:04:05.00 MST"))
		return initializeServer(s).ListenAndServe(ctx, s.Addr)
	})
	if err != nil {
		logging.E("Error: %v", err)
		cancel()
		os.Exit(1)
	}

	logging.I("ytproxy stopped after %v", time.Since(startTime).Round(time.Second))
}
