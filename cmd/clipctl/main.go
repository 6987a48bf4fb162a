// Command clipctl administers the clip Q&A store: schema migration, bulk
// video upload from CSV, and account management.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tbourn/clip-qa-backend/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
