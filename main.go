package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/lexicon/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// The server installs its own signal handling; this context covers
	// one-shot commands such as refill.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCommand(Version + " (" + Commit + ")")
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
