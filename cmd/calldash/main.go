package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dennisdiepolder/monti/calldash/internal/cli"
)

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(Version).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
