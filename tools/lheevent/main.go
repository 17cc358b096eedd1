package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	lheeventcmder "github.com/sbinet-staging/lhetools/cmd/lheevent"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := lheeventcmder.NewLHEEventCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
