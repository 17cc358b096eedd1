package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	lhekincmder "github.com/sbinet-staging/lhetools/cmd/lhekin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := lhekincmder.NewLHEKinCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
