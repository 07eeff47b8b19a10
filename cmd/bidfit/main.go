package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Caseyio/federal-bid-prediction/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Main(ctx)
	stop()
	os.Exit(code)
}
