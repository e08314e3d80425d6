package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/studytrack/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code := cli.Execute(ctx)
	cancel()
	os.Exit(code)
}
