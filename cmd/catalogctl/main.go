package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalogctl/internal/cli"
	"catalogctl/internal/config"
	"catalogctl/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, &cli.App{Config: cfg, Logger: log}, os.Args[1:])
}
