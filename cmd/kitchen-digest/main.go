package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/canteen/internal/app/kitchen"
	"github.com/magabrotheeeer/canteen/internal/config"
	"github.com/magabrotheeeer/canteen/internal/lib/sl"
)

func main() {
	once := flag.Bool("once", false, "publish the digest for tomorrow once and exit")
	consume := flag.Bool("consume", false, "read digests from the kitchen queue and log them")
	flag.Parse()

	cfg := config.MustLoad()
	logger := sl.New(cfg.Env)
	logger.Info("starting kitchen digest", slog.String("env", cfg.Env), slog.Bool("once", *once), slog.Bool("consume", *consume))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := kitchen.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	switch {
	case *once:
		err = app.RunOnce(ctx)
	case *consume:
		err = app.Consume(ctx)
	default:
		err = app.Run(ctx)
	}
	if err != nil {
		logger.Error("kitchen digest stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("kitchen digest stopped gracefully")
}
