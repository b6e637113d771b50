package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"painradar/internal/app"
	"painradar/internal/config"
	"painradar/internal/logging"
)

func main() {
	trends := flag.Bool("trends", false, "print keyword trend report and exit")
	recentDays := flag.Int("recent", 1, "recent window in days for the trend report")
	baselineDays := flag.Int("baseline", 7, "baseline window in days for the trend report")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if *trends {
		if err := application.TrendReport(ctx, *recentDays, *baselineDays); err != nil {
			logger.Error("trend report failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
