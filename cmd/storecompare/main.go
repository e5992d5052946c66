package main

import (
	"time"

	"stockcompare/config"
	"stockcompare/internal/pipeline"
	"stockcompare/logger"

	"go.uber.org/zap"
)

// storecompare rebuilds the comparison report from rows already persisted to
// Postgres, without touching the quote provider.
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	end := time.Now()
	start := end.AddDate(0, -cfg.AlphaVantage.WindowMonths, 0)

	if err := pipeline.RunFromStore(cfg, log, start, end); err != nil {
		log.Fatal("store comparison failed", zap.Error(err))
	}
}
