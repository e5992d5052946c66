package main

import (
	"stockcompare/config"
	"stockcompare/internal/pipeline"
	"stockcompare/logger"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// fetch, persist, compare
	if err := pipeline.Run(cfg, log); err != nil {
		log.Fatal("pipeline failed", zap.Error(err))
	}
}
