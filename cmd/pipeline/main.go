package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"StockPulse/internal/di"
	"StockPulse/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	timeout := flag.Duration("timeout", 30*time.Minute, "maximum pipeline runtime")
	flag.Parse()

	// Optional .env for local development
	_ = godotenv.Load()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s source=%s symbols=%v", cfg.Environment, cfg.Pipeline.Source, cfg.Pipeline.Symbols)

	// Wire DI: Initialize the training pipeline
	pipeline, err := di.InitializePipeline(cfg)
	if err != nil {
		log.Fatalf("pipeline initialization failed: %v", err)
	}

	defer func() {
		if err := pipeline.Close(); err != nil {
			log.Printf("pipeline close: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := pipeline.Run(ctx)
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	log.Printf("pipeline done: matched=%d train_acc=%.3f test_acc=%.3f in %s",
		result.MatchedRows, result.TrainAccuracy, result.TestAccuracy, result.Duration)
}
