package main

import (
	"fmt"
	"log"

	"docpilot/internal/config"
	"docpilot/internal/server"
	"docpilot/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	return server.Run(cfg)
}
