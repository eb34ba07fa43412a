package main

import (
	"log"

	"github.com/damacus/iron-navigator/internal/config"
	"github.com/damacus/iron-navigator/internal/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	app, err := newApp(cfg, logg)
	if err != nil {
		logg.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer app.Close()

	Execute(app)
}
