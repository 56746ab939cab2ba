// Command clobd runs the central limit order book matching engine behind
// an HTTP service adapter, grounded on cmd/tradsys/main.go's runServer
// bootstrap (logger, config, router, graceful shutdown) but trimmed to the
// one service this repository implements.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/abdoElHodaky/tradsys-clob/internal/api"
	"github.com/abdoElHodaky/tradsys-clob/internal/config"
	"github.com/abdoElHodaky/tradsys-clob/internal/matching/engine"
)

func main() {
	configFile := flag.String("config", "", "path to clobd YAML config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	metrics := engine.NewMetrics(registry)

	eng := engine.New(logger, metrics, nil)
	for _, seed := range cfg.Matching.Instruments {
		id := eng.AddInstrument(seed.Name, seed.Ticker)
		logger.Info("seeded instrument", zap.Uint32("instrument_id", id), zap.String("ticker", seed.Ticker))
	}

	server := api.New(cfg, eng, registry, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.Server.ShutdownTimeout); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}

	logger.Info("server exited cleanly")
}
