package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/config"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/logging"
	"github.com/mamynavalonar-dev/prirtem-fuel-project-sub000/internal/server"
)

var (
	port    = flag.Int("port", 0, "server port (overrides config.toml)")
	devMode = flag.Bool("dev", false, "development mode")
	dataDir = flag.String("dataDir", "", "data directory (overrides config.toml)")
)

func main() {
	flag.Parse()

	// .env is optional; env vars feed the config overrides.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.Default()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}
	slog.Info("starting fuel import service", "data_dir", dir, "port", cfg.Server.Port)

	srv := server.NewServer(cfg)

	go func() {
		if err := srv.Run(cfg.Server.Port); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	fmt.Printf("listening on http://localhost:%d\n", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	if err := srv.Close(); err != nil {
		log.Printf("failed to close store: %v", err)
	}
}
