// Package main runs the piano page server: it serves files from the
// working directory on http://localhost:8080.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/f4ah6o/piano-server/internal/config"
	"github.com/f4ah6o/piano-server/internal/server"
	"github.com/f4ah6o/piano-server/internal/static"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file")
	port := flag.Int("port", 0, "Port to serve on (overrides config)")
	dir := flag.String("dir", "", "Directory to serve (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dir != "" {
		cfg.Root = *dir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
		log.Fatalf("Directory does not exist: %s", cfg.Root)
	}

	srv := server.New(cfg, static.NewHandler(cfg.Root, cfg.Index))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.Banner(os.Stdout, cfg.Port, cfg.Color)

	if err := server.Run(ctx, srv); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
