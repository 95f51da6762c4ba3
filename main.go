package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/openwallet/market-sync/config"
	"github.com/openwallet/market-sync/core"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		cancel()
	}()

	app, err := core.Setup(ctx, cfg, nil)
	if err != nil {
		log.Fatal("Error assembling services:", err)
	}

	if err := app.Registry.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services:", err)
	}
	defer app.Registry.StopAll()

	// Standalone runs keep every configured alias group fresh
	for _, group := range cfg.Alias.Groups {
		app.Tracked.Track(group.Canonical)
		app.Tracked.Track(group.Members...)
	}

	<-ctx.Done()
}
