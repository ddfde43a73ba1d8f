package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/thornsfall/lore-engine/internal/config"
	"github.com/thornsfall/lore-engine/internal/logger"
	"github.com/thornsfall/lore-engine/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)
	log = logger.WithSession(log, uuid.New().String())

	var store storage.Storage
	var err error
	if cfg.RedisURL != "" {
		store, err = storage.NewRedisStorage(cfg.RedisURL, cfg.NumSlots, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to configure Redis saves: %v\n", err)
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := store.Ping(ctx); err != nil {
			cancel()
			fmt.Fprintf(os.Stderr, "Could not reach Redis at %s: %v\n", cfg.RedisURL, err)
			os.Exit(1)
		}
		cancel()
		log.Info("Using Redis save storage")
	} else {
		store, err = storage.NewFileStorage(cfg.SaveDir, cfg.NumSlots, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to prepare save directory: %v\n", err)
			os.Exit(1)
		}
		log.Info("Using file save storage", "dir", cfg.SaveDir)
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	p := tea.NewProgram(newGameUI(cfg, store, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
