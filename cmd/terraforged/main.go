// Command terraforged serves map generation over HTTP, archiving every
// generated map.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/terraforge/internal/api"
	"github.com/talgya/terraforge/internal/persistence"
)

func main() {
	var (
		port   = flag.Int("port", 8080, "HTTP listen port")
		dbPath = flag.String("db", "data/terraforge.db", "sqlite archive path")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if dir := filepath.Dir(*dbPath); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open archive", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("archive opened", "path", *dbPath)

	server := &api.Server{
		DB:   db,
		Port: *port,
	}
	server.Start()

	fmt.Printf("terraforged listening on http://localhost:%d/api/v1/status\n", *port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)
}
