package main

import (
	"context"
	"embed"
	"log/slog"
	"os"

	"github.com/ec-win-24/nexuspoint/bootstrap"
	"github.com/ec-win-24/nexuspoint/config"
)

//go:embed config.toml
var configFS embed.FS

func main() {
	ctx := context.Background()

	cfg, err := config.Load(configFS)
	if err != nil {
		slog.Error("Could not load the configuration", "error", err)
		os.Exit(1)
	}

	server, db, err := bootstrap.Server(ctx, cfg)
	if err != nil {
		slog.Error("Could not bootstrap the server", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := server.Start(ctx, nil); err != nil {
		slog.Error("Server stopped with an error", "error", err)
		os.Exit(1)
	}
}
