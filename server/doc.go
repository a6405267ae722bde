/*
Package server provides the HTTP layer of the location service. Handlers are
plain functions that may return an error; returned errors are translated into
structured problem responses by the server's error handler, so handlers never
write stack traces to clients.

Basic example:

	import (
		"context"
		"log/slog"

		"github.com/ec-win-24/nexuspoint/config"
		"github.com/ec-win-24/nexuspoint/server"
	)

	func main() {
		cfg, _ := config.Load(configFS)

		s := server.New(cfg)
		s.AttachDefaultMiddleware()
		s.RegisterLocationRoutes(locationService)
		s.RegisterHealthRoutes()

		if err := s.Start(context.Background(), nil); err != nil {
			slog.Error("Server stopped with an error", "error", err)
		}
	}
*/
package server
