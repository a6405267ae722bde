package server

import (
	"context"
	"net/http"

	"github.com/ec-win-24/nexuspoint/config"
	"github.com/ec-win-24/nexuspoint/core"
	"github.com/ec-win-24/nexuspoint/locations"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// LocationGetter is the slice of the location service the HTTP layer needs.
type LocationGetter interface {
	GetByID(ctx context.Context, id core.LocationID) core.Result[locations.LocationDisplay]
}

// RegisterLocationRoutes mounts the location endpoints:
//
//	GET /api/location/{guid}
func (server *Server) RegisterLocationRoutes(service LocationGetter) {
	server.Route("/api/location", func(r chi.Router) {
		r.Get("/{guid}", server.handle(getLocation(server.cfg, service)))
	})
}

// RegisterHealthRoutes mounts the liveness endpoint.
func (server *Server) RegisterHealthRoutes() {
	server.Get("/ping", func(w http.ResponseWriter, r *http.Request) error {
		render.PlainText(w, r, "pong")
		return nil
	})
}

func getLocation(cfg *config.Config, service LocationGetter) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		id, err := core.ParseLocationID(chi.URLParam(r, "guid"))
		if err != nil {
			// Malformed and nil guids never reach the service.
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, Problem{
				Status: http.StatusBadRequest,
				Title:  "Invalid Guid provided.",
			})
			return nil
		}

		result := service.GetByID(r.Context(), id)
		if result.IsFailure() {
			RenderFailure(cfg, w, r, result.Err(), result.StatusCode())
			return nil
		}
		render.Status(r, result.StatusCode())
		render.JSON(w, r, result.Value())
		return nil
	}
}
