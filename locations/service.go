// Package locations orchestrates location lookups between the HTTP layer and
// the repository, translating repository results into display shapes.
package locations

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ec-win-24/nexuspoint/core"
)

// LocationDisplay is the externally facing shape of a location. It coincides
// with the domain shape today, but keeps the wire contract decoupled from it.
type LocationDisplay struct {
	ID         core.LocationID `json:"id"`
	StreetName string          `json:"streetName"`
	City       string          `json:"city"`
	State      string          `json:"state"`
}

func displayLocation(location core.Location) LocationDisplay {
	return LocationDisplay{
		ID:         location.ID,
		StreetName: location.StreetName,
		City:       location.City,
		State:      location.State,
	}
}

type Service struct {
	repo core.Repository[core.Location]
}

func NewService(repo core.Repository[core.Location]) *Service {
	return &Service{repo: repo}
}

// GetByID looks up a single location by its id with an untracked read.
// Repository failures propagate unchanged; a lookup that matched nothing
// becomes a not-found failure naming the entity. Nothing escapes as a panic:
// any unanticipated failure is returned as a generic 500 result.
func (s *Service) GetByID(
	ctx context.Context,
	id core.LocationID,
) (result core.Result[LocationDisplay]) {
	defer func() {
		if recovered := recover(); recovered != nil {
			slog.Error("Recovered from a panic while retrieving a location",
				"id", id, "panic", recovered)
			result = core.Failure[LocationDisplay](
				core.NewOperationFailedError("Could not retrieve the location."),
				http.StatusInternalServerError,
			)
		}
	}()

	fetched := s.repo.Get(ctx, core.Equal("ID", id))
	switch {
	case fetched.IsFailure():
		return core.Failure[LocationDisplay](fetched.Err(), fetched.StatusCode())
	case fetched.Value() != nil:
		return core.SuccessWithStatus(displayLocation(*fetched.Value()), fetched.StatusCode())
	case fetched.StatusCode() == http.StatusNotFound:
		return core.Failure[LocationDisplay](
			core.NewNotFoundError("Location"),
			http.StatusNotFound,
		)
	default:
		// A success without a value on any other status means the repository
		// produced a malformed result.
		return core.Failure[LocationDisplay](
			core.NewUnexpectedStateError("The location lookup produced a malformed result."),
			http.StatusInternalServerError,
		)
	}
}
