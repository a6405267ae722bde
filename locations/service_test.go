package locations_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/ec-win-24/nexuspoint/core"
	"github.com/ec-win-24/nexuspoint/locations"
	"github.com/ec-win-24/nexuspoint/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepository satisfies core.Repository[core.Location] with a
// programmable Get; the service under test only reads.
type stubRepository struct {
	get func(ctx context.Context, spec core.Specification, opts ...core.QueryOption) core.Result[*core.Location]
}

func (s *stubRepository) Create(context.Context, *core.Location) core.Result[*core.Location] {
	panic("not used by the lookup service")
}

func (s *stubRepository) Get(
	ctx context.Context,
	spec core.Specification,
	opts ...core.QueryOption,
) core.Result[*core.Location] {
	return s.get(ctx, spec, opts...)
}

func (s *stubRepository) GetAll(context.Context, core.Specification, ...core.QueryOption) core.Result[[]core.Location] {
	panic("not used by the lookup service")
}

func (s *stubRepository) Update(context.Context, *core.Location) (*core.Location, error) {
	panic("not used by the lookup service")
}

func (s *stubRepository) Delete(context.Context, *core.Location) (*core.Location, error) {
	panic("not used by the lookup service")
}

func (s *stubRepository) Attach(context.Context, *core.Location) (*core.Location, error) {
	panic("not used by the lookup service")
}

func (s *stubRepository) AnyExists(context.Context, core.Specification) (bool, error) {
	panic("not used by the lookup service")
}

func (s *stubRepository) GetIfExists(context.Context, core.Specification) (*core.Location, error) {
	panic("not used by the lookup service")
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("ok: an existing record becomes a display object", func(t *testing.T) {
		location := tests.FakeLocation()
		service := locations.NewService(&stubRepository{
			get: func(_ context.Context, spec core.Specification, opts ...core.QueryOption) core.Result[*core.Location] {
				assert.Equal(t, core.Equal("ID", location.ID), spec, "The lookup should filter on the id")
				assert.Empty(t, opts, "The lookup should be an untracked read")
				return core.Success(&location)
			},
		})

		result := service.GetByID(ctx, location.ID)
		require.True(t, result.IsSuccess(), "GetByID should succeed: %v", result.Err())
		assert.Equal(t, http.StatusOK, result.StatusCode())
		assert.Equal(t, locations.LocationDisplay{
			ID:         location.ID,
			StreetName: location.StreetName,
			City:       location.City,
			State:      location.State,
		}, result.Value())
	})

	t.Run("ok: an unassigned id becomes a not-found failure", func(t *testing.T) {
		service := locations.NewService(&stubRepository{
			get: func(context.Context, core.Specification, ...core.QueryOption) core.Result[*core.Location] {
				return core.SuccessWithStatus[*core.Location](nil, http.StatusNotFound)
			},
		})

		id, err := core.ParseLocationID("00000000-0000-0000-0000-000000000001")
		require.Nil(t, err)

		result := service.GetByID(ctx, id)
		assert.True(t, result.IsFailure())
		assert.Equal(t, http.StatusNotFound, result.StatusCode())
		assert.Equal(t, core.CodeNotFound, result.Err().Code)
		assert.Contains(t, result.Err().Message, "Location")
	})

	t.Run("ok: repository failures propagate unchanged", func(t *testing.T) {
		failure := core.NewOperationInvalidError("field ZipCode: no matching entity field")
		service := locations.NewService(&stubRepository{
			get: func(context.Context, core.Specification, ...core.QueryOption) core.Result[*core.Location] {
				return core.Failure[*core.Location](failure, http.StatusBadRequest)
			},
		})

		result := service.GetByID(ctx, core.NewLocationID())
		assert.True(t, result.IsFailure())
		assert.Equal(t, failure, result.Err(), "The error should pass through unmodified")
		assert.Equal(t, http.StatusBadRequest, result.StatusCode())
	})

	t.Run("err: a store failure surfaces as a 500 failure", func(t *testing.T) {
		service := locations.NewService(&stubRepository{
			get: func(context.Context, core.Specification, ...core.QueryOption) core.Result[*core.Location] {
				return core.Failure[*core.Location](
					core.NewOperationFailedError("connection reset by peer"),
					http.StatusInternalServerError,
				)
			},
		})

		result := service.GetByID(ctx, core.NewLocationID())
		assert.True(t, result.IsFailure())
		assert.Equal(t, http.StatusInternalServerError, result.StatusCode())
		assert.Equal(t, core.CodeOperationFailed, result.Err().Code)
	})

	t.Run("err: a malformed repository result is an unexpected-state failure", func(t *testing.T) {
		service := locations.NewService(&stubRepository{
			get: func(context.Context, core.Specification, ...core.QueryOption) core.Result[*core.Location] {
				// No value, no error, non-404 status.
				return core.SuccessWithStatus[*core.Location](nil, http.StatusOK)
			},
		})

		result := service.GetByID(ctx, core.NewLocationID())
		assert.True(t, result.IsFailure())
		assert.Equal(t, http.StatusInternalServerError, result.StatusCode())
		assert.Equal(t, core.CodeUnexpectedState, result.Err().Code)
	})

	t.Run("err: a panicking store never escapes the service", func(t *testing.T) {
		service := locations.NewService(&stubRepository{
			get: func(context.Context, core.Specification, ...core.QueryOption) core.Result[*core.Location] {
				panic("simulated store crash")
			},
		})

		var result core.Result[locations.LocationDisplay]
		assert.NotPanics(t, func() {
			result = service.GetByID(ctx, core.NewLocationID())
		})
		assert.True(t, result.IsFailure())
		assert.Equal(t, http.StatusInternalServerError, result.StatusCode())
		assert.Equal(t, core.CodeOperationFailed, result.Err().Code)
	})
}
