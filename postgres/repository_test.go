package postgres_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/ec-win-24/nexuspoint/core"
	"github.com/ec-win-24/nexuspoint/postgres"
	"github.com/ec-win-24/nexuspoint/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationRepository(t *testing.T) {
	db := tests.DB(t)
	uow := postgres.NewUnitOfWork(db)
	repo := postgres.NewLocationRepository(db, uow)
	ctx := context.Background()
	defer tests.DeleteAllLocations(repo, uow)

	t.Run("ok: create a location", func(t *testing.T) {
		location := tests.FakeLocation()
		result := repo.Create(ctx, &location)
		require.True(t, result.IsSuccess(), "Create should succeed: %v", result.Err())
		assert.Equal(t, http.StatusCreated, result.StatusCode())
		require.NotNil(t, result.Value())
		assert.Equal(t, location, *result.Value(), "The created record should round-trip unchanged")
	})

	t.Run("err: create nil fails with NullValue", func(t *testing.T) {
		result := repo.Create(ctx, nil)
		assert.True(t, result.IsFailure())
		assert.Equal(t, core.CodeNullValue, result.Err().Code)
		assert.Equal(t, http.StatusBadRequest, result.StatusCode())
	})

	t.Run("ok: get by id", func(t *testing.T) {
		location := tests.FakeLocation()
		created := repo.Create(ctx, &location)
		require.True(t, created.IsSuccess())

		result := repo.Get(ctx, core.Equal("ID", location.ID))
		require.True(t, result.IsSuccess(), "Get should succeed: %v", result.Err())
		assert.Equal(t, http.StatusOK, result.StatusCode())
		require.NotNil(t, result.Value())
		assert.Equal(t, location, *result.Value())
	})

	t.Run("ok: get on a missing id is a success with 404", func(t *testing.T) {
		unassigned, err := core.ParseLocationID("00000000-0000-0000-0000-000000000001")
		require.Nil(t, err)

		result := repo.Get(ctx, core.Equal("ID", unassigned))
		assert.True(t, result.IsSuccess(), "Not-found is an expected outcome, not an error")
		assert.Nil(t, result.Value())
		assert.Equal(t, core.NonError, result.Err())
		assert.Equal(t, http.StatusNotFound, result.StatusCode())
	})

	t.Run("err: an unknown predicate field is a 400 failure", func(t *testing.T) {
		result := repo.Get(ctx, core.Equal("ZipCode", "22100"))
		assert.True(t, result.IsFailure())
		assert.Equal(t, http.StatusBadRequest, result.StatusCode())
		assert.Equal(t, core.CodeOperationInvalid, result.Err().Code)
	})

	t.Run("err: an unknown include is a 400 failure", func(t *testing.T) {
		result := repo.Get(
			ctx,
			core.Equal("City", "Lund"),
			core.WithInclude("Owners"),
		)
		assert.True(t, result.IsFailure())
		assert.Equal(t, http.StatusBadRequest, result.StatusCode())
	})

	t.Run("ok: get all wraps results uniformly", func(t *testing.T) {
		first := tests.FakeLocation()
		second := tests.FakeLocation()
		require.True(t, repo.Create(ctx, &first).IsSuccess())
		require.True(t, repo.Create(ctx, &second).IsSuccess())

		result := repo.GetAll(ctx, core.All())
		require.True(t, result.IsSuccess(), "GetAll should succeed: %v", result.Err())
		assert.Equal(t, http.StatusOK, result.StatusCode())
		assert.GreaterOrEqual(t, len(result.Value()), 2)
		assert.Contains(t, result.Value(), first)
		assert.Contains(t, result.Value(), second)
	})

	t.Run("ok: a tracked read registers with the unit of work", func(t *testing.T) {
		location := tests.FakeLocation()
		require.True(t, repo.Create(ctx, &location).IsSuccess())

		before := uow.TrackedCount()
		result := repo.Get(ctx, core.Equal("ID", location.ID), core.WithTracking())
		require.True(t, result.IsSuccess())
		assert.Equal(t, before+1, uow.TrackedCount())
	})

	t.Run("ok: update is staged until SaveChanges", func(t *testing.T) {
		location := tests.FakeLocation()
		require.True(t, repo.Create(ctx, &location).IsSuccess())

		newCity := location.City + " (updated)"
		location.City = newCity
		updated, err := repo.Update(ctx, &location)
		require.Nil(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, newCity, updated.City, "Update should return the round-tripped record")

		stored := repo.Get(ctx, core.Equal("ID", location.ID))
		require.NotNil(t, stored.Value())
		assert.NotEqual(
			t,
			newCity,
			stored.Value().City,
			"The update should not be visible before SaveChanges",
		)

		tests.Check(uow.SaveChanges(ctx))

		stored = repo.Get(ctx, core.Equal("ID", location.ID))
		require.NotNil(t, stored.Value())
		assert.Equal(t, newCity, stored.Value().City)
	})

	t.Run("ok: delete removes the record after SaveChanges", func(t *testing.T) {
		location := tests.FakeLocation()
		require.True(t, repo.Create(ctx, &location).IsSuccess())

		_, err := repo.Delete(ctx, &location)
		require.Nil(t, err)
		tests.Check(uow.SaveChanges(ctx))

		result := repo.Get(ctx, core.Equal("ID", location.ID))
		assert.True(t, result.IsSuccess())
		assert.Nil(t, result.Value())
		assert.Equal(t, http.StatusNotFound, result.StatusCode())
	})

	t.Run("err: staging nil is a hard error", func(t *testing.T) {
		_, err := repo.Update(ctx, nil)
		assert.ErrorIs(t, err, core.ErrNilValue)
		_, err = repo.Delete(ctx, nil)
		assert.ErrorIs(t, err, core.ErrNilValue)
		_, err = repo.Attach(ctx, nil)
		assert.ErrorIs(t, err, core.ErrNilValue)
	})

	t.Run("ok: attach tracks without staging a change", func(t *testing.T) {
		location := tests.FakeLocation()
		require.True(t, repo.Create(ctx, &location).IsSuccess())

		pending := uow.PendingCount()
		attached, err := repo.Attach(ctx, &location)
		require.Nil(t, err)
		assert.Equal(t, location, *attached)
		assert.Equal(t, pending, uow.PendingCount(), "Attach should not stage any change")
	})

	t.Run("ok: exists and get-if-exists", func(t *testing.T) {
		location := tests.FakeLocation()
		require.True(t, repo.Create(ctx, &location).IsSuccess())

		exists, err := repo.AnyExists(ctx, core.Equal("City", location.City))
		require.Nil(t, err)
		assert.True(t, exists)

		exists, err = repo.AnyExists(ctx, core.Equal("City", "Atlantis-"+location.City))
		require.Nil(t, err)
		assert.False(t, exists)

		found, err := repo.GetIfExists(ctx, core.Equal("ID", location.ID))
		require.Nil(t, err)
		require.NotNil(t, found)
		assert.Equal(t, location, *found)

		missing, err := repo.GetIfExists(ctx, core.Equal("City", "Atlantis-"+location.City))
		require.Nil(t, err)
		assert.Nil(t, missing)
	})
}
