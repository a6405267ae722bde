// Package tests holds shared helpers for the database-backed test suites.
package tests

import (
	"context"
	"log"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ec-win-24/nexuspoint/core"
	"github.com/ec-win-24/nexuspoint/postgres"
	"github.com/joho/godotenv"
)

var Faker = gofakeit.New(rand.Uint64())

// DB connects to the database named by DATABASE_URL and migrates it.
// Tests that need a database are skipped when the variable is not set.
func DB(t *testing.T) *postgres.DB {
	t.Helper()
	ctx := context.Background()
	if err := godotenv.Load("../.env"); err != nil {
		log.Printf("Could not load the .env file: %v", err)
	}
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("Set the DATABASE_URL env variable to a valid database to test database functionality")
	}
	db, err := postgres.NewDB(ctx, url)
	if err != nil {
		t.Fatalf("Cannot connect to the test database: %v", err)
	}

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Cannot migrate the test database: %v", err)
	}

	return db
}

// FakeLocation builds a location with a fresh id and fake address data.
func FakeLocation() core.Location {
	return core.Location{
		ID:         core.NewLocationID(),
		StreetName: Faker.Street(),
		City:       Faker.City(),
		State:      Faker.State(),
	}
}

// DeleteAllLocations removes every location record and commits immediately.
func DeleteAllLocations(
	repo core.Repository[core.Location],
	uow *postgres.UnitOfWork,
) {
	ctx := context.Background()
	all := repo.GetAll(ctx, core.All())
	if all.IsFailure() {
		log.Fatalf("Cannot list locations: %v", all.Err())
	}
	for _, location := range all.Value() {
		if _, err := repo.Delete(ctx, &location); err != nil {
			log.Fatal(err)
		}
	}
	Check(uow.SaveChanges(ctx))
}

func Check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
