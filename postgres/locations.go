package postgres

import (
	"fmt"

	"github.com/ec-win-24/nexuspoint/core"
	"github.com/google/uuid"
)

// LocationEntity is the persistence shape of core.Location. It is owned by
// the storage layer and never exposed past the repository boundary. Column
// lengths are enforced by the schema: street_name and state up to 250
// characters, city up to 100.
type LocationEntity struct {
	ID         uuid.UUID `db:"id"`
	StreetName string    `db:"street_name"`
	City       string    `db:"city"`
	State      string    `db:"state"`
}

var locationTable = Table[LocationEntity]{
	Name:      "locations",
	KeyColumn: "id",
	Columns:   []string{"id", "street_name", "city", "state"},
	Values: func(entity *LocationEntity) map[string]any {
		return map[string]any{
			"id":          entity.ID,
			"street_name": entity.StreetName,
			"city":        entity.City,
			"state":       entity.State,
		}
	},
}

// locationMapper is the hand-written conversion strategy for locations.
// The mapping is field-for-field, but spelling it out keeps a field rename
// a compile error instead of a silent drop.
type locationMapper struct{}

var locationColumns = map[string]string{
	"ID":         "id",
	"StreetName": "street_name",
	"City":       "city",
	"State":      "state",
}

func (locationMapper) ToEntity(domain *core.Location) (*LocationEntity, error) {
	if domain == nil {
		return nil, core.ErrNilValue
	}
	return &LocationEntity{
		ID:         uuid.UUID(domain.ID),
		StreetName: domain.StreetName,
		City:       domain.City,
		State:      domain.State,
	}, nil
}

func (locationMapper) ToDomain(entity *LocationEntity) (*core.Location, error) {
	if entity == nil {
		return nil, core.ErrNilValue
	}
	return &core.Location{
		ID:         core.LocationID(entity.ID),
		StreetName: entity.StreetName,
		City:       entity.City,
		State:      entity.State,
	}, nil
}

func (locationMapper) Column(domainField string) (string, error) {
	column, ok := locationColumns[domainField]
	if !ok {
		return "", fmt.Errorf("field %s: %w", domainField, core.ErrFieldMapping)
	}
	return column, nil
}

func (locationMapper) Relation(domainRelation string) (string, error) {
	return "", fmt.Errorf("relation %s: %w", domainRelation, core.ErrFieldMapping)
}

// NewLocationRepository builds the location repository on top of the generic
// store, wired with the hand-written mapper.
func NewLocationRepository(db Querier, uow *UnitOfWork) *Repository[core.Location, LocationEntity] {
	return NewRepository[core.Location](db, locationTable, locationMapper{}, uow)
}

// Force the specialization to satisfy the domain-side interface
var _ core.Repository[core.Location] = &Repository[core.Location, LocationEntity]{}
