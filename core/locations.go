package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

/**
 * DOMAIN
 */

type Location struct {
	ID         LocationID
	StreetName string
	City       string
	State      string
}

type (
	LocationID uuid.UUID
)

func (id LocationID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the id is the all-zero uuid. The nil uuid is never a
// valid location identity.
func (id LocationID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id LocationID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *LocationID) UnmarshalText(text []byte) error {
	val, err := ParseLocationID(string(text))
	if err != nil {
		return err
	}
	*id = val
	return nil
}

// NewLocationID generates a fresh random location id.
func NewLocationID() LocationID {
	return LocationID(uuid.New())
}

// ParseLocationID parses a string into a location id.
// Both malformed input and the nil uuid are rejected.
func ParseLocationID(id string) (LocationID, error) {
	UUID, err := uuid.Parse(id)
	if err != nil {
		return LocationID{}, fmt.Errorf("cannot parse location id: %w", err)
	}
	if UUID == uuid.Nil {
		return LocationID{}, errors.New("cannot parse location id: location ids cannot be the nil uuid")
	}
	return LocationID(UUID), nil
}
