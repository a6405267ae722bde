package core_test

import (
	"testing"

	"github.com/ec-win-24/nexuspoint/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLocationID(t *testing.T) {
	t.Run("ok: parse a well-formed id", func(t *testing.T) {
		value := uuid.New()
		id, err := core.ParseLocationID(value.String())
		assert.Nil(t, err)
		assert.Equal(t, value.String(), id.String())
	})

	t.Run("err: malformed ids", func(t *testing.T) {
		for _, value := range []string{
			"",
			"not-a-uuid",
			"123",
			"00000000-0000-0000-0000-00000000000", // one digit short
		} {
			_, err := core.ParseLocationID(value)
			assert.NotNil(t, err, "%q should not parse as a location id", value)
		}
	})

	t.Run("err: the nil uuid is rejected", func(t *testing.T) {
		_, err := core.ParseLocationID(uuid.Nil.String())
		assert.NotNil(t, err, "The nil uuid should never be a valid location id")
	})

	t.Run("ok: generated ids are never nil", func(t *testing.T) {
		id := core.NewLocationID()
		assert.False(t, id.IsNil())
	})

	t.Run("ok: ids round-trip through text", func(t *testing.T) {
		id := core.NewLocationID()
		text, err := id.MarshalText()
		assert.Nil(t, err)

		var parsed core.LocationID
		assert.Nil(t, parsed.UnmarshalText(text))
		assert.Equal(t, id, parsed)
	})
}
