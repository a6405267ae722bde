package postgres

import (
	"testing"

	"github.com/ec-win-24/nexuspoint/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSpecification(t *testing.T) {
	columnOf := locationMapper{}.Column

	t.Run("ok: nil matches everything", func(t *testing.T) {
		clause, args, err := compileSpecification(nil, columnOf)
		require.Nil(t, err)
		assert.Equal(t, "TRUE", clause)
		assert.Empty(t, args)
	})

	t.Run("ok: All matches everything", func(t *testing.T) {
		clause, args, err := compileSpecification(core.All(), columnOf)
		require.Nil(t, err)
		assert.Equal(t, "TRUE", clause)
		assert.Empty(t, args)
	})

	t.Run("ok: equality", func(t *testing.T) {
		clause, args, err := compileSpecification(core.Equal("City", "Lund"), columnOf)
		require.Nil(t, err)
		assert.Equal(t, "city = $1", clause)
		assert.Equal(t, []any{"Lund"}, args)
	})

	t.Run("ok: contains", func(t *testing.T) {
		clause, args, err := compileSpecification(core.Contains("StreetName", "Main"), columnOf)
		require.Nil(t, err)
		assert.Equal(t, "street_name LIKE '%' || $1 || '%'", clause)
		assert.Equal(t, []any{"Main"}, args)
	})

	t.Run("ok: conjunction numbers arguments in order", func(t *testing.T) {
		clause, args, err := compileSpecification(
			core.And(core.Equal("City", "Lund"), core.Equal("State", "Skåne")),
			columnOf,
		)
		require.Nil(t, err)
		assert.Equal(t, "(city = $1 AND state = $2)", clause)
		assert.Equal(t, []any{"Lund", "Skåne"}, args)
	})

	t.Run("ok: nested groups", func(t *testing.T) {
		clause, args, err := compileSpecification(
			core.Or(
				core.Equal("City", "Lund"),
				core.And(core.Equal("City", "Malmö"), core.Contains("StreetName", "gatan")),
			),
			columnOf,
		)
		require.Nil(t, err)
		assert.Equal(
			t,
			"(city = $1 OR (city = $2 AND street_name LIKE '%' || $3 || '%'))",
			clause,
		)
		assert.Len(t, args, 3)
	})

	t.Run("ok: empty groups", func(t *testing.T) {
		clause, _, err := compileSpecification(core.And(), columnOf)
		require.Nil(t, err)
		assert.Equal(t, "TRUE", clause)

		clause, _, err = compileSpecification(core.Or(), columnOf)
		require.Nil(t, err)
		assert.Equal(t, "FALSE", clause)
	})

	t.Run("err: unknown fields fail fast", func(t *testing.T) {
		_, _, err := compileSpecification(core.Equal("ZipCode", "22100"), columnOf)
		assert.ErrorIs(t, err, core.ErrFieldMapping)

		_, _, err = compileSpecification(
			core.And(core.Equal("City", "Lund"), core.Equal("ZipCode", "22100")),
			columnOf,
		)
		assert.ErrorIs(t, err, core.ErrFieldMapping, "A nested unknown field should abort the whole compilation")
	})
}
