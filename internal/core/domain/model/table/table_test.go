package table_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	now := time.Date(2025, 2, 1, 18, 0, 0, 0, time.UTC)

	t.Run("should create an available table", func(t *testing.T) {
		tb, err := table.NewTable(kernel.NewUUID(), " T-01 ", now)

		require.NoError(t, err)
		require.NoError(t, tb.Validate())
		assert.Equal(t, "T-01", tb.QRCode())
		assert.Equal(t, table.Available, tb.Status())
		assert.False(t, tb.IsOccupied())
	})

	t.Run("should require a qr code", func(t *testing.T) {
		tb, err := table.NewTable(kernel.NewUUID(), "  ", now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, tb)
	})

	t.Run("should reject unknown status on restore", func(t *testing.T) {
		tb, err := table.RestoreTable(kernel.NewUUID(), "T-02", table.Unknown, now, now)

		require.Error(t, err)
		assert.Nil(t, tb)
	})
}

func TestTable_OccupyRelease(t *testing.T) {
	created := time.Date(2025, 2, 1, 18, 0, 0, 0, time.UTC)
	tb, err := table.NewTable(kernel.NewUUID(), "T-03", created)
	require.NoError(t, err)

	t1 := created.Add(time.Minute)
	assert.True(t, tb.Occupy(t1))
	assert.True(t, tb.IsOccupied())
	assert.Equal(t, t1, tb.UpdatedAt())

	t2 := t1.Add(time.Minute)
	assert.False(t, tb.Occupy(t2), "occupying an occupied table is not a change")
	assert.Equal(t, t2, tb.UpdatedAt())

	t3 := t2.Add(time.Minute)
	assert.True(t, tb.Release(t3))
	assert.Equal(t, table.Available, tb.Status())
	assert.False(t, tb.Release(t3))
	assert.Equal(t, created, tb.CreatedAt())
}

func TestParseStatus(t *testing.T) {
	s, err := table.ParseStatus("occupied")
	require.NoError(t, err)
	assert.Equal(t, table.Occupied, s)

	_, err = table.ParseStatus("reserved")
	require.Error(t, err)
}

func TestTable_ZeroValueIsInvalid(t *testing.T) {
	var tb *table.Table
	require.ErrorIs(t, tb.Validate(), table.ErrTableIsNotConstructed)
	require.ErrorIs(t, (&table.Table{}).Validate(), table.ErrTableIsNotConstructed)
}
