package commands_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewUpdateOrderStatusCommand(id, order.Preparing)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(id))
	assert.Equal(t, order.Preparing, cmd.Status())

	_, err = commands.NewUpdateOrderStatusCommand(id, order.Unknown)
	require.Error(t, err)

	_, err = commands.NewUpdateOrderStatusCommand(kernel.UUID{}, order.Ready)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var zero commands.UpdateOrderStatusCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrUpdateOrderStatusCommandIsNotConstructed)
}
