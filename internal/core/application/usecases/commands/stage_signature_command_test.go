package commands_test

import (
	"testing"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStageSignatureCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	raster := []byte("png-bytes")

	cmd, err := commands.NewStageSignatureCommand(orderID, raster)

	require.NoError(t, err)
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.Equal(t, raster, cmd.Raster())
	require.NoError(t, cmd.Validate())
}

func TestNewStageSignatureCommand_EmptyRaster(t *testing.T) {
	_, err := commands.NewStageSignatureCommand(kernel.NewUUID(), nil)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrSignatureDataIsRequired)
}

func TestNewStageSignatureCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewStageSignatureCommand(kernel.UUID{}, []byte("png-bytes"))

	require.Error(t, err)
}

func TestStageSignatureCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.StageSignatureCommand

	err := cmd.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrStageSignatureCommandIsNotConstructed)
}
