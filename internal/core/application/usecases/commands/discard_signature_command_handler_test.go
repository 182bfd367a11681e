package commands_test

import (
	"testing"

	"fieldservice/internal/core/application/draft"
	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscardSignatureCommandHandler_Handle_ClearsStagedDrawing(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	drafts := draft.NewStore()
	d, _ := drafts.GetOrCreate(orderID)
	d.StageSignature([]byte("abandoned drawing"))

	cmd, err := commands.NewDiscardSignatureCommand(orderID)
	require.NoError(t, err)

	handler := commands.NewDiscardSignatureCommandHandler(drafts)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, d.StagedSignature())
}

func TestDiscardSignatureCommandHandler_Handle_NoDraftIsNoOp(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	drafts := draft.NewStore()
	cmd, err := commands.NewDiscardSignatureCommand(orderID)
	require.NoError(t, err)

	handler := commands.NewDiscardSignatureCommandHandler(drafts)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	_, ok := drafts.Get(orderID)
	assert.False(t, ok, "discarding must not create a draft")
}

func TestDiscardSignatureCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.DiscardSignatureCommand{}

	handler := commands.NewDiscardSignatureCommandHandler(draft.NewStore())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDiscardSignatureCommandIsNotConstructed)
}
