package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptCollectionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	volume := createTestVolume(t, kernel.NewUUID(), shipment.AwaitingCollectionAccept, nil)
	driverID := kernel.NewUUID()

	shipmentRepo := &MockShipmentRepository{}
	auditRepo := &MockAuditRepository{}
	uow := &MockUoW{}
	factory := &MockHandoffUoWFactory{}

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetVolume", ctx, volume.ID()).Return(volume, nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("UpdateVolumeStatus", ctx, volume.ID(),
			shipment.AwaitingCollectionAccept, shipment.CollectionAccepted).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewAcceptCollectionCommand(volume.ID(), driverID, volume.ParcelCode().Digits())
	require.NoError(t, err)

	handler := commands.NewAcceptCollectionCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestAcceptCollectionCommandHandler_Handle_WrongDigits(t *testing.T) {
	ctx := t.Context()

	volume := createTestVolume(t, kernel.NewUUID(), shipment.AwaitingCollectionAccept, nil)

	shipmentRepo := &MockShipmentRepository{}
	auditRepo := &MockAuditRepository{}
	uow := &MockUoW{}
	factory := &MockHandoffUoWFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	shipmentRepo.On("GetVolume", ctx, volume.ID()).Return(volume, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewAcceptCollectionCommand(volume.ID(), kernel.NewUUID(), "9999")
	require.NoError(t, err)

	handler := commands.NewAcceptCollectionCommandHandler(factory)
	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrVerificationFailed)

	shipmentRepo.AssertNotCalled(t, "UpdateVolumeStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestAcceptCollectionCommandHandler_Handle_StatusConflict(t *testing.T) {
	ctx := t.Context()

	volume := createTestVolume(t, kernel.NewUUID(), shipment.AwaitingCollectionAccept, nil)

	shipmentRepo := &MockShipmentRepository{}
	auditRepo := &MockAuditRepository{}
	uow := &MockUoW{}
	factory := &MockHandoffUoWFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Twice()
	shipmentRepo.On("GetVolume", ctx, volume.ID()).Return(volume, nil).Once()
	shipmentRepo.On("UpdateVolumeStatus", ctx, volume.ID(),
		shipment.AwaitingCollectionAccept, shipment.CollectionAccepted).
		Return(ports.ErrStatusConflict).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewAcceptCollectionCommand(volume.ID(), kernel.NewUUID(), volume.ParcelCode().Digits())
	require.NoError(t, err)

	handler := commands.NewAcceptCollectionCommandHandler(factory)
	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrStatusConflict)

	auditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
}

func TestAcceptCollectionCommandHandler_Handle_AlreadyAdvanced(t *testing.T) {
	ctx := t.Context()

	volume := createTestVolume(t, kernel.NewUUID(), shipment.CollectionAccepted, nil)

	shipmentRepo := &MockShipmentRepository{}
	uow := &MockUoW{}
	factory := &MockHandoffUoWFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	shipmentRepo.On("GetVolume", ctx, volume.ID()).Return(volume, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewAcceptCollectionCommand(volume.ID(), kernel.NewUUID(), volume.ParcelCode().Digits())
	require.NoError(t, err)

	handler := commands.NewAcceptCollectionCommandHandler(factory)
	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrPreconditionFailed)

	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestAcceptCollectionCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := &MockHandoffUoWFactory{}
	handler := commands.NewAcceptCollectionCommandHandler(factory)

	err := handler.Handle(t.Context(), commands.AcceptCollectionCommand{})
	require.ErrorIs(t, err, commands.ErrAcceptCollectionCommandIsNotConstructed)

	factory.AssertNotCalled(t, "Create")
}
