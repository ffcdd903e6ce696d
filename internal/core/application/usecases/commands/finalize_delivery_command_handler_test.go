package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFinalizeDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	volume := createTestVolume(t, kernel.NewUUID(), shipment.DeliveryAccepted, &driverID)

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
			shipment.DeliveryAccepted, shipment.Delivered).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewFinalizeDeliveryCommand(volume.ID(), driverID)
	require.NoError(t, err)

	handler := commands.NewFinalizeDeliveryCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestFinalizeDeliveryCommandHandler_Handle_AlreadyDelivered(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	volume := createTestVolume(t, kernel.NewUUID(), shipment.Delivered, &driverID)

	shipmentRepo := &MockShipmentRepository{}
	uow := &MockUoW{}
	factory := &MockHandoffUoWFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	shipmentRepo.On("GetVolume", ctx, volume.ID()).Return(volume, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewFinalizeDeliveryCommand(volume.ID(), driverID)
	require.NoError(t, err)

	handler := commands.NewFinalizeDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrPreconditionFailed)

	shipmentRepo.AssertNotCalled(t, "UpdateVolumeStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestFinalizeDeliveryCommandHandler_Handle_NotTheAssignedDriver(t *testing.T) {
	ctx := t.Context()

	assignedDriverID := kernel.NewUUID()
	volume := createTestVolume(t, kernel.NewUUID(), shipment.DeliveryAccepted, &assignedDriverID)

	shipmentRepo := &MockShipmentRepository{}
	uow := &MockUoW{}
	factory := &MockHandoffUoWFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	shipmentRepo.On("GetVolume", ctx, volume.ID()).Return(volume, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewFinalizeDeliveryCommand(volume.ID(), kernel.NewUUID())
	require.NoError(t, err)

	handler := commands.NewFinalizeDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, shipment.ErrVolumeNotAssignedToActor)

	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestFinalizeDeliveryCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := &MockHandoffUoWFactory{}
	handler := commands.NewFinalizeDeliveryCommandHandler(factory)

	err := handler.Handle(t.Context(), commands.FinalizeDeliveryCommand{})
	require.ErrorIs(t, err, commands.ErrFinalizeDeliveryCommandIsNotConstructed)

	factory.AssertNotCalled(t, "Create")
}
