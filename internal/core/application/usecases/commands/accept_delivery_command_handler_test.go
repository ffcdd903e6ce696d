package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	driverID := kernel.NewUUID()
	volume := createTestVolume(t, kernel.NewUUID(), shipment.DeliveryClaimed, &driverID)

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
			shipment.DeliveryClaimed, shipment.DeliveryAccepted).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewAcceptDeliveryCommand(volume.ID(), driverID)
	require.NoError(t, err)

	handler := commands.NewAcceptDeliveryCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestAcceptDeliveryCommandHandler_Handle_NotTheAssignedDriver(t *testing.T) {
	ctx := t.Context()

	assignedDriverID := kernel.NewUUID()
	volume := createTestVolume(t, kernel.NewUUID(), shipment.DeliveryClaimed, &assignedDriverID)

	shipmentRepo := &MockShipmentRepository{}
	uow := &MockUoW{}
	factory := &MockHandoffUoWFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	shipmentRepo.On("GetVolume", ctx, volume.ID()).Return(volume, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewAcceptDeliveryCommand(volume.ID(), kernel.NewUUID())
	require.NoError(t, err)

	handler := commands.NewAcceptDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, shipment.ErrVolumeNotAssignedToActor)

	shipmentRepo.AssertNotCalled(t, "UpdateVolumeStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestAcceptDeliveryCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := &MockHandoffUoWFactory{}
	handler := commands.NewAcceptDeliveryCommandHandler(factory)

	err := handler.Handle(t.Context(), commands.AcceptDeliveryCommand{})
	require.ErrorIs(t, err, commands.ErrAcceptDeliveryCommandIsNotConstructed)

	factory.AssertNotCalled(t, "Create")
}
