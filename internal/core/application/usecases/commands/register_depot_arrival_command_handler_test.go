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

func TestRegisterDepotArrivalCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	volume := createTestVolume(t, kernel.NewUUID(), shipment.CollectionFinalized, nil)

	shipmentRepo := &MockShipmentRepository{}
	auditRepo := &MockAuditRepository{}
	uow := &MockUoW{}
	factory := &MockHandoffUoWFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Times(3)
	shipmentRepo.On("GetVolume", ctx, volume.ID()).Return(volume, nil).Once()
	shipmentRepo.On("UpdateVolumeStatus", ctx, volume.ID(),
		shipment.CollectionFinalized, shipment.AtDepot).Return(nil).Once()
	// Automatic release follows the intake in the same transaction.
	shipmentRepo.On("UpdateVolumeStatus", ctx, volume.ID(),
		shipment.AtDepot, shipment.AvailableForDelivery).Return(nil).Once()
	uow.On("AuditRepository").Return(auditRepo).Twice()
	auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRegisterDepotArrivalCommand(
		volume.ID(), kernel.NewUUID(), volume.ParcelCode().Digits())
	require.NoError(t, err)

	handler := commands.NewRegisterDepotArrivalCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestRegisterDepotArrivalCommandHandler_Handle_WrongDigits(t *testing.T) {
	ctx := t.Context()

	volume := createTestVolume(t, kernel.NewUUID(), shipment.CollectionFinalized, nil)

	shipmentRepo := &MockShipmentRepository{}
	auditRepo := &MockAuditRepository{}
	uow := &MockUoW{}
	factory := &MockHandoffUoWFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Once()
	shipmentRepo.On("GetVolume", ctx, volume.ID()).Return(volume, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRegisterDepotArrivalCommand(volume.ID(), kernel.NewUUID(), "0000")
	require.NoError(t, err)

	handler := commands.NewRegisterDepotArrivalCommandHandler(factory)
	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrVerificationFailed)

	shipmentRepo.AssertNotCalled(t, "UpdateVolumeStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestRegisterDepotArrivalCommandHandler_Handle_ReleaseWriteConflict(t *testing.T) {
	ctx := t.Context()

	volume := createTestVolume(t, kernel.NewUUID(), shipment.CollectionFinalized, nil)

	shipmentRepo := &MockShipmentRepository{}
	auditRepo := &MockAuditRepository{}
	uow := &MockUoW{}
	factory := &MockHandoffUoWFactory{}

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo).Times(3)
	shipmentRepo.On("GetVolume", ctx, volume.ID()).Return(volume, nil).Once()
	shipmentRepo.On("UpdateVolumeStatus", ctx, volume.ID(),
		shipment.CollectionFinalized, shipment.AtDepot).Return(nil).Once()
	shipmentRepo.On("UpdateVolumeStatus", ctx, volume.ID(),
		shipment.AtDepot, shipment.AvailableForDelivery).
		Return(ports.ErrStatusConflict).Once()
	uow.On("AuditRepository").Return(auditRepo).Once()
	auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewRegisterDepotArrivalCommand(
		volume.ID(), kernel.NewUUID(), volume.ParcelCode().Digits())
	require.NoError(t, err)

	handler := commands.NewRegisterDepotArrivalCommandHandler(factory)
	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrStatusConflict)

	// Nothing committed: the intake write rolls back with the release.
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
}

func TestRegisterDepotArrivalCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := &MockHandoffUoWFactory{}
	handler := commands.NewRegisterDepotArrivalCommandHandler(factory)

	err := handler.Handle(t.Context(), commands.RegisterDepotArrivalCommand{})
	require.ErrorIs(t, err, commands.ErrRegisterDepotArrivalCommandIsNotConstructed)

	factory.AssertNotCalled(t, "Create")
}
