package commands_test

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/staging"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) AddVolume(ctx context.Context, volume *shipment.Volume) error {
	args := m.Called(ctx, volume)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByPaymentReference(ctx context.Context, paymentReference string) (*shipment.Shipment, error) {
	args := m.Called(ctx, paymentReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetVolume(ctx context.Context, id kernel.UUID) (*shipment.Volume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Volume), args.Error(1)
}

func (m *MockShipmentRepository) UpdateVolumeStatus(ctx context.Context, id kernel.UUID, from, to shipment.Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockShipmentRepository) ClaimVolume(ctx context.Context, id kernel.UUID, driverID kernel.UUID) error {
	args := m.Called(ctx, id, driverID)
	return args.Error(0)
}

func (m *MockShipmentRepository) SearchAvailable(ctx context.Context, digits string) ([]*shipment.Volume, error) {
	args := m.Called(ctx, digits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Volume), args.Error(1)
}

type MockStagingRepository struct{ mock.Mock }

func (m *MockStagingRepository) Add(ctx context.Context, record *staging.StagingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStagingRepository) Get(ctx context.Context, id kernel.UUID) (*staging.StagingRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staging.StagingRecord), args.Error(1)
}

func (m *MockStagingRepository) GetPendingByPaymentReference(ctx context.Context, paymentReference string) (*staging.StagingRecord, error) {
	args := m.Called(ctx, paymentReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staging.StagingRecord), args.Error(1)
}

func (m *MockStagingRepository) TryLock(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStagingRepository) MarkProcessed(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStagingRepository) ResetStuck(ctx context.Context, lockedBefore time.Time) ([]kernel.UUID, error) {
	args := m.Called(ctx, lockedBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockAuditRepository struct{ mock.Mock }

func (m *MockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) GetTimeline(ctx context.Context, shipmentID kernel.UUID) ([]*audit.Entry, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

// MockUoW satisfies every unit of work interface in this package, so the
// same mock serves handoff, staging and cross-aggregate handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) StagingRepository() ports.StagingRepository {
	args := m.Called()
	return args.Get(0).(ports.StagingRepository)
}

func (m *MockUoW) AuditRepository() ports.AuditRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditRepository)
}

type MockHandoffUoWFactory struct{ mock.Mock }

func (m *MockHandoffUoWFactory) Create() commands.HandoffUoW {
	args := m.Called()
	return args.Get(0).(commands.HandoffUoW)
}

type MockStagingUoWFactory struct{ mock.Mock }

func (m *MockStagingUoWFactory) Create() commands.StagingUoW {
	args := m.Called()
	return args.Get(0).(commands.StagingUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// MockCodeGenerator implements ports.CodeGenerator.
type MockCodeGenerator struct{ mock.Mock }

func (m *MockCodeGenerator) NextParcelCode(ctx context.Context) (kernel.ParcelCode, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.ParcelCode), args.Error(1)
}
