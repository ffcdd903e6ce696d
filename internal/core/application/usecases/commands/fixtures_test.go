package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/staging"

	"github.com/stretchr/testify/require"
)

func createTestAddress(t *testing.T) shipment.Address {
	t.Helper()

	address, err := shipment.NewAddress(
		"Maria Souza", "+55 11 91234-5678", "123.456.789-00",
		"Rua das Flores", "100", "apto 12", "Centro",
		"São Paulo", "SP", "01001-000",
	)
	require.NoError(t, err)
	return address
}

// createTestVolume builds a volume at the given status, assigned to
// assignedActorID when that status admits an assignment.
func createTestVolume(
	t *testing.T,
	shipmentID kernel.UUID,
	status shipment.Status,
	assignedActorID *kernel.UUID,
) *shipment.Volume {
	t.Helper()

	code, err := kernel.NewParcelCode(42)
	require.NoError(t, err)

	volume, err := shipment.RestoreVolume(
		kernel.NewUUID(), shipmentID, code, 1, 1500,
		createTestAddress(t), status, assignedActorID, time.Now().UTC(),
	)
	require.NoError(t, err)
	return volume
}

// createTestShipment builds a shipment whose volumes sit at the given
// statuses, one volume per status, in sequence order.
func createTestShipment(t *testing.T, statuses ...shipment.Status) *shipment.Shipment {
	t.Helper()

	shipmentID := kernel.NewUUID()
	volumes := make([]*shipment.Volume, 0, len(statuses))
	totalWeight := 0
	for i, status := range statuses {
		code, err := kernel.NewParcelCode(int64(100 + i))
		require.NoError(t, err)

		volume, err := shipment.RestoreVolume(
			kernel.NewUUID(), shipmentID, code, i+1, 1500,
			createTestAddress(t), status, nil, time.Now().UTC(),
		)
		require.NoError(t, err)
		volumes = append(volumes, volume)
		totalWeight += volume.WeightGrams()
	}

	trackingCode, err := kernel.NewTrackingCode(shipmentID)
	require.NoError(t, err)

	aggregate, err := shipment.RestoreShipment(
		shipmentID, kernel.NewUUID(), trackingCode,
		len(statuses), totalWeight, 250_00,
		"pickup-point-7", time.Now().UTC().AddDate(0, 0, 3), "pay_9f3a71",
		time.Now().UTC(), volumes,
	)
	require.NoError(t, err)
	return aggregate
}

func createTestStagingRecord(t *testing.T, paymentReference string, draftCount int) *staging.StagingRecord {
	t.Helper()

	drafts := make([]staging.VolumeDraft, 0, draftCount)
	for range draftCount {
		drafts = append(drafts, staging.VolumeDraft{
			WeightGrams: 1500,
			Recipient:   createTestAddress(t),
		})
	}

	record, err := staging.NewStagingRecord(
		kernel.NewUUID(), kernel.NewUUID(), paymentReference,
		"Transportes Ltda", "12.345.678/0001-90",
		drafts, 250_00, "pickup-point-7",
		time.Now().UTC().AddDate(0, 0, 3),
	)
	require.NoError(t, err)
	return record
}
