package postgres_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/staging"

	"github.com/stretchr/testify/require"
)

// createTestAddress builds a valid recipient address snapshot.
func createTestAddress(t *testing.T) shipment.Address {
	t.Helper()
	address, err := shipment.NewAddress(
		"Maria Silva",
		"+55 11 91234-5678",
		"123.456.789-00",
		"Rua das Flores",
		"100",
		"apt 42",
		"Centro",
		"Sao Paulo",
		"SP",
		"01000-000",
	)
	require.NoError(t, err)
	return address
}

// createTestShipment builds a valid shipment header for the given payment
// reference.
func createTestShipment(t *testing.T, paymentReference string) *shipment.Shipment {
	t.Helper()
	aggregate, err := shipment.NewShipment(
		kernel.NewUUID(),
		kernel.NewUUID(),
		2,
		2000,
		15900,
		"pickup-point-01",
		time.Now().UTC().AddDate(0, 0, 7).Truncate(time.Microsecond),
		paymentReference,
	)
	require.NoError(t, err)
	return aggregate
}

// createTestVolume builds a valid volume with a parcel code drawn from the
// given counter value.
func createTestVolume(t *testing.T, shipmentID kernel.UUID, sequence int, counter int64) *shipment.Volume {
	t.Helper()
	code, err := kernel.NewParcelCode(counter)
	require.NoError(t, err)

	volume, err := shipment.NewVolume(
		kernel.NewUUID(),
		shipmentID,
		code,
		sequence,
		1000,
		createTestAddress(t),
	)
	require.NoError(t, err)
	return volume
}

// createTestStagingRecord builds a valid pending staging record with two
// volume drafts.
func createTestStagingRecord(t *testing.T, paymentReference string) *staging.StagingRecord {
	t.Helper()
	drafts := []staging.VolumeDraft{
		{WeightGrams: 1000, Recipient: createTestAddress(t)},
		{WeightGrams: 1500, Recipient: createTestAddress(t)},
	}

	record, err := staging.NewStagingRecord(
		kernel.NewUUID(),
		kernel.NewUUID(),
		paymentReference,
		"Acme Ltda",
		"12.345.678/0001-00",
		drafts,
		15900,
		"pickup-point-01",
		time.Now().UTC().AddDate(0, 0, 7).Truncate(time.Microsecond),
	)
	require.NoError(t, err)
	return record
}
