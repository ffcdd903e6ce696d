package shipment_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T) shipment.Address {
	t.Helper()

	address, err := shipment.NewAddress(
		"João Pereira", "+55 21 99876-5432", "",
		"Avenida Atlântica", "1702", "", "Copacabana",
		"Rio de Janeiro", "RJ", "22021-001",
	)
	require.NoError(t, err)
	return address
}

func testVolume(t *testing.T) *shipment.Volume {
	t.Helper()

	code, err := kernel.NewParcelCode(7)
	require.NoError(t, err)

	volume, err := shipment.NewVolume(
		kernel.NewUUID(), kernel.NewUUID(), code, 1, 2000, testAddress(t))
	require.NoError(t, err)
	return volume
}

func TestNewVolume(t *testing.T) {
	t.Run("should start awaiting collection accept", func(t *testing.T) {
		volume := testVolume(t)

		assert.NoError(t, volume.Validate())
		assert.Equal(t, shipment.AwaitingCollectionAccept, volume.Status())
		assert.Nil(t, volume.AssignedActor())
		assert.Equal(t, 1, volume.Sequence())
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		code, err := kernel.NewParcelCode(7)
		require.NoError(t, err)
		address := testAddress(t)

		_, err = shipment.NewVolume(kernel.UUID{}, kernel.NewUUID(), code, 1, 2000, address)
		require.Error(t, err)

		_, err = shipment.NewVolume(kernel.NewUUID(), kernel.NewUUID(), code, 0, 2000, address)
		require.Error(t, err)

		_, err = shipment.NewVolume(kernel.NewUUID(), kernel.NewUUID(), code, 1, 0, address)
		require.Error(t, err)

		_, err = shipment.NewVolume(kernel.NewUUID(), kernel.NewUUID(), code, 1, 2000, shipment.Address{})
		require.Error(t, err)
	})
}

func TestVolume_VerifyCode(t *testing.T) {
	volume := testVolume(t)

	assert.True(t, volume.VerifyCode("0007"))
	assert.False(t, volume.VerifyCode("7"))
	assert.False(t, volume.VerifyCode("0008"))
	assert.False(t, volume.VerifyCode(""))
}

func TestVolume_AdvanceTo(t *testing.T) {
	t.Run("should walk the whole graph one step at a time", func(t *testing.T) {
		volume := testVolume(t)

		for _, next := range []shipment.Status{
			shipment.CollectionAccepted,
			shipment.CollectionFinalized,
			shipment.AtDepot,
			shipment.AvailableForDelivery,
			shipment.DeliveryClaimed,
			shipment.DeliveryAccepted,
			shipment.Delivered,
		} {
			require.NoError(t, volume.AdvanceTo(next))
			assert.Equal(t, next, volume.Status())
		}
	})

	t.Run("should reject skipped and backward steps", func(t *testing.T) {
		volume := testVolume(t)

		err := volume.AdvanceTo(shipment.AtDepot)
		require.ErrorIs(t, err, shipment.ErrStatusNotAdvanceable)

		require.NoError(t, volume.AdvanceTo(shipment.CollectionAccepted))
		err = volume.AdvanceTo(shipment.AwaitingCollectionAccept)
		require.ErrorIs(t, err, shipment.ErrStatusNotAdvanceable)
	})
}

func TestVolume_Claim(t *testing.T) {
	availableVolume := func(t *testing.T) *shipment.Volume {
		t.Helper()
		volume := testVolume(t)
		for _, next := range []shipment.Status{
			shipment.CollectionAccepted, shipment.CollectionFinalized,
			shipment.AtDepot, shipment.AvailableForDelivery,
		} {
			require.NoError(t, volume.AdvanceTo(next))
		}
		return volume
	}

	t.Run("should assign the claiming driver", func(t *testing.T) {
		volume := availableVolume(t)
		driverID := kernel.NewUUID()

		require.NoError(t, volume.Claim(driverID))
		assert.Equal(t, shipment.DeliveryClaimed, volume.Status())
		require.NotNil(t, volume.AssignedActor())
		assert.True(t, volume.AssignedActor().IsEqual(driverID))
	})

	t.Run("should reject a second claim", func(t *testing.T) {
		volume := availableVolume(t)
		require.NoError(t, volume.Claim(kernel.NewUUID()))

		err := volume.Claim(kernel.NewUUID())
		require.ErrorIs(t, err, shipment.ErrVolumeAlreadyClaimed)
	})

	t.Run("should reject claiming before availability", func(t *testing.T) {
		volume := testVolume(t)

		err := volume.Claim(kernel.NewUUID())
		require.ErrorIs(t, err, shipment.ErrStatusNotAdvanceable)
		assert.Nil(t, volume.AssignedActor())
	})
}

func TestVolume_EnsureAssignedTo(t *testing.T) {
	volume := testVolume(t)
	driverID := kernel.NewUUID()

	err := volume.EnsureAssignedTo(driverID)
	require.ErrorIs(t, err, shipment.ErrVolumeNotAssignedToActor)

	for _, next := range []shipment.Status{
		shipment.CollectionAccepted, shipment.CollectionFinalized,
		shipment.AtDepot, shipment.AvailableForDelivery,
	} {
		require.NoError(t, volume.AdvanceTo(next))
	}
	require.NoError(t, volume.Claim(driverID))

	require.NoError(t, volume.EnsureAssignedTo(driverID))
	err = volume.EnsureAssignedTo(kernel.NewUUID())
	require.ErrorIs(t, err, shipment.ErrVolumeNotAssignedToActor)
}

func TestRestoreVolume(t *testing.T) {
	code, err := kernel.NewParcelCode(7)
	require.NoError(t, err)
	createdAt := time.Now().UTC().Add(-time.Hour)

	t.Run("should restore status and assignment", func(t *testing.T) {
		driverID := kernel.NewUUID()

		volume, err := shipment.RestoreVolume(
			kernel.NewUUID(), kernel.NewUUID(), code, 2, 2000, testAddress(t),
			shipment.DeliveryAccepted, &driverID, createdAt)
		require.NoError(t, err)

		assert.Equal(t, shipment.DeliveryAccepted, volume.Status())
		assert.True(t, volume.AssignedActor().IsEqual(driverID))
		assert.Equal(t, createdAt, volume.CreatedAt())
	})

	t.Run("should reject an assignment before the claim status", func(t *testing.T) {
		driverID := kernel.NewUUID()

		_, err := shipment.RestoreVolume(
			kernel.NewUUID(), kernel.NewUUID(), code, 2, 2000, testAddress(t),
			shipment.AtDepot, &driverID, createdAt)
		require.Error(t, err)
	})
}

func TestVolume_ZeroValueFailsValidation(t *testing.T) {
	var volume shipment.Volume
	require.ErrorIs(t, volume.Validate(), shipment.ErrVolumeIsNotConstructed)
}
