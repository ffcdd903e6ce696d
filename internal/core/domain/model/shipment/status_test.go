package shipment_test

import (
	"testing"

	"freight/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanAdvanceTo(t *testing.T) {
	t.Run("should allow single forward steps only", func(t *testing.T) {
		order := []shipment.Status{
			shipment.AwaitingCollectionAccept,
			shipment.CollectionAccepted,
			shipment.CollectionFinalized,
			shipment.AtDepot,
			shipment.AvailableForDelivery,
			shipment.DeliveryClaimed,
			shipment.DeliveryAccepted,
			shipment.Delivered,
		}

		for i, from := range order {
			for j, to := range order {
				want := j == i+1
				assert.Equal(t, want, from.CanAdvanceTo(to),
					"%s -> %s", from, to)
			}
		}
	})

	t.Run("terminal status has no successor", func(t *testing.T) {
		for _, to := range []shipment.Status{
			shipment.AwaitingCollectionAccept, shipment.Delivered,
		} {
			assert.False(t, shipment.Delivered.CanAdvanceTo(to))
		}
	})

	t.Run("unknown status cannot advance", func(t *testing.T) {
		assert.False(t, shipment.StatusUnknown.CanAdvanceTo(shipment.AwaitingCollectionAccept))
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, shipment.Delivered.IsTerminal())
	assert.False(t, shipment.DeliveryAccepted.IsTerminal())
	assert.False(t, shipment.AwaitingCollectionAccept.IsTerminal())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "AWAITING_COLLECTION_ACCEPT", shipment.AwaitingCollectionAccept.String())
	assert.Equal(t, "AT_DEPOT", shipment.AtDepot.String())
	assert.Equal(t, "DELIVERED", shipment.Delivered.String())
	assert.Equal(t, "UNKNOWN", shipment.StatusUnknown.String())
	assert.Equal(t, "UNKNOWN", shipment.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse every canonical name", func(t *testing.T) {
		for _, status := range []shipment.Status{
			shipment.AwaitingCollectionAccept,
			shipment.CollectionAccepted,
			shipment.CollectionFinalized,
			shipment.AtDepot,
			shipment.AvailableForDelivery,
			shipment.DeliveryClaimed,
			shipment.DeliveryAccepted,
			shipment.Delivered,
		} {
			parsed, err := shipment.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := shipment.StatusFromString("IN_TRANSIT")
		require.Error(t, err)

		_, err = shipment.StatusFromString("UNKNOWN")
		require.Error(t, err)
	})
}

func TestStatus_AllowsOccurrenceBy(t *testing.T) {
	collectionPhase := []shipment.Status{
		shipment.AwaitingCollectionAccept,
		shipment.CollectionAccepted,
		shipment.CollectionFinalized,
	}
	deliveryPhase := []shipment.Status{
		shipment.DeliveryClaimed,
		shipment.DeliveryAccepted,
	}

	t.Run("collection driver reports during the collection phase", func(t *testing.T) {
		for _, status := range collectionPhase {
			assert.True(t, status.AllowsOccurrenceBy(shipment.RoleCollectionDriver), "%s", status)
		}
		for _, status := range deliveryPhase {
			assert.False(t, status.AllowsOccurrenceBy(shipment.RoleCollectionDriver), "%s", status)
		}
	})

	t.Run("delivery driver reports while holding the claim", func(t *testing.T) {
		for _, status := range deliveryPhase {
			assert.True(t, status.AllowsOccurrenceBy(shipment.RoleDeliveryDriver), "%s", status)
		}
		for _, status := range collectionPhase {
			assert.False(t, status.AllowsOccurrenceBy(shipment.RoleDeliveryDriver), "%s", status)
		}
	})

	t.Run("no role reports against a delivered volume", func(t *testing.T) {
		assert.False(t, shipment.Delivered.AllowsOccurrenceBy(shipment.RoleCollectionDriver))
		assert.False(t, shipment.Delivered.AllowsOccurrenceBy(shipment.RoleDeliveryDriver))
		assert.False(t, shipment.Delivered.AllowsOccurrenceBy(shipment.RoleDepotStaff))
	})
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, shipment.AtDepot.Validate())
	require.Error(t, shipment.StatusUnknown.Validate())
	require.Error(t, shipment.Status(99).Validate())
}
