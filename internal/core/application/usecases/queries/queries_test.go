package queries_test

import (
	"testing"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetShipmentQuery(t *testing.T) {
	shipmentID := kernel.NewUUID()

	query, err := queries.NewGetShipmentQuery(shipmentID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.ShipmentID().IsEqual(shipmentID))

	_, err = queries.NewGetShipmentQuery(kernel.UUID{})
	require.Error(t, err)

	var zero queries.GetShipmentQuery
	assert.ErrorIs(t, zero.Validate(), queries.ErrGetShipmentQueryIsNotConstructed)
}

func TestNewGetShipmentTimelineQuery(t *testing.T) {
	shipmentID := kernel.NewUUID()

	query, err := queries.NewGetShipmentTimelineQuery(shipmentID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.ShipmentID().IsEqual(shipmentID))

	_, err = queries.NewGetShipmentTimelineQuery(kernel.UUID{})
	require.Error(t, err)

	var zero queries.GetShipmentTimelineQuery
	assert.ErrorIs(t, zero.Validate(), queries.ErrGetShipmentTimelineQueryIsNotConstructed)
}

func TestNewSearchAvailableVolumesQuery(t *testing.T) {
	t.Run("accepts exactly four digits", func(t *testing.T) {
		query, err := queries.NewSearchAvailableVolumesQuery("0042")
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, "0042", query.Digits())
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, digits := range []string{"", "42", "00042", "abcd", "ETI-0042", "004a"} {
			_, err := queries.NewSearchAvailableVolumesQuery(digits)
			require.Error(t, err, "%q", digits)
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var zero queries.SearchAvailableVolumesQuery
		assert.ErrorIs(t, zero.Validate(), queries.ErrSearchAvailableVolumesQueryIsNotConstructed)
	})
}
