package kernel_test

import (
	"strings"
	"testing"

	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingCode(t *testing.T) {
	t.Run("should derive the code from the shipment id", func(t *testing.T) {
		id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
		require.NoError(t, err)

		code, err := kernel.NewTrackingCode(id)
		require.NoError(t, err)
		assert.Equal(t, "FRT-550E8400", code.String())
		assert.NoError(t, code.Validate())
	})

	t.Run("should reject a zero shipment id", func(t *testing.T) {
		var id kernel.UUID
		_, err := kernel.NewTrackingCode(id)
		require.Error(t, err)
	})
}

func TestTrackingCodeFromString(t *testing.T) {
	t.Run("should restore a persisted code", func(t *testing.T) {
		code, err := kernel.TrackingCodeFromString("FRT-550E8400")
		require.NoError(t, err)
		assert.Equal(t, "FRT-550E8400", code.String())
	})

	t.Run("should reject codes without the prefix", func(t *testing.T) {
		for _, s := range []string{"", "FRT-", "550E8400", "frt-550E8400"} {
			_, err := kernel.TrackingCodeFromString(s)
			require.Error(t, err, "input %q", s)
		}
	})
}

func TestTrackingCode_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	a, err := kernel.NewTrackingCode(id)
	require.NoError(t, err)
	b, err := kernel.TrackingCodeFromString(a.String())
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.True(t, strings.HasPrefix(a.String(), kernel.TrackingCodePrefix))
}
