package kernel_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParcelCode(t *testing.T) {
	t.Run("should render zero padded digits", func(t *testing.T) {
		code, err := kernel.NewParcelCode(42)

		require.NoError(t, err)
		assert.Equal(t, "ETI-0042", code.String())
		assert.Equal(t, "0042", code.Digits())
		assert.NoError(t, code.Validate())
	})

	t.Run("should accept the first and last counter values", func(t *testing.T) {
		first, err := kernel.NewParcelCode(0)
		require.NoError(t, err)
		assert.Equal(t, "ETI-0000", first.String())

		last, err := kernel.NewParcelCode(kernel.ParcelCodeSpace - 1)
		require.NoError(t, err)
		assert.Equal(t, "ETI-9999", last.String())
	})

	t.Run("should fail when the code space is exhausted", func(t *testing.T) {
		_, err := kernel.NewParcelCode(kernel.ParcelCodeSpace)
		require.ErrorIs(t, err, kernel.ErrParcelCodeSpaceExhausted)

		_, err = kernel.NewParcelCode(-1)
		require.ErrorIs(t, err, kernel.ErrParcelCodeSpaceExhausted)
	})
}

func TestParcelCodeFromString(t *testing.T) {
	t.Run("should parse a rendered code", func(t *testing.T) {
		code, err := kernel.ParcelCodeFromString("ETI-0731")

		require.NoError(t, err)
		assert.Equal(t, "0731", code.Digits())
	})

	t.Run("should reject malformed codes", func(t *testing.T) {
		for _, s := range []string{"", "0731", "ETI-731", "ETI-07312", "eti-0731", "ETI-07a1"} {
			_, err := kernel.ParcelCodeFromString(s)
			require.Error(t, err, "input %q", s)
		}
	})
}

func TestParcelCode_Matches(t *testing.T) {
	t.Run("should match only the exact four digits", func(t *testing.T) {
		code, err := kernel.NewParcelCode(731)
		require.NoError(t, err)

		assert.True(t, code.Matches("0731"))
		assert.False(t, code.Matches("731"))
		assert.False(t, code.Matches("0732"))
		assert.False(t, code.Matches(""))
	})

	t.Run("zero value never matches", func(t *testing.T) {
		var code kernel.ParcelCode
		assert.False(t, code.Matches(""))
		require.Error(t, code.Validate())
	})
}

func TestParcelCode_IsEqual(t *testing.T) {
	a, err := kernel.NewParcelCode(5)
	require.NoError(t, err)
	b, err := kernel.ParcelCodeFromString("ETI-0005")
	require.NoError(t, err)
	c, err := kernel.NewParcelCode(6)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
