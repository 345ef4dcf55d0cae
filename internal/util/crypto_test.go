package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Run("generates hex tokens of expected length", func(t *testing.T) {
		token, err := GenerateToken()
		require.NoError(t, err)
		assert.Len(t, token, tokenBytes*2)
	})

	t.Run("generates unique tokens", func(t *testing.T) {
		a, err := GenerateToken()
		require.NoError(t, err)
		b, err := GenerateToken()
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestHashToken(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, HashToken("abc"), HashToken("abc"))
	})

	t.Run("differs per input", func(t *testing.T) {
		assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	})
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, ConstantTimeEqual("token", "token"))
	assert.False(t, ConstantTimeEqual("token", "other"))
	assert.False(t, ConstantTimeEqual("token", "token2"))
}

func TestMaskSerial(t *testing.T) {
	assert.Equal(t, "****BEEF", MaskSerial("MH0001DEADBEEF"))
	assert.Equal(t, "****", MaskSerial("AB"))
}
