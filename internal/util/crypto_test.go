package util

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Run("generates 64 character hex string", func(t *testing.T) {
		token, err := GenerateToken()
		require.NoError(t, err)
		assert.Len(t, token, 64)
	})

	t.Run("generates unique tokens", func(t *testing.T) {
		token1, _ := GenerateToken()
		token2, _ := GenerateToken()
		assert.NotEqual(t, token1, token2)
	})

	t.Run("generates valid hex", func(t *testing.T) {
		token, _ := GenerateToken()
		_, err := hex.DecodeString(token)
		assert.NoError(t, err)
	})
}

func TestHmacSHA256(t *testing.T) {
	t.Run("same secret and data produce same signature", func(t *testing.T) {
		sig1 := HmacSHA256("secret", "github|123")
		sig2 := HmacSHA256("secret", "github|123")
		assert.Equal(t, sig1, sig2)
	})

	t.Run("different secrets produce different signatures", func(t *testing.T) {
		assert.NotEqual(t, HmacSHA256("secret-a", "data"), HmacSHA256("secret-b", "data"))
	})

	t.Run("different data produce different signatures", func(t *testing.T) {
		assert.NotEqual(t, HmacSHA256("secret", "github|123"), HmacSHA256("secret", "github|124"))
	})
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, ConstantTimeEqual("abc", "abc"))
	assert.False(t, ConstantTimeEqual("abc", "abd"))
	assert.False(t, ConstantTimeEqual("abc", "abcd"))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", MaskSecret("key"))
	assert.Equal(t, "sk_l-****", MaskSecret("sk_live_abcdef"))
}

func TestSecretBox(t *testing.T) {
	key := strings.Repeat("ab", 32)

	t.Run("round trip", func(t *testing.T) {
		box, err := NewSecretBox(key)
		require.NoError(t, err)
		require.NotNil(t, box)

		sealed, err := box.Seal("service-role-key")
		require.NoError(t, err)
		assert.NotEqual(t, "service-role-key", sealed)

		opened, err := box.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, "service-role-key", opened)
	})

	t.Run("nil box passes values through", func(t *testing.T) {
		box, err := NewSecretBox("")
		require.NoError(t, err)
		require.Nil(t, box)

		sealed, err := box.Seal("plain")
		require.NoError(t, err)
		assert.Equal(t, "plain", sealed)

		opened, err := box.Open("plain")
		require.NoError(t, err)
		assert.Equal(t, "plain", opened)
	})

	t.Run("rejects short keys", func(t *testing.T) {
		_, err := NewSecretBox("abcd")
		assert.Error(t, err)
	})

	t.Run("rejects tampered ciphertext", func(t *testing.T) {
		box, _ := NewSecretBox(key)
		sealed, _ := box.Seal("value")

		_, err := box.Open("AAAA" + sealed[4:])
		assert.Error(t, err)
	})
}
