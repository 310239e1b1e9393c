package keyring

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCiphers() []Cipher {
	return []Cipher{XChaCha20Poly1305(), AES256GCM()}
}

func TestCipherRoundTrip(t *testing.T) {
	key := makeKey(keySize, 7)
	aad := []byte("group\x00key")

	for _, c := range testCiphers() {
		t.Run(c.Name(), func(t *testing.T) {
			for _, plaintext := range [][]byte{nil, []byte("hello"), bytes.Repeat([]byte{0xAB}, 4096)} {
				blob, err := c.Seal(key, plaintext, aad)
				require.NoError(t, err)

				got, err := c.Open(key, blob, aad)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(plaintext, got))
			}
		})
	}
}

func TestCipherFreshNonce(t *testing.T) {
	key := makeKey(keySize, 7)

	for _, c := range testCiphers() {
		t.Run(c.Name(), func(t *testing.T) {
			a, err := c.Seal(key, []byte("same"), nil)
			require.NoError(t, err)
			b, err := c.Seal(key, []byte("same"), nil)
			require.NoError(t, err)
			assert.NotEqual(t, a, b)
		})
	}
}

func TestCipherAuthenticationFailures(t *testing.T) {
	key := makeKey(keySize, 7)
	aad := []byte("aad")

	for _, c := range testCiphers() {
		t.Run(c.Name(), func(t *testing.T) {
			blob, err := c.Seal(key, []byte("secret"), aad)
			require.NoError(t, err)

			t.Run("wrong key", func(t *testing.T) {
				_, err := c.Open(makeKey(keySize, 8), blob, aad)
				assert.True(t, IsAuthenticationFailed(err))
			})

			t.Run("wrong aad", func(t *testing.T) {
				_, err := c.Open(key, blob, []byte("other"))
				assert.True(t, IsAuthenticationFailed(err))
			})

			t.Run("every byte flipped", func(t *testing.T) {
				for i := range blob {
					tampered := bytes.Clone(blob)
					tampered[i] ^= 0x01
					got, err := c.Open(key, tampered, aad)
					assert.True(t, IsAuthenticationFailed(err), "byte %d", i)
					assert.Nil(t, got)
				}
			})

			t.Run("truncated", func(t *testing.T) {
				_, err := c.Open(key, blob[:5], aad)
				assert.True(t, IsAuthenticationFailed(err))

				_, err = c.Open(key, nil, aad)
				assert.True(t, IsAuthenticationFailed(err))
			})
		})
	}
}

func TestCipherInvalidKeySize(t *testing.T) {
	for _, c := range testCiphers() {
		t.Run(c.Name(), func(t *testing.T) {
			_, err := c.Seal(makeKey(16, 0), []byte("x"), nil)
			assert.True(t, IsInvalidKeySize(err))

			_, err = c.Open(makeKey(16, 0), make([]byte, 64), nil)
			assert.True(t, IsInvalidKeySize(err))
		})
	}
}

func TestCipherErrorsDoNotLeakKey(t *testing.T) {
	key := makeKey(keySize, 0x41) // printable bytes
	for _, c := range testCiphers() {
		blob, err := c.Seal(key, []byte("secret"), nil)
		require.NoError(t, err)
		blob[len(blob)-1] ^= 0xFF

		_, err = c.Open(key, blob, nil)
		require.Error(t, err)
		assert.NotContains(t, err.Error(), string(key))
		assert.NotContains(t, err.Error(), "secret")
	}
}
