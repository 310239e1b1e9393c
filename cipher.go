package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Cipher is an authenticated encryption primitive.
// Seal generates a fresh random nonce per call and embeds it in the returned blob;
// Open verifies the blob before returning any plaintext.
type Cipher interface {
	// Name identifies the algorithm, e.g. "xchacha20-poly1305".
	Name() string

	// Seal encrypts and authenticates plaintext and aad under key.
	Seal(key, plaintext, aad []byte) ([]byte, error)

	// Open authenticates and decrypts blob. Verification failures return
	// ErrAuthenticationFailed.
	Open(key, blob, aad []byte) ([]byte, error)
}

// aeadCipher adapts a cipher.AEAD constructor to Cipher using a nonce||ciphertext blob.
type aeadCipher struct {
	name string
	new  func(key []byte) (cipher.AEAD, error)
}

// XChaCha20Poly1305 returns the default cipher: XChaCha20-Poly1305 with 24-byte random nonces.
func XChaCha20Poly1305() Cipher {
	return aeadCipher{name: "xchacha20-poly1305", new: chacha20poly1305.NewX}
}

// AES256GCM returns an AES-256-GCM cipher with 12-byte random nonces.
func AES256GCM() Cipher {
	return aeadCipher{name: "aes-256-gcm", new: newAESGCM}
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (c aeadCipher) Name() string {
	return c.name
}

func (c aeadCipher) aead(key []byte) (cipher.AEAD, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeySize, len(key))
	}
	a, err := c.new(key)
	if err != nil {
		// Constructor errors only describe the key length, never its contents.
		return nil, fmt.Errorf("keyring: failed to create %s cipher: %w", c.name, err)
	}
	return a, nil
}

func (c aeadCipher) Seal(key, plaintext, aad []byte) ([]byte, error) {
	a, err := c.aead(key)
	if err != nil {
		return nil, err
	}

	nonceSize := a.NonceSize()
	blob := make([]byte, nonceSize, nonceSize+len(plaintext)+a.Overhead())
	if _, err := rand.Read(blob); err != nil {
		return nil, fmt.Errorf("keyring: failed to generate nonce: %w", err)
	}
	return a.Seal(blob, blob[:nonceSize], plaintext, aad), nil
}

func (c aeadCipher) Open(key, blob, aad []byte) ([]byte, error) {
	a, err := c.aead(key)
	if err != nil {
		return nil, err
	}

	nonceSize := a.NonceSize()
	if len(blob) < nonceSize+a.Overhead() {
		return nil, fmt.Errorf("%w: payload too short", ErrAuthenticationFailed)
	}
	plaintext, err := a.Open(nil, blob[:nonceSize], blob[nonceSize:], aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAuthenticationFailed, c.name)
	}
	return plaintext, nil
}
