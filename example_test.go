package keyring_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/rbaliyan/keyring"
)

// hexKey returns a deterministic 32-byte key in hex. Real keys come from a
// secure random source.
func hexKey(seed byte) string {
	var b strings.Builder
	for i := 0; i < 32; i++ {
		fmt.Fprintf(&b, "%02x", byte(i)+seed)
	}
	return b.String()
}

func ExampleNew() {
	ctx := context.Background()

	enc, err := keyring.New("user-emails",
		map[string]map[string]string{"user-emails": {"1": hexKey(0)}},
		map[string]string{"user-emails": "1"},
	)
	if err != nil {
		panic(err)
	}

	envelope, err := enc.EncryptString(ctx, "alice@example.com")
	if err != nil {
		panic(err)
	}
	fmt.Println("Key id prefix:", envelope[:3])

	plaintext, err := enc.DecryptString(ctx, envelope)
	if err != nil {
		panic(err)
	}
	fmt.Println("Decrypted:", plaintext)

	// Output:
	// Key id prefix: $1$
	// Decrypted: alice@example.com
}

func ExampleEncryptor_NeedsReEncrypt() {
	ctx := context.Background()
	keys := map[string]map[string]string{
		"user-emails": {"1": hexKey(0), "2": hexKey(100)},
	}

	// Data written while key 1 was active.
	before, err := keyring.New("user-emails", keys, map[string]string{"user-emails": "1"})
	if err != nil {
		panic(err)
	}
	stored, err := before.EncryptString(ctx, "alice@example.com")
	if err != nil {
		panic(err)
	}

	// Rotate: key 2 becomes active, key 1 stays for decryption.
	after, err := keyring.New("user-emails", keys, map[string]string{"user-emails": "2"})
	if err != nil {
		panic(err)
	}

	plaintext, err := after.Decrypt(ctx, stored)
	if err != nil {
		panic(err)
	}
	stale, err := after.NeedsReEncrypt(ctx, stored)
	if err != nil {
		panic(err)
	}
	fmt.Println("Stale:", stale)

	if stale {
		stored, err = after.Encrypt(ctx, plaintext)
		if err != nil {
			panic(err)
		}
	}
	stale, _ = after.NeedsReEncrypt(ctx, stored)
	fmt.Println("Stale after refresh:", stale)

	// Output:
	// Stale: true
	// Stale after refresh: false
}

func ExampleEncryptor_Decrypt_errors() {
	ctx := context.Background()
	enc, err := keyring.New("g",
		map[string]map[string]string{"g": {"1": hexKey(0)}},
		map[string]string{"g": "1"},
	)
	if err != nil {
		panic(err)
	}

	_, err = enc.Decrypt(ctx, "not-an-envelope")
	fmt.Println("invalid envelope:", keyring.IsInvalidEnvelope(err))

	_, err = enc.Decrypt(ctx, "$99$abc")
	fmt.Println("unknown key id:", keyring.IsUnknownKeyID(err))

	// Output:
	// invalid envelope: true
	// unknown key id: true
}
