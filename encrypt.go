package keyring

import (
	"context"
	"log/slog"
)

// Encrypt seals plaintext with the active key of the bound group and returns the
// envelope `$<keyId>$<payload>`. Every call uses a fresh nonce, so encrypting the
// same plaintext twice yields different envelopes.
//
// It fails with ErrNoActiveKey if the group has no active id, and with
// ErrUnknownKeyID if the active id has no key.
func (e *Encryptor) Encrypt(ctx context.Context, plaintext []byte) (envelope string, err error) {
	var keyID string
	ctx, done := e.telemetry.start(ctx, opEncrypt, e.group)
	defer func() { done(keyID, err) }()

	keyID, err = e.registry.ActiveKeyID(e.group)
	if err != nil {
		e.logger.ErrorContext(ctx, "no active key configured", slog.Any("error", err))
		return "", err
	}

	var blob []byte
	err = e.registry.withKey(e.group, keyID, func(key []byte) error {
		var sealErr error
		blob, sealErr = e.cipher.Seal(key, plaintext, associatedData(e.group, keyID))
		return sealErr
	})
	if err != nil {
		e.logger.ErrorContext(ctx, "encryption failed",
			slog.String("key_id", keyID),
			slog.Any("error", err),
		)
		return "", err
	}

	return formatEnvelope(keyID, payloadEncoding.EncodeToString(blob)), nil
}

// EncryptString is Encrypt for string plaintexts.
func (e *Encryptor) EncryptString(ctx context.Context, plaintext string) (string, error) {
	return e.Encrypt(ctx, []byte(plaintext))
}
