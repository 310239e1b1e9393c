package keyring

import (
	"context"
	"log/slog"
)

// Decrypt opens an envelope produced by Encrypt. Any key id present in the bound
// group is accepted, not only the active one.
//
// Errors:
//   - ErrInvalidEnvelope if envelope is not `$<keyId>$<payload>`
//   - ErrUnknownKeyID if the key id is not in the bound group
//   - ErrAuthenticationFailed if the payload was altered, corrupted or sealed
//     with a different key
func (e *Encryptor) Decrypt(ctx context.Context, envelope string) (plaintext []byte, err error) {
	var keyID string
	ctx, done := e.telemetry.start(ctx, opDecrypt, e.group)
	defer func() { done(keyID, err) }()

	keyID, payload, err := splitEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	err = e.registry.withKey(e.group, keyID, func(key []byte) error {
		blob, decodeErr := decodePayload(payload)
		if decodeErr != nil {
			return decodeErr
		}
		var openErr error
		plaintext, openErr = e.cipher.Open(key, blob, associatedData(e.group, keyID))
		return openErr
	})
	if err != nil {
		switch {
		case IsAuthenticationFailed(err):
			e.logger.WarnContext(ctx, "envelope failed authentication", slog.String("key_id", keyID))
		case IsUnknownKeyID(err):
			e.logger.WarnContext(ctx, "envelope references unknown key", slog.String("key_id", keyID))
		}
		return nil, err
	}

	return plaintext, nil
}

// DecryptString is Decrypt returning the plaintext as a string.
func (e *Encryptor) DecryptString(ctx context.Context, envelope string) (string, error) {
	plaintext, err := e.Decrypt(ctx, envelope)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
