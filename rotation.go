package keyring

import (
	"context"
	"log/slog"
)

// NeedsReEncrypt reports whether envelope was sealed with a key other than the
// group's active key. Only the key id is parsed; the payload is not verified.
//
// The check never re-encrypts. Callers rotating lazily decrypt, check, and
// persist the result of Encrypt when NeedsReEncrypt returns true.
func (e *Encryptor) NeedsReEncrypt(ctx context.Context, envelope string) (stale bool, err error) {
	var keyID string
	ctx, done := e.telemetry.start(ctx, opNeedsReEncrypt, e.group)
	defer func() { done(keyID, err) }()

	keyID, err = KeyIDOf(envelope)
	if err != nil {
		return false, err
	}

	active, err := e.registry.ActiveKeyID(e.group)
	if err != nil {
		return false, err
	}

	if keyID != active {
		e.logger.DebugContext(ctx, "envelope sealed with inactive key",
			slog.String("key_id", keyID),
			slog.String("active_key_id", active),
		)
		return true, nil
	}
	return false, nil
}
