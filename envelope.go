package keyring

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// separator delimits the envelope fields: $<keyId>$<payload>.
const separator = "$"

// payloadEncoding is unpadded base64url. Its alphabet has no separator byte.
// The decoder skips CR and LF even in Strict mode, so decodePayload also requires
// the payload to be the canonical encoding of the decoded blob.
var payloadEncoding = base64.RawURLEncoding.Strict()

// Envelope is a parsed `$<keyId>$<payload>` value.
type Envelope struct {
	// KeyID identifies the key, within the encryptor's key group, that sealed Payload.
	KeyID string

	// Payload is the sealed cipher blob (nonce, ciphertext and tag).
	Payload []byte
}

// String formats the envelope for storage in a text column.
func (e Envelope) String() string {
	return formatEnvelope(e.KeyID, payloadEncoding.EncodeToString(e.Payload))
}

// ParseEnvelope parses s into its key id and decoded payload.
// It returns ErrInvalidEnvelope for structural errors and ErrAuthenticationFailed
// when the payload text is corrupted.
func ParseEnvelope(s string) (Envelope, error) {
	keyID, payload, err := splitEnvelope(s)
	if err != nil {
		return Envelope{}, err
	}
	blob, err := decodePayload(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{KeyID: keyID, Payload: blob}, nil
}

// KeyIDOf returns the key id of envelope s without decoding its payload.
func KeyIDOf(s string) (string, error) {
	keyID, _, err := splitEnvelope(s)
	return keyID, err
}

func formatEnvelope(keyID, payload string) string {
	var b strings.Builder
	b.Grow(len(keyID) + len(payload) + 2*len(separator))
	b.WriteString(separator)
	b.WriteString(keyID)
	b.WriteString(separator)
	b.WriteString(payload)
	return b.String()
}

// splitEnvelope requires exactly three fields: an empty marker, a non-empty key id
// and the payload text.
func splitEnvelope(s string) (keyID, payload string, err error) {
	fields := strings.Split(s, separator)
	if len(fields) != 3 {
		return "", "", fmt.Errorf("%w: expected 3 fields, got %d", ErrInvalidEnvelope, len(fields))
	}
	if fields[0] != "" {
		return "", "", fmt.Errorf("%w: missing leading %q", ErrInvalidEnvelope, separator)
	}
	if fields[1] == "" {
		return "", "", fmt.Errorf("%w: empty key id", ErrInvalidEnvelope)
	}
	return fields[1], fields[2], nil
}

// decodePayload accepts only canonical payload text: any inserted, appended or
// altered byte is corrupted data.
func decodePayload(payload string) ([]byte, error) {
	blob, err := payloadEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupted payload", ErrAuthenticationFailed)
	}
	if payloadEncoding.EncodeToString(blob) != payload {
		return nil, fmt.Errorf("%w: non-canonical payload", ErrAuthenticationFailed)
	}
	return blob, nil
}
