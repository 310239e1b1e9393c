// Package keyring encrypts byte strings with rotating symmetric keys.
//
// Keys are organised in key groups. Each group holds any number of keys, each
// identified by a key id, and names one of them active. An Encryptor is bound to
// one group: it seals new values with the active key and opens values sealed
// with any key still present in the group.
//
// Encrypted values are textual envelopes of the form
//
//	$<keyId>$<payload>
//
// where payload is the unpadded base64url encoding of the cipher output. The key
// id travels with the ciphertext, so rotating a group only means changing its
// active id: old envelopes keep decrypting while NeedsReEncrypt reports them
// as stale.
package keyring

import (
	"fmt"
	"log/slog"
)

// Encryptor seals and opens envelopes for a single key group.
// It holds no mutable state and is safe for concurrent use.
type Encryptor struct {
	group     string
	registry  *Registry
	cipher    Cipher
	logger    *slog.Logger
	telemetry *telemetry
}

// NewEncryptor creates an Encryptor bound to keyGroup.
// Returns an error if keyGroup is empty or registry is nil.
func NewEncryptor(keyGroup string, registry *Registry, opts ...Option) (*Encryptor, error) {
	if keyGroup == "" {
		return nil, fmt.Errorf("%w: key group must not be empty", ErrInvalidKeyGroup)
	}
	if registry == nil {
		return nil, fmt.Errorf("keyring: NewEncryptor registry is nil")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t, err := newTelemetry(o.meterProvider, o.tracerProvider)
	if err != nil {
		return nil, err
	}

	return &Encryptor{
		group:     keyGroup,
		registry:  registry,
		cipher:    o.cipher,
		logger:    o.logger.With(slog.String("key_group", keyGroup)),
		telemetry: t,
	}, nil
}

// New builds a Registry from hex-encoded keys (key group => key id => hex key)
// and active key ids (key group => key id), and binds an Encryptor to keyGroup.
func New(keyGroup string, keys map[string]map[string]string, activeKeyIDs map[string]string, opts ...Option) (*Encryptor, error) {
	registry, err := NewRegistry(keys, activeKeyIDs)
	if err != nil {
		return nil, err
	}
	return NewEncryptor(keyGroup, registry, opts...)
}

// KeyGroup returns the key group the encryptor is bound to.
func (e *Encryptor) KeyGroup() string {
	return e.group
}

// Registry returns the registry the encryptor reads keys from.
func (e *Encryptor) Registry() *Registry {
	return e.registry
}

// associatedData binds a sealed payload to its key group and key id, so a payload
// cannot be moved to another group or relabelled with another id.
func associatedData(group, keyID string) []byte {
	aad := make([]byte, 0, len(group)+len(keyID)+1)
	aad = append(aad, group...)
	aad = append(aad, 0)
	aad = append(aad, keyID...)
	return aad
}
