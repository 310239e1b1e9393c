package keyring

import "errors"

var (
	// ErrUnknownKeyID is returned when a key ID is not present in the bound key group.
	ErrUnknownKeyID = errors.New("keyring: unknown key id")

	// ErrInvalidEnvelope is returned when a value does not split into the three
	// `$`-delimited envelope fields.
	ErrInvalidEnvelope = errors.New("keyring: invalid envelope format")

	// ErrAuthenticationFailed is returned when the ciphertext does not verify
	// (tampered data, wrong key, or corrupted payload).
	ErrAuthenticationFailed = errors.New("keyring: authentication failed")

	// ErrInvalidKeySize is returned when key material is not 32 bytes.
	ErrInvalidKeySize = errors.New("keyring: invalid key size, must be 32 bytes")

	// ErrInvalidKeyMaterial is returned when key material is not valid hex.
	ErrInvalidKeyMaterial = errors.New("keyring: invalid key material")

	// ErrInvalidKeyID is returned when a key ID is empty or contains the envelope delimiter.
	ErrInvalidKeyID = errors.New("keyring: invalid key id")

	// ErrInvalidKeyGroup is returned when a key group name is empty.
	ErrInvalidKeyGroup = errors.New("keyring: invalid key group")

	// ErrNoActiveKey is returned when a key group has no active key ID configured.
	ErrNoActiveKey = errors.New("keyring: no active key for group")

	// ErrRegistryDestroyed is returned by lookups after Registry.Destroy.
	ErrRegistryDestroyed = errors.New("keyring: registry destroyed")
)

// IsUnknownKeyID returns true if the error is or wraps ErrUnknownKeyID.
func IsUnknownKeyID(err error) bool {
	return errors.Is(err, ErrUnknownKeyID)
}

// IsInvalidEnvelope returns true if the error is or wraps ErrInvalidEnvelope.
func IsInvalidEnvelope(err error) bool {
	return errors.Is(err, ErrInvalidEnvelope)
}

// IsAuthenticationFailed returns true if the error is or wraps ErrAuthenticationFailed.
func IsAuthenticationFailed(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed)
}

// IsInvalidKeySize returns true if the error is or wraps ErrInvalidKeySize.
func IsInvalidKeySize(err error) bool {
	return errors.Is(err, ErrInvalidKeySize)
}

// IsInvalidKeyMaterial returns true if the error is or wraps ErrInvalidKeyMaterial.
func IsInvalidKeyMaterial(err error) bool {
	return errors.Is(err, ErrInvalidKeyMaterial)
}

// IsInvalidKeyID returns true if the error is or wraps ErrInvalidKeyID.
func IsInvalidKeyID(err error) bool {
	return errors.Is(err, ErrInvalidKeyID)
}

// IsNoActiveKey returns true if the error is or wraps ErrNoActiveKey.
func IsNoActiveKey(err error) bool {
	return errors.Is(err, ErrNoActiveKey)
}

// IsRegistryDestroyed returns true if the error is or wraps ErrRegistryDestroyed.
func IsRegistryDestroyed(err error) bool {
	return errors.Is(err, ErrRegistryDestroyed)
}
