package keyring

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/awnumar/memguard"
)

// keySize is the required key size in bytes for every supported cipher.
const keySize = 32

// Registry maps (key group, key id) to key material and each key group to
// its active key id. It is immutable after construction and safe for
// concurrent use.
//
// Key material is held in memguard enclaves: encrypted while at rest in memory
// and only decrypted into a locked buffer for the duration of a single seal or
// open call.
type Registry struct {
	mu        sync.RWMutex
	keys      map[string]map[string]*memguard.Enclave
	active    map[string]string
	destroyed bool
	err       error // deferred validation error from options
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRawKey adds binary key material for id in group.
// The key must be 32 bytes. The bytes are copied; the caller keeps ownership of key.
func WithRawKey(group, id string, key []byte) RegistryOption {
	return func(r *Registry) {
		if r.err != nil {
			return
		}
		if len(key) != keySize {
			r.err = fmt.Errorf("%w: key %q in group %q has %d bytes", ErrInvalidKeySize, id, group, len(key))
			return
		}
		b := make([]byte, keySize)
		copy(b, key)
		r.err = r.add(group, id, b)
	}
}

// NewRegistry creates a Registry from hex-encoded keys (key group => key id => hex key)
// and the active key id of each group (key group => key id).
//
// Active ids are not checked against keys: a group whose active id has no key
// fails with ErrUnknownKeyID on its first encryption.
func NewRegistry(keys map[string]map[string]string, activeKeyIDs map[string]string, opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		keys:   make(map[string]map[string]*memguard.Enclave, len(keys)),
		active: make(map[string]string, len(activeKeyIDs)),
	}

	for group, ids := range keys {
		for id, encoded := range ids {
			b, err := hex.DecodeString(encoded)
			if err != nil {
				memguard.WipeBytes(b)
				// The decoder error quotes the offending byte, so it is not wrapped.
				return nil, fmt.Errorf("%w: key %q in group %q is not valid hex", ErrInvalidKeyMaterial, id, group)
			}
			if len(b) != keySize {
				memguard.WipeBytes(b)
				return nil, fmt.Errorf("%w: key %q in group %q has %d bytes", ErrInvalidKeySize, id, group, len(b))
			}
			if err := r.add(group, id, b); err != nil {
				return nil, err
			}
		}
	}

	for group, id := range activeKeyIDs {
		if group == "" {
			return nil, fmt.Errorf("%w: active key group must not be empty", ErrInvalidKeyGroup)
		}
		r.active[group] = id
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.err != nil {
		return nil, r.err
	}

	return r, nil
}

// add seals b into an enclave. b is wiped whether or not add succeeds.
func (r *Registry) add(group, id string, b []byte) error {
	if group == "" {
		memguard.WipeBytes(b)
		return fmt.Errorf("%w: key group must not be empty", ErrInvalidKeyGroup)
	}
	if err := validateKeyID(id); err != nil {
		memguard.WipeBytes(b)
		return err
	}
	if _, ok := r.keys[group][id]; ok {
		memguard.WipeBytes(b)
		return fmt.Errorf("%w: duplicate key %q in group %q", ErrInvalidKeyID, id, group)
	}
	if r.keys[group] == nil {
		r.keys[group] = make(map[string]*memguard.Enclave)
	}
	r.keys[group][id] = memguard.NewEnclave(b)
	return nil
}

func validateKeyID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: key id must not be empty", ErrInvalidKeyID)
	}
	if strings.Contains(id, separator) {
		return fmt.Errorf("%w: key id %q contains %q", ErrInvalidKeyID, id, separator)
	}
	return nil
}

// ActiveKeyID returns the key id used for new encryptions in group.
// ErrNoActiveKey indicates a configuration defect and should not be retried.
func (r *Registry) ActiveKeyID(group string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.destroyed {
		return "", ErrRegistryDestroyed
	}
	id, ok := r.active[group]
	if !ok || id == "" {
		return "", fmt.Errorf("%w: %q", ErrNoActiveKey, group)
	}
	return id, nil
}

// HasKey reports whether group holds a key with the given id.
func (r *Registry) HasKey(group, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.destroyed {
		return false
	}
	_, ok := r.keys[group][id]
	return ok
}

// KeyIDs returns the sorted key ids of group.
func (r *Registry) KeyIDs(group string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.destroyed {
		return nil
	}
	ids := make([]string, 0, len(r.keys[group]))
	for id := range r.keys[group] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Groups returns the sorted names of all groups that hold keys.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.destroyed {
		return nil
	}
	groups := make([]string, 0, len(r.keys))
	for g := range r.keys {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}

// withKey decrypts the key for (group, id) into a locked buffer, calls fn with its
// bytes and destroys the buffer afterwards. fn must not retain the slice.
func (r *Registry) withKey(group, id string, fn func(key []byte) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.destroyed {
		return ErrRegistryDestroyed
	}
	enclave, ok := r.keys[group][id]
	if !ok {
		return fmt.Errorf("%w: %q in group %q", ErrUnknownKeyID, id, group)
	}

	buf, err := enclave.Open()
	if err != nil {
		return fmt.Errorf("keyring: failed to open key %q: %w", id, err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}

// Destroy releases all key material. Lookups fail with ErrRegistryDestroyed afterwards.
// Destroy is idempotent.
func (r *Registry) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return
	}
	r.keys = nil
	r.active = nil
	r.destroyed = true
}
