package keyring

import (
	"context"
	"fmt"

	"github.com/rbaliyan/config/codec"
)

// transformerName is the name a Transformer contributes to a codec chain.
const transformerName = "encrypted"

// Transformer seals and opens serialized config values as textual envelopes.
// It plugs into a codec chain after a serializer such as JSON.
//
// Transformer is safe for concurrent use.
type Transformer struct {
	encryptor *Encryptor
}

// Compile-time interface check.
var _ codec.Transformer = (*Transformer)(nil)

// NewTransformer returns a Transformer that encrypts with encryptor.
func NewTransformer(encryptor *Encryptor) (*Transformer, error) {
	if encryptor == nil {
		return nil, fmt.Errorf("keyring: NewTransformer encryptor is nil")
	}
	return &Transformer{encryptor: encryptor}, nil
}

// Name returns "encrypted".
func (t *Transformer) Name() string {
	return transformerName
}

// Transform seals data into an envelope.
func (t *Transformer) Transform(ctx context.Context, data []byte) ([]byte, error) {
	envelope, err := t.encryptor.Encrypt(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("keyring: encrypt failed: %w", err)
	}
	return []byte(envelope), nil
}

// Reverse opens an envelope produced by Transform.
func (t *Transformer) Reverse(ctx context.Context, data []byte) ([]byte, error) {
	plaintext, err := t.encryptor.Decrypt(ctx, string(data))
	if err != nil {
		return nil, fmt.Errorf("keyring: decrypt failed: %w", err)
	}
	return plaintext, nil
}

// NewCodec wraps inner with envelope encryption. On Encode, inner serializes the
// value and the result is sealed; on Decode, the envelope is opened and inner
// deserializes the plaintext. The codec name is "encrypted:<inner>", e.g.
// "encrypted:json".
func NewCodec(inner codec.Codec, encryptor *Encryptor) (codec.Codec, error) {
	if inner == nil {
		return nil, fmt.Errorf("keyring: NewCodec inner codec is nil")
	}
	t, err := NewTransformer(encryptor)
	if err != nil {
		return nil, err
	}
	return codec.NewChain(inner, t), nil
}
