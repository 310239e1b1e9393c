package keyring

import (
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Config is the construction input of an Encryptor as it appears in
// application configuration.
//
//	key_group: user-emails
//	keys:
//	  user-emails:
//	    "1": 000102...1f
//	    "2": 202122...3f
//	active_key_ids:
//	  user-emails: "2"
//
// Rotating a group means adding its new key and changing its active id.
type Config struct {
	// KeyGroup is the group the encryptor is bound to.
	KeyGroup string `yaml:"key_group" json:"key_group"`

	// Keys maps key group => key id => hex-encoded 32-byte key.
	Keys map[string]map[string]string `yaml:"keys" json:"keys"`

	// ActiveKeyIDs maps key group => key id used for new encryptions.
	ActiveKeyIDs map[string]string `yaml:"active_key_ids" json:"active_key_ids"`
}

// ParseConfig decodes a YAML (or JSON) document into a Config.
// Parse errors never quote key material.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		// yaml errors may quote the offending line, which can hold a key.
		return Config{}, fmt.Errorf("keyring: invalid config document")
	}
	return cfg, nil
}

// NewFromConfig builds an Encryptor from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Encryptor, error) {
	return New(cfg.KeyGroup, cfg.Keys, cfg.ActiveKeyIDs, opts...)
}

// LogValue implements slog.LogValuer. Key material is replaced by key ids.
func (c Config) LogValue() slog.Value {
	groups := make([]slog.Attr, 0, len(c.Keys))
	for group, ids := range c.Keys {
		names := make([]string, 0, len(ids))
		for id := range ids {
			names = append(names, id)
		}
		groups = append(groups, slog.Any(group, names))
	}
	return slog.GroupValue(
		slog.String("key_group", c.KeyGroup),
		slog.Attr{Key: "key_ids", Value: slog.GroupValue(groups...)},
		slog.Any("active_key_ids", c.ActiveKeyIDs),
	)
}

// String implements fmt.Stringer without exposing key material.
func (c Config) String() string {
	return c.LogValue().String()
}

// GoString implements fmt.GoStringer so %#v does not print key material either.
func (c Config) GoString() string {
	return c.String()
}
