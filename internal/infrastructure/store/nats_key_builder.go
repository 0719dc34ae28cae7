// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
)

// Common key prefixes
const (
	// Entity prefixes
	KeyPrefixOrganization = "organization"
	KeyPrefixMeeting      = "meeting"
	KeyPrefixRegistrant   = "registrant"
	KeyPrefixOwner        = "owner"

	// Index prefixes
	KeyPrefixIndex             = "index"
	KeyPrefixIndexEmail        = "email"
	KeyPrefixIndexSubdomain    = "subdomain"
	KeyPrefixIndexMeetingEmail = "meeting-email"
)

// KeyBuilder provides utilities for building consistent NATS KV keys
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with an optional prefix
func NewKeyBuilder(prefix string) *KeyBuilder {
	return &KeyBuilder{
		prefix: prefix,
	}
}

// EntityKeyEncoded builds an encoded key for an entity (e.g., "registrant/uid-123")
func (kb *KeyBuilder) EntityKeyEncoded(entityType, uid string) string {
	key := fmt.Sprintf("%s/%s", entityType, uid)
	return kb.applyPrefix(key, true)
}

// IndexKeyEncoded builds an encoded key for a single-valued index
// (e.g., "index/email/user@example.com")
func (kb *KeyBuilder) IndexKeyEncoded(indexType, indexValue string) string {
	key := fmt.Sprintf("%s/%s/%s", KeyPrefixIndex, indexType, indexValue)
	return kb.applyPrefix(key, true)
}

// CompoundIndexKeyEncoded builds an encoded key for a two-valued index
// (e.g., "index/meeting-email/meeting-uid/user@example.com")
func (kb *KeyBuilder) CompoundIndexKeyEncoded(indexType, first, second string) string {
	key := fmt.Sprintf("%s/%s/%s/%s", KeyPrefixIndex, indexType, first, second)
	return kb.applyPrefix(key, true)
}

// applyPrefix adds the builder's prefix if one is set
func (kb *KeyBuilder) applyPrefix(key string, encode bool) string {
	var fullKey string
	if kb.prefix == "" {
		fullKey = key
	} else {
		fullKey = fmt.Sprintf("%s/%s", kb.prefix, key)
	}

	if encode {
		encodedKey, err := kb.EncodeKey(fullKey)
		if err != nil {
			slog.Error("error encoding key", logging.ErrKey, err, "key", fullKey)
			return fullKey
		}
		return encodedKey
	}
	return fullKey
}

// EncodeKey encodes a key for NATS KV store.
// From https://github.com/ripienaar/encodedkv
//
// NATS limitations: https://docs.nats.io/nats-concepts/jetstream/key-value-store#notes
func (kb *KeyBuilder) EncodeKey(key string) (string, error) {
	res := []string{}
	for _, part := range strings.Split(strings.TrimPrefix(key, "/"), "/") {
		if part == ">" || part == "*" {
			res = append(res, part)
			continue
		}

		dst := make([]byte, base64.StdEncoding.EncodedLen(len(part)))
		base64.StdEncoding.Encode(dst, []byte(part))
		res = append(res, string(dst))
	}

	if len(res) == 0 {
		return "", nats.ErrInvalidKey
	}

	return strings.Join(res, "."), nil
}

// DecodeKey decodes a key for NATS KV store.
// From https://github.com/ripienaar/encodedkv
//
// NATS limitations: https://docs.nats.io/nats-concepts/jetstream/key-value-store#notes
func (kb *KeyBuilder) DecodeKey(key string) (string, error) {
	res := []string{}
	for _, part := range strings.Split(key, ".") {
		k, err := base64.StdEncoding.DecodeString(part)
		if err != nil {
			return "", err
		}

		res = append(res, string(k))
	}

	if len(res) == 0 {
		return "", nats.ErrInvalidKey
	}

	return fmt.Sprintf("/%s", strings.Join(res, "/")), nil
}
