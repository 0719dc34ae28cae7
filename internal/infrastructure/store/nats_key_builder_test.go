// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	kb := NewKeyBuilder("")

	tests := []string{
		"organization/org-123",
		"index/email/user@example.com",
		"index/meeting-email/meeting-123/user@example.com",
	}

	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			encoded, err := kb.EncodeKey(key)
			if err != nil {
				t.Fatalf("EncodeKey failed: %v", err)
			}
			if strings.ContainsAny(encoded, "/@") {
				t.Errorf("encoded key %q contains characters NATS KV does not allow", encoded)
			}

			decoded, err := kb.DecodeKey(encoded)
			if err != nil {
				t.Fatalf("DecodeKey failed: %v", err)
			}
			if decoded != "/"+key {
				t.Errorf("expected %q, got %q", "/"+key, decoded)
			}
		})
	}
}

func TestEntityKeyEncoded(t *testing.T) {
	kb := NewKeyBuilder("")

	key := kb.EntityKeyEncoded(KeyPrefixRegistrant, "reg-123")
	decoded, err := kb.DecodeKey(key)
	if err != nil {
		t.Fatalf("DecodeKey failed: %v", err)
	}
	if decoded != "/registrant/reg-123" {
		t.Errorf("unexpected decoded key %q", decoded)
	}
}

func TestCompoundIndexKeyEncoded(t *testing.T) {
	kb := NewKeyBuilder("")

	key := kb.CompoundIndexKeyEncoded(KeyPrefixIndexMeetingEmail, "meeting-1", "ada@example.com")
	decoded, err := kb.DecodeKey(key)
	if err != nil {
		t.Fatalf("DecodeKey failed: %v", err)
	}
	if decoded != "/index/meeting-email/meeting-1/ada@example.com" {
		t.Errorf("unexpected decoded key %q", decoded)
	}
}
