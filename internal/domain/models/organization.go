// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Organization is the key-value store representation of a tenant organization.
type Organization struct {
	UID              string     `json:"uid"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"password_hash"`
	Subdomain        string     `json:"subdomain"`
	ZoomAccountID    string     `json:"zoom_account_id,omitempty"`
	ZoomClientID     string     `json:"zoom_client_id,omitempty"`
	ZoomClientSecret string     `json:"zoom_client_secret,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// ZoomCredentials is the Server-to-Server OAuth credential triple of an
// organization. Credentials are never validated at write time, so an
// incomplete or wrong triple only surfaces on the first sync attempt.
type ZoomCredentials struct {
	AccountID    string
	ClientID     string
	ClientSecret string
}

// Complete reports whether all three credential fields are populated.
func (c ZoomCredentials) Complete() bool {
	return c.AccountID != "" && c.ClientID != "" && c.ClientSecret != ""
}

// Fingerprint returns a stable digest of the credential triple, used to key
// cached API clients so that editing credentials rotates the cache entry.
func (c ZoomCredentials) Fingerprint() string {
	sum := sha256.Sum256([]byte(c.AccountID + "\x00" + c.ClientID + "\x00" + c.ClientSecret))
	return hex.EncodeToString(sum[:])
}

// ZoomCredentials returns the organization's credential triple.
func (o *Organization) ZoomCredentials() ZoomCredentials {
	return ZoomCredentials{
		AccountID:    o.ZoomAccountID,
		ClientID:     o.ZoomClientID,
		ClientSecret: o.ZoomClientSecret,
	}
}

// HasZoomCredentials reports whether the organization has a complete
// Server-to-Server OAuth credential triple configured.
func (o *Organization) HasZoomCredentials() bool {
	return o.ZoomCredentials().Complete()
}
