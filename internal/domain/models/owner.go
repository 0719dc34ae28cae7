// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// OwnerRole is the access level of a portal owner account.
type OwnerRole string

const (
	// OwnerRoleOwner has full portal access including owner management.
	OwnerRoleOwner OwnerRole = "owner"
	// OwnerRoleAdmin can manage tenant organizations.
	OwnerRoleAdmin OwnerRole = "admin"
)

// Owner is the key-value store representation of a portal super-admin
// account. Owners manage tenant organizations and are unrelated to them.
type Owner struct {
	UID          string     `json:"uid"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash"`
	Role         OwnerRole  `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
