// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate("org-1", "admin@acme.example", SubjectKindOrganization, "")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "org-1", claims.SubjectUID)
	assert.Equal(t, "admin@acme.example", claims.Email)
	assert.Equal(t, SubjectKindOrganization, claims.Kind)
	assert.Empty(t, claims.Role)
}

func TestTokenOwnerRole(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate("owner-1", "owner@example.com", SubjectKindOwner, "admin")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, SubjectKindOwner, claims.Kind)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate("org-1", "a@b.c", SubjectKindOrganization, "")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Generate("org-1", "a@b.c", SubjectKindOrganization, "")
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, err := tm.Validate("not-a-token")
	assert.Error(t, err)
}
