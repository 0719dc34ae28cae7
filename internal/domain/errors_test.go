// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorMessage(t *testing.T) {
	base := errors.New("connection refused")

	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "message only",
			err:      NewNotFoundError("organization not found"),
			expected: "organization not found",
		},
		{
			name:     "message with wrapped error",
			err:      NewInternalError("failed to store registrant", base),
			expected: "failed to store registrant: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	base := errors.New("key not found")
	err := NewNotFoundError("meeting not found", base)

	assert.True(t, errors.Is(err, base))
}

func TestGetErrorType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"validation", NewValidationError("bad input"), ErrorTypeValidation},
		{"unauthorized", NewUnauthorizedError("invalid credentials"), ErrorTypeUnauthorized},
		{"forbidden", NewForbiddenError("owner role required"), ErrorTypeForbidden},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound},
		{"conflict", NewConflictError("already registered"), ErrorTypeConflict},
		{"unavailable", NewUnavailableError("store not ready"), ErrorTypeUnavailable},
		{"plain error falls back to internal", errors.New("boom"), ErrorTypeInternal},
		{"wrapped domain error", fmt.Errorf("context: %w", NewConflictError("dup")), ErrorTypeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorType(tt.err))
		})
	}
}
