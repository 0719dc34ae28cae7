// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/auth"
)

func newOrganizationService(
	orgRepo *domain.MockOrganizationRepository,
	provider *domain.MockZoomProvider,
	builder *domain.MockMessageBuilder,
) *OrganizationService {
	return NewOrganizationService(
		orgRepo,
		provider,
		builder,
		auth.NewTokenManager("test-secret", 0),
		auth.NewPasswordHasher(),
	)
}

func TestOrganizationSignup(t *testing.T) {
	orgRepo := &domain.MockOrganizationRepository{}
	builder := &domain.MockMessageBuilder{}
	service := newOrganizationService(orgRepo, &domain.MockZoomProvider{}, builder)

	orgRepo.On("GetBySubdomain", mock.Anything, "acme-events").
		Return(nil, domain.NewNotFoundError("organization not found"))
	orgRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Organization")).Return(nil)
	builder.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	organization, token, err := service.Signup(context.Background(), &SignupOrganizationRequest{
		Name:     "Acme Events",
		Email:    "Admin@Acme.example",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotNil(t, organization)

	assert.NotEmpty(t, organization.UID)
	assert.Equal(t, "admin@acme.example", organization.Email)
	assert.Equal(t, "acme-events", organization.Subdomain)
	assert.True(t, organization.IsActive)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "correct horse battery", organization.PasswordHash)

	orgRepo.AssertExpectations(t)
}

func TestOrganizationSignupSubdomainCollision(t *testing.T) {
	orgRepo := &domain.MockOrganizationRepository{}
	builder := &domain.MockMessageBuilder{}
	service := newOrganizationService(orgRepo, &domain.MockZoomProvider{}, builder)

	orgRepo.On("GetBySubdomain", mock.Anything, "acme").
		Return(&models.Organization{UID: "other", Subdomain: "acme"}, nil)
	orgRepo.On("GetBySubdomain", mock.Anything, "acme-2").
		Return(nil, domain.NewNotFoundError("organization not found"))
	orgRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Organization")).Return(nil)
	builder.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	organization, _, err := service.Signup(context.Background(), &SignupOrganizationRequest{
		Name:     "Acme",
		Email:    "admin@acme.example",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-2", organization.Subdomain)
}

func TestOrganizationSignupReservedSubdomain(t *testing.T) {
	orgRepo := &domain.MockOrganizationRepository{}
	builder := &domain.MockMessageBuilder{}
	service := newOrganizationService(orgRepo, &domain.MockZoomProvider{}, builder)

	orgRepo.On("GetBySubdomain", mock.Anything, "admin-2").
		Return(nil, domain.NewNotFoundError("organization not found"))
	orgRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Organization")).Return(nil)
	builder.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	organization, _, err := service.Signup(context.Background(), &SignupOrganizationRequest{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin-2", organization.Subdomain)
	orgRepo.AssertNotCalled(t, "GetBySubdomain", mock.Anything, "admin")
}

func TestOrganizationLogin(t *testing.T) {
	hasher := auth.NewPasswordHasher()
	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)

	stored := &models.Organization{
		UID:          "org-1",
		Email:        "admin@acme.example",
		PasswordHash: hash,
		IsActive:     true,
	}

	tests := []struct {
		name     string
		password string
		org      *models.Organization
		wantOK   bool
		wantErr  domain.ErrorType
	}{
		{name: "valid credentials", password: "correct horse battery", org: stored, wantOK: true},
		{name: "wrong password", password: "nope", org: stored, wantErr: domain.ErrorTypeUnauthorized},
		{
			name:     "deactivated organization",
			password: "correct horse battery",
			org: &models.Organization{
				UID:          "org-2",
				Email:        "admin@acme.example",
				PasswordHash: hash,
				IsActive:     false,
			},
			wantErr: domain.ErrorTypeForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orgRepo := &domain.MockOrganizationRepository{}
			service := newOrganizationService(orgRepo, &domain.MockZoomProvider{}, &domain.MockMessageBuilder{})

			orgRepo.On("GetByEmail", mock.Anything, "admin@acme.example").Return(tc.org, nil)

			organization, token, err := service.Login(context.Background(), "admin@acme.example", tc.password)
			if !tc.wantOK {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, domain.GetErrorType(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.org.UID, organization.UID)
			assert.NotEmpty(t, token)
		})
	}
}

func TestOrganizationLoginUnknownEmail(t *testing.T) {
	orgRepo := &domain.MockOrganizationRepository{}
	service := newOrganizationService(orgRepo, &domain.MockZoomProvider{}, &domain.MockMessageBuilder{})

	orgRepo.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, domain.NewNotFoundError("organization not found"))

	_, _, err := service.Login(context.Background(), "ghost@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUnauthorized, domain.GetErrorType(err))
	assert.Equal(t, "invalid email or password", domain.ErrorMessage(err))
}

func TestUpdateZoomCredentialsInvalidatesOldClient(t *testing.T) {
	orgRepo := &domain.MockOrganizationRepository{}
	provider := &domain.MockZoomProvider{}
	service := newOrganizationService(orgRepo, provider, &domain.MockMessageBuilder{})

	existing := &models.Organization{
		UID:              "org-1",
		ZoomAccountID:    "old-account",
		ZoomClientID:     "old-client",
		ZoomClientSecret: "old-secret",
	}
	oldCreds := existing.ZoomCredentials()

	orgRepo.On("GetWithRevision", mock.Anything, "org-1").Return(existing, uint64(3), nil)
	orgRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Organization"), uint64(3)).Return(nil)
	provider.On("Invalidate", oldCreds).Return()

	updated, err := service.UpdateZoomCredentials(context.Background(), "org-1", &UpdateZoomCredentialsRequest{
		AccountID:    "new-account",
		ClientID:     "new-client",
		ClientSecret: "new-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-account", updated.ZoomAccountID)

	provider.AssertCalled(t, "Invalidate", oldCreds)
}

func TestUpdateZoomCredentialsFirstTimeSkipsInvalidate(t *testing.T) {
	orgRepo := &domain.MockOrganizationRepository{}
	provider := &domain.MockZoomProvider{}
	service := newOrganizationService(orgRepo, provider, &domain.MockMessageBuilder{})

	orgRepo.On("GetWithRevision", mock.Anything, "org-1").
		Return(&models.Organization{UID: "org-1"}, uint64(1), nil)
	orgRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Organization"), uint64(1)).Return(nil)

	_, err := service.UpdateZoomCredentials(context.Background(), "org-1", &UpdateZoomCredentialsRequest{
		AccountID:    "account",
		ClientID:     "client",
		ClientSecret: "secret",
	})
	require.NoError(t, err)

	provider.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestGetBySubdomainHidesInactive(t *testing.T) {
	orgRepo := &domain.MockOrganizationRepository{}
	service := newOrganizationService(orgRepo, &domain.MockZoomProvider{}, &domain.MockMessageBuilder{})

	orgRepo.On("GetBySubdomain", mock.Anything, "dormant").
		Return(&models.Organization{UID: "org-1", Subdomain: "dormant", IsActive: false}, nil)

	_, err := service.GetBySubdomain(context.Background(), "dormant")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}
