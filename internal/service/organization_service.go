// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service implements the business logic of the registration service.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-registration-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-registration-service/pkg/utils"
)

// OrganizationService implements tenant organization signup, login, and
// profile management.
type OrganizationService struct {
	organizationRepository domain.OrganizationRepository
	zoomProvider           domain.ZoomProvider
	messageBuilder         domain.MessageBuilder
	tokenManager           *auth.TokenManager
	passwordHasher         *auth.PasswordHasher
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	organizationRepository domain.OrganizationRepository,
	zoomProvider domain.ZoomProvider,
	messageBuilder domain.MessageBuilder,
	tokenManager *auth.TokenManager,
	passwordHasher *auth.PasswordHasher,
) *OrganizationService {
	return &OrganizationService{
		organizationRepository: organizationRepository,
		zoomProvider:           zoomProvider,
		messageBuilder:         messageBuilder,
		tokenManager:           tokenManager,
		passwordHasher:         passwordHasher,
	}
}

// ServiceReady checks if the service is ready to serve requests
func (s *OrganizationService) ServiceReady() bool {
	return s.organizationRepository != nil &&
		s.messageBuilder != nil &&
		s.tokenManager != nil &&
		s.passwordHasher != nil
}

// SignupOrganizationRequest is the payload for organization signup
type SignupOrganizationRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// subdomainPattern strips everything that cannot appear in a DNS label
var subdomainPattern = regexp.MustCompile(`[^a-z0-9-]+`)

// reservedSubdomains can never be claimed by a tenant
var reservedSubdomains = map[string]bool{
	"www":   true,
	"api":   true,
	"admin": true,
	"app":   true,
	"owner": true,
}

// Signup creates a new tenant organization and returns it with a session token
func (s *OrganizationService) Signup(ctx context.Context, request *SignupOrganizationRequest) (*models.Organization, string, error) {
	if !s.ServiceReady() {
		return nil, "", domain.NewUnavailableError("service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("organization_email", request.Email))

	passwordHash, err := s.passwordHasher.Hash(request.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", logging.ErrKey, err)
		return nil, "", domain.NewInternalError("failed to process password", err)
	}

	subdomain, err := s.generateSubdomain(ctx, request.Name)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	organization := &models.Organization{
		UID:          uuid.New().String(),
		Name:         strings.TrimSpace(request.Name),
		Email:        strings.ToLower(strings.TrimSpace(request.Email)),
		PasswordHash: passwordHash,
		Subdomain:    subdomain,
		IsActive:     true,
		CreatedAt:    utils.TimePtr(now),
		UpdatedAt:    utils.TimePtr(now),
	}

	if err := s.organizationRepository.Create(ctx, organization); err != nil {
		return nil, "", err
	}

	token, err := s.tokenManager.Generate(organization.UID, organization.Email, auth.SubjectKindOrganization, "")
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", logging.ErrKey, err)
		return nil, "", domain.NewInternalError("failed to generate session token", err)
	}

	// Event publishing is best effort.
	if err := s.messageBuilder.PublishMessage(ctx, constants.OrganizationCreatedSubject, map[string]string{
		"uid":       organization.UID,
		"subdomain": organization.Subdomain,
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish organization created event", logging.ErrKey, err)
	}

	slog.InfoContext(ctx, "organization created",
		"organization_uid", organization.UID,
		"subdomain", organization.Subdomain,
	)
	return organization, token, nil
}

// generateSubdomain derives a unique subdomain from the organization name,
// appending a numeric suffix when the slug is taken or reserved.
func (s *OrganizationService) generateSubdomain(ctx context.Context, name string) (string, error) {
	base := subdomainPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "org"
	}
	if len(base) > 40 {
		base = base[:40]
	}

	candidate := base
	for attempt := 2; attempt <= 50; attempt++ {
		if !reservedSubdomains[candidate] {
			_, err := s.organizationRepository.GetBySubdomain(ctx, candidate)
			if err != nil {
				if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
					return candidate, nil
				}
				return "", err
			}
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	return "", domain.NewConflictError("could not find an available subdomain")
}

// Login authenticates an organization and returns it with a session token
func (s *OrganizationService) Login(ctx context.Context, email, password string) (*models.Organization, string, error) {
	if !s.ServiceReady() {
		return nil, "", domain.NewUnavailableError("service not initialized")
	}

	organization, err := s.organizationRepository.GetByEmail(ctx, email)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return nil, "", domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, "", err
	}

	ok, err := s.passwordHasher.Verify(password, organization.PasswordHash)
	if err != nil || !ok {
		return nil, "", domain.NewUnauthorizedError("invalid email or password")
	}

	if !organization.IsActive {
		return nil, "", domain.NewForbiddenError("organization account is deactivated")
	}

	token, err := s.tokenManager.Generate(organization.UID, organization.Email, auth.SubjectKindOrganization, "")
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", logging.ErrKey, err)
		return nil, "", domain.NewInternalError("failed to generate session token", err)
	}

	return organization, token, nil
}

// Get retrieves an organization by UID
func (s *OrganizationService) Get(ctx context.Context, orgUID string) (*models.Organization, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}
	return s.organizationRepository.Get(ctx, orgUID)
}

// GetBySubdomain retrieves an active organization by subdomain. Used by
// the public landing page flow.
func (s *OrganizationService) GetBySubdomain(ctx context.Context, subdomain string) (*models.Organization, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}

	organization, err := s.organizationRepository.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	if !organization.IsActive {
		return nil, domain.NewNotFoundError("organization not found")
	}
	return organization, nil
}

// UpdateProfileRequest is the payload for organization profile updates
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// UpdateProfile updates mutable organization profile fields
func (s *OrganizationService) UpdateProfile(ctx context.Context, orgUID string, request *UpdateProfileRequest) (*models.Organization, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}

	organization, revision, err := s.organizationRepository.GetWithRevision(ctx, orgUID)
	if err != nil {
		return nil, err
	}

	organization.Name = strings.TrimSpace(request.Name)
	organization.UpdatedAt = utils.TimePtr(time.Now().UTC())

	if err := s.organizationRepository.Update(ctx, organization, revision); err != nil {
		return nil, err
	}
	return organization, nil
}

// UpdateZoomCredentialsRequest is the payload for Zoom credential updates.
// Credentials are stored as submitted; they are only validated against
// Zoom on first use.
type UpdateZoomCredentialsRequest struct {
	AccountID    string `json:"zoom_account_id" validate:"required"`
	ClientID     string `json:"zoom_client_id" validate:"required"`
	ClientSecret string `json:"zoom_client_secret" validate:"required"`
}

// UpdateZoomCredentials replaces the organization's Zoom credential triple
// and drops any API client cached under the old credentials.
func (s *OrganizationService) UpdateZoomCredentials(ctx context.Context, orgUID string, request *UpdateZoomCredentialsRequest) (*models.Organization, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}

	organization, revision, err := s.organizationRepository.GetWithRevision(ctx, orgUID)
	if err != nil {
		return nil, err
	}

	previous := organization.ZoomCredentials()

	organization.ZoomAccountID = strings.TrimSpace(request.AccountID)
	organization.ZoomClientID = strings.TrimSpace(request.ClientID)
	organization.ZoomClientSecret = strings.TrimSpace(request.ClientSecret)
	organization.UpdatedAt = utils.TimePtr(time.Now().UTC())

	if err := s.organizationRepository.Update(ctx, organization, revision); err != nil {
		return nil, err
	}

	if s.zoomProvider != nil && previous.Complete() {
		s.zoomProvider.Invalidate(previous)
	}

	slog.InfoContext(ctx, "organization Zoom credentials updated", "organization_uid", orgUID)
	return organization, nil
}
