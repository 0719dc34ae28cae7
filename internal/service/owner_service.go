// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-registration-service/pkg/utils"
)

// OwnerService implements the platform owner portal: cross-tenant
// visibility and administrative intervention.
type OwnerService struct {
	ownerRepository        domain.OwnerRepository
	organizationRepository domain.OrganizationRepository
	meetingRepository      domain.MeetingRepository
	registrantRepository   domain.RegistrantRepository
	tokenManager           *auth.TokenManager
	passwordHasher         *auth.PasswordHasher
}

// NewOwnerService creates a new owner service
func NewOwnerService(
	ownerRepository domain.OwnerRepository,
	organizationRepository domain.OrganizationRepository,
	meetingRepository domain.MeetingRepository,
	registrantRepository domain.RegistrantRepository,
	tokenManager *auth.TokenManager,
	passwordHasher *auth.PasswordHasher,
) *OwnerService {
	return &OwnerService{
		ownerRepository:        ownerRepository,
		organizationRepository: organizationRepository,
		meetingRepository:      meetingRepository,
		registrantRepository:   registrantRepository,
		tokenManager:           tokenManager,
		passwordHasher:         passwordHasher,
	}
}

// ServiceReady checks if the service is ready to serve requests
func (s *OwnerService) ServiceReady() bool {
	return s.ownerRepository != nil &&
		s.organizationRepository != nil &&
		s.meetingRepository != nil &&
		s.registrantRepository != nil &&
		s.tokenManager != nil &&
		s.passwordHasher != nil
}

// Login authenticates a platform owner and returns a session token
func (s *OwnerService) Login(ctx context.Context, email, password string) (*models.Owner, string, error) {
	if !s.ServiceReady() {
		return nil, "", domain.NewUnavailableError("service not initialized")
	}

	owner, err := s.ownerRepository.GetByEmail(ctx, email)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return nil, "", domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, "", err
	}

	ok, err := s.passwordHasher.Verify(password, owner.PasswordHash)
	if err != nil || !ok {
		return nil, "", domain.NewUnauthorizedError("invalid email or password")
	}

	if !owner.IsActive {
		return nil, "", domain.NewForbiddenError("owner account is deactivated")
	}

	// Recording the login time is best effort.
	if current, revision, err := s.ownerRepository.GetWithRevision(ctx, owner.UID); err == nil {
		current.LastLogin = utils.TimePtr(time.Now().UTC())
		if err := s.ownerRepository.Update(ctx, current, revision); err != nil {
			slog.WarnContext(ctx, "failed to record owner login time", logging.ErrKey, err)
		}
	}

	token, err := s.tokenManager.Generate(owner.UID, owner.Email, auth.SubjectKindOwner, string(owner.Role))
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", logging.ErrKey, err)
		return nil, "", domain.NewInternalError("failed to generate session token", err)
	}

	return owner, token, nil
}

// EnsureOwner creates an owner account if no account exists for the email.
// Used at startup to provision the initial portal owner.
func (s *OwnerService) EnsureOwner(ctx context.Context, name, email, password string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("service not initialized")
	}

	_, err := s.ownerRepository.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if domain.GetErrorType(err) != domain.ErrorTypeNotFound {
		return err
	}

	passwordHash, err := s.passwordHasher.Hash(password)
	if err != nil {
		return domain.NewInternalError("failed to process password", err)
	}

	now := time.Now().UTC()
	owner := &models.Owner{
		UID:          uuid.New().String(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Role:         models.OwnerRoleOwner,
		IsActive:     true,
		CreatedAt:    utils.TimePtr(now),
		UpdatedAt:    utils.TimePtr(now),
	}

	if err := s.ownerRepository.Create(ctx, owner); err != nil {
		// Lost the race to another instance provisioning the same owner.
		if domain.GetErrorType(err) == domain.ErrorTypeConflict {
			return nil
		}
		return err
	}

	slog.InfoContext(ctx, "initial owner account provisioned", "owner_uid", owner.UID)
	return nil
}

// OrganizationSummary is one row of the owner portal's tenant listing
type OrganizationSummary struct {
	Organization    *models.Organization `json:"organization"`
	MeetingCount    int                  `json:"meeting_count"`
	RegistrantCount int                  `json:"registrant_count"`
}

// ListOrganizations returns all tenant organizations with usage counts
func (s *OwnerService) ListOrganizations(ctx context.Context) ([]*OrganizationSummary, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}

	organizations, err := s.organizationRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*OrganizationSummary, 0, len(organizations))
	for _, organization := range organizations {
		summary := &OrganizationSummary{Organization: organization}

		meetings, err := s.meetingRepository.ListByOrganization(ctx, organization.UID)
		if err == nil {
			summary.MeetingCount = len(meetings)
		}
		registrants, err := s.registrantRepository.ListByOrganization(ctx, organization.UID)
		if err == nil {
			summary.RegistrantCount = len(registrants)
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetOrganization returns one tenant with its meetings
func (s *OwnerService) GetOrganization(ctx context.Context, orgUID string) (*models.Organization, []*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, nil, domain.NewUnavailableError("service not initialized")
	}

	organization, err := s.organizationRepository.Get(ctx, orgUID)
	if err != nil {
		return nil, nil, err
	}
	meetings, err := s.meetingRepository.ListByOrganization(ctx, orgUID)
	if err != nil {
		return nil, nil, err
	}
	return organization, meetings, nil
}

// SetOrganizationActive activates or deactivates a tenant. Deactivated
// tenants cannot log in and their landing pages disappear.
func (s *OwnerService) SetOrganizationActive(ctx context.Context, orgUID string, active bool) (*models.Organization, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}

	organization, revision, err := s.organizationRepository.GetWithRevision(ctx, orgUID)
	if err != nil {
		return nil, err
	}

	organization.IsActive = active
	organization.UpdatedAt = utils.TimePtr(time.Now().UTC())

	if err := s.organizationRepository.Update(ctx, organization, revision); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "organization active state changed",
		"organization_uid", orgUID, "is_active", active)
	return organization, nil
}

// DeleteOrganization removes a tenant and all of its meetings and
// registrants
func (s *OwnerService) DeleteOrganization(ctx context.Context, orgUID string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("organization_uid", orgUID))

	_, revision, err := s.organizationRepository.GetWithRevision(ctx, orgUID)
	if err != nil {
		return err
	}

	registrants, err := s.registrantRepository.ListByOrganization(ctx, orgUID)
	if err != nil {
		return err
	}
	deleteRegistrants(ctx, s.registrantRepository, registrants)

	meetings, err := s.meetingRepository.ListByOrganization(ctx, orgUID)
	if err != nil {
		return err
	}
	deleteMeetings(ctx, s.meetingRepository, meetings)

	if err := s.organizationRepository.Delete(ctx, orgUID, revision); err != nil {
		return err
	}

	slog.InfoContext(ctx, "organization deleted",
		"deleted_meetings", len(meetings),
		"deleted_registrants", len(registrants),
	)
	return nil
}

// DeleteMeeting removes a meeting and its registrants from any tenant.
// Owner scope bypasses the organization check applied on the tenant API.
func (s *OwnerService) DeleteMeeting(ctx context.Context, meetingUID string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	_, revision, err := s.meetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return err
	}

	registrants, err := s.registrantRepository.ListByMeeting(ctx, meetingUID)
	if err != nil {
		return err
	}
	deleteRegistrants(ctx, s.registrantRepository, registrants)

	if err := s.meetingRepository.Delete(ctx, meetingUID, revision); err != nil {
		return err
	}

	slog.InfoContext(ctx, "meeting deleted by portal owner", "deleted_registrants", len(registrants))
	return nil
}

// DeleteRegistrant removes a single registrant from any tenant.
func (s *OwnerService) DeleteRegistrant(ctx context.Context, registrantUID string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("service not initialized")
	}

	_, revision, err := s.registrantRepository.GetWithRevision(ctx, registrantUID)
	if err != nil {
		return err
	}

	if err := s.registrantRepository.Delete(ctx, registrantUID, revision); err != nil {
		return err
	}

	slog.InfoContext(ctx, "registrant deleted by portal owner", "registrant_uid", registrantUID)
	return nil
}
