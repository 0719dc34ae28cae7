// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-registration-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-registration-service/pkg/utils"
)

// MeetingService implements meeting and webinar management for tenant
// organizations.
type MeetingService struct {
	organizationRepository domain.OrganizationRepository
	meetingRepository      domain.MeetingRepository
	registrantRepository   domain.RegistrantRepository
	zoomProvider           domain.ZoomProvider
	messageBuilder         domain.MessageBuilder
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	organizationRepository domain.OrganizationRepository,
	meetingRepository domain.MeetingRepository,
	registrantRepository domain.RegistrantRepository,
	zoomProvider domain.ZoomProvider,
	messageBuilder domain.MessageBuilder,
) *MeetingService {
	return &MeetingService{
		organizationRepository: organizationRepository,
		meetingRepository:      meetingRepository,
		registrantRepository:   registrantRepository,
		zoomProvider:           zoomProvider,
		messageBuilder:         messageBuilder,
	}
}

// ServiceReady checks if the service is ready to serve requests
func (s *MeetingService) ServiceReady() bool {
	return s.organizationRepository != nil &&
		s.meetingRepository != nil &&
		s.registrantRepository != nil &&
		s.zoomProvider != nil &&
		s.messageBuilder != nil
}

// FormFieldRequest describes one registration form field
type FormFieldRequest struct {
	Name              string   `json:"name" validate:"required,min=1,max=64"`
	Label             string   `json:"label" validate:"required,min=1,max=128"`
	Type              string   `json:"type" validate:"required,oneof=text email tel textarea select"`
	Required          bool     `json:"required"`
	StandardZoomField bool     `json:"standard_zoom_field"`
	ZoomFieldKey      string   `json:"zoom_field_key,omitempty"`
	Options           []string `json:"options,omitempty"`
}

// CreateMeetingRequest is the payload for meeting creation
type CreateMeetingRequest struct {
	Name                   string             `json:"name" validate:"required,min=2,max=200"`
	Type                   string             `json:"type" validate:"required,oneof=meeting webinar"`
	Description            string             `json:"description" validate:"max=2000"`
	StartTime              time.Time          `json:"start_time"`
	Duration               int                `json:"duration" validate:"min=0,max=1440"`
	Timezone               string             `json:"timezone" validate:"max=64"`
	LandingPageTitle       string             `json:"landing_page_title" validate:"max=200"`
	LandingPageDescription string             `json:"landing_page_description" validate:"max=2000"`
	FormFields             []FormFieldRequest `json:"form_fields" validate:"dive"`
	CreateInZoom           bool               `json:"create_in_zoom"`
}

// Create creates a meeting for the organization. When CreateInZoom is set
// the Zoom meeting is created first; any Zoom failure aborts the whole
// operation and nothing is persisted.
func (s *MeetingService) Create(ctx context.Context, orgUID string, request *CreateMeetingRequest) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("organization_uid", orgUID))

	organization, err := s.organizationRepository.Get(ctx, orgUID)
	if err != nil {
		return nil, err
	}

	formFields, err := buildFormFields(request.FormFields)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	meeting := &models.Meeting{
		UID:                    uuid.New().String(),
		OrganizationUID:        organization.UID,
		Name:                   strings.TrimSpace(request.Name),
		Type:                   models.MeetingType(request.Type),
		Description:            strings.TrimSpace(request.Description),
		StartTime:              request.StartTime.UTC(),
		Duration:               request.Duration,
		Timezone:               request.Timezone,
		LandingPageTitle:       strings.TrimSpace(request.LandingPageTitle),
		LandingPageDescription: strings.TrimSpace(request.LandingPageDescription),
		FormFields:             formFields,
		IsActive:               true,
		CreatedAt:              utils.TimePtr(now),
		UpdatedAt:              utils.TimePtr(now),
	}

	if request.CreateInZoom {
		if !organization.ZoomCredentials().Complete() {
			return nil, domain.NewValidationError("organization has no Zoom credentials configured")
		}
		if request.StartTime.IsZero() {
			return nil, domain.NewValidationError("start_time is required when creating the meeting in Zoom")
		}
		result, err := s.zoomProvider.CreateMeeting(ctx, organization.ZoomCredentials(), meeting)
		if err != nil {
			return nil, err
		}
		meeting.ZoomMeetingID = result.MeetingID
		meeting.ZoomJoinURL = result.JoinURL
		meeting.ZoomStartURL = result.StartURL
		meeting.ZoomPasscode = result.Passcode
	}

	if err := s.meetingRepository.Create(ctx, meeting); err != nil {
		return nil, err
	}

	// Event publishing is best effort.
	if err := s.messageBuilder.PublishMessage(ctx, constants.MeetingCreatedSubject, map[string]string{
		"uid":              meeting.UID,
		"organization_uid": meeting.OrganizationUID,
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish meeting created event", logging.ErrKey, err)
	}

	slog.InfoContext(ctx, "meeting created",
		"meeting_uid", meeting.UID,
		"meeting_type", meeting.Type,
		"zoom_linked", meeting.ZoomLinked(),
	)
	return meeting, nil
}

// buildFormFields validates and normalizes the registration form definition
func buildFormFields(requests []FormFieldRequest) ([]models.FormField, error) {
	fields := make([]models.FormField, 0, len(requests))
	seen := make(map[string]bool, len(requests))
	for i, request := range requests {
		name := strings.TrimSpace(request.Name)
		if seen[name] {
			return nil, domain.NewValidationError(fmt.Sprintf("duplicate form field name: %s", name))
		}
		seen[name] = true

		if request.Type == string(models.FieldTypeSelect) && len(request.Options) == 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("form field %s requires options", name))
		}

		fields = append(fields, models.FormField{
			Name:              name,
			Label:             strings.TrimSpace(request.Label),
			Type:              models.FieldType(request.Type),
			Required:          request.Required,
			StandardZoomField: request.StandardZoomField,
			ZoomFieldKey:      request.ZoomFieldKey,
			Options:           request.Options,
			Order:             i,
		})
	}
	return fields, nil
}

// Get retrieves a meeting, scoped to the owning organization
func (s *MeetingService) Get(ctx context.Context, orgUID, meetingUID string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}

	meeting, err := s.meetingRepository.Get(ctx, meetingUID)
	if err != nil {
		return nil, err
	}
	if meeting.OrganizationUID != orgUID {
		return nil, domain.NewNotFoundError("meeting not found")
	}
	return meeting, nil
}

// List returns all meetings belonging to the organization
func (s *MeetingService) List(ctx context.Context, orgUID string) ([]*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}
	return s.meetingRepository.ListByOrganization(ctx, orgUID)
}

// UpdateMeetingRequest is the payload for meeting updates
type UpdateMeetingRequest struct {
	Name                   string             `json:"name" validate:"required,min=2,max=200"`
	Description            string             `json:"description" validate:"max=2000"`
	StartTime              time.Time          `json:"start_time"`
	Duration               int                `json:"duration" validate:"min=0,max=1440"`
	Timezone               string             `json:"timezone" validate:"max=64"`
	LandingPageTitle       string             `json:"landing_page_title" validate:"max=200"`
	LandingPageDescription string             `json:"landing_page_description" validate:"max=2000"`
	FormFields             []FormFieldRequest `json:"form_fields" validate:"dive"`
	IsActive               *bool              `json:"is_active,omitempty"`
}

// Update updates a meeting's mutable fields. The meeting type and any
// Zoom linkage are fixed at creation.
func (s *MeetingService) Update(ctx context.Context, orgUID, meetingUID string, request *UpdateMeetingRequest) (*models.Meeting, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}

	meeting, revision, err := s.meetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return nil, err
	}
	if meeting.OrganizationUID != orgUID {
		return nil, domain.NewNotFoundError("meeting not found")
	}

	formFields, err := buildFormFields(request.FormFields)
	if err != nil {
		return nil, err
	}

	meeting.Name = strings.TrimSpace(request.Name)
	meeting.Description = strings.TrimSpace(request.Description)
	meeting.StartTime = request.StartTime.UTC()
	meeting.Duration = request.Duration
	meeting.Timezone = request.Timezone
	meeting.LandingPageTitle = strings.TrimSpace(request.LandingPageTitle)
	meeting.LandingPageDescription = strings.TrimSpace(request.LandingPageDescription)
	meeting.FormFields = formFields
	if request.IsActive != nil {
		meeting.IsActive = *request.IsActive
	}
	meeting.UpdatedAt = utils.TimePtr(time.Now().UTC())

	if err := s.meetingRepository.Update(ctx, meeting, revision); err != nil {
		return nil, err
	}
	return meeting, nil
}

// Delete removes a meeting and all of its registrants
func (s *MeetingService) Delete(ctx context.Context, orgUID, meetingUID string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("service not initialized")
	}

	meeting, revision, err := s.meetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return err
	}
	if meeting.OrganizationUID != orgUID {
		return domain.NewNotFoundError("meeting not found")
	}

	registrants, err := s.registrantRepository.ListByMeeting(ctx, meetingUID)
	if err != nil {
		return err
	}
	deleteRegistrants(ctx, s.registrantRepository, registrants)

	if err := s.meetingRepository.Delete(ctx, meetingUID, revision); err != nil {
		return err
	}

	// Event publishing is best effort.
	if err := s.messageBuilder.PublishMessage(ctx, constants.MeetingDeletedSubject, map[string]string{
		"uid":              meetingUID,
		"organization_uid": orgUID,
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish meeting deleted event", logging.ErrKey, err)
	}

	slog.InfoContext(ctx, "meeting deleted", "meeting_uid", meetingUID, "organization_uid", orgUID)
	return nil
}

// LandingPage bundles everything the public registration page needs
type LandingPage struct {
	Organization *models.Organization `json:"organization"`
	Meeting      *models.Meeting      `json:"meeting"`
}

// GetLandingPage resolves the public landing page for a meeting hosted
// under an organization's subdomain. Inactive organizations and meetings
// are indistinguishable from missing ones.
func (s *MeetingService) GetLandingPage(ctx context.Context, subdomain, meetingUID string) (*LandingPage, error) {
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

	meeting, err := s.meetingRepository.Get(ctx, meetingUID)
	if err != nil {
		return nil, err
	}
	if meeting.OrganizationUID != organization.UID || !meeting.IsActive {
		return nil, domain.NewNotFoundError("meeting not found")
	}

	return &LandingPage{Organization: organization, Meeting: meeting}, nil
}
