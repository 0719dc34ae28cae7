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

// RegistrantService implements public registration and registrant
// management, including the best effort dual write to Zoom.
type RegistrantService struct {
	organizationRepository domain.OrganizationRepository
	meetingRepository      domain.MeetingRepository
	registrantRepository   domain.RegistrantRepository
	zoomProvider           domain.ZoomProvider
	messageBuilder         domain.MessageBuilder
	emailService           domain.EmailService
}

// NewRegistrantService creates a new registrant service
func NewRegistrantService(
	organizationRepository domain.OrganizationRepository,
	meetingRepository domain.MeetingRepository,
	registrantRepository domain.RegistrantRepository,
	zoomProvider domain.ZoomProvider,
	messageBuilder domain.MessageBuilder,
	emailService domain.EmailService,
) *RegistrantService {
	return &RegistrantService{
		organizationRepository: organizationRepository,
		meetingRepository:      meetingRepository,
		registrantRepository:   registrantRepository,
		zoomProvider:           zoomProvider,
		messageBuilder:         messageBuilder,
		emailService:           emailService,
	}
}

// ServiceReady checks if the service is ready to serve requests
func (s *RegistrantService) ServiceReady() bool {
	return s.organizationRepository != nil &&
		s.meetingRepository != nil &&
		s.registrantRepository != nil &&
		s.zoomProvider != nil &&
		s.messageBuilder != nil
}

// RegisterRequest is the public registration payload. Fields holds the
// submitted form values keyed by form field name.
type RegisterRequest struct {
	Fields map[string]string `json:"fields" validate:"required"`
}

// standardFieldSetters maps a Zoom standard field key to the registrant
// attribute it populates. Email and first/last name are handled separately.
var standardFieldSetters = map[string]func(*models.Registrant, string){
	"address":                  func(r *models.Registrant, v string) { r.Address = v },
	"city":                     func(r *models.Registrant, v string) { r.City = v },
	"state":                    func(r *models.Registrant, v string) { r.State = v },
	"zip":                      func(r *models.Registrant, v string) { r.ZipCode = v },
	"country":                  func(r *models.Registrant, v string) { r.Country = v },
	"phone":                    func(r *models.Registrant, v string) { r.Phone = v },
	"industry":                 func(r *models.Registrant, v string) { r.Industry = v },
	"org":                      func(r *models.Registrant, v string) { r.Company = v },
	"job_title":                func(r *models.Registrant, v string) { r.JobTitle = v },
	"purchasing_time_frame":    func(r *models.Registrant, v string) { r.PurchasingTimeFrame = v },
	"role_in_purchase_process": func(r *models.Registrant, v string) { r.RoleInPurchaseProcess = v },
	"no_of_employees":          func(r *models.Registrant, v string) { r.NumberOfEmployees = v },
	"comments":                 func(r *models.Registrant, v string) { r.Comments = v },
}

// Register handles a public registration submission. The registrant is
// persisted locally no matter what happens against Zoom; a Zoom failure
// only shows up in the stored sync status.
func (s *RegistrantService) Register(ctx context.Context, subdomain, meetingUID string, request *RegisterRequest) (*models.Registrant, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}

	ctx = logging.AppendCtx(ctx,
		slog.String("subdomain", subdomain),
		slog.String("meeting_uid", meetingUID),
	)

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

	registrant, err := buildRegistrant(meeting, request.Fields)
	if err != nil {
		return nil, err
	}

	exists, err := s.registrantRepository.ExistsByMeetingAndEmail(ctx, meetingUID, registrant.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflictError("this email is already registered for this meeting")
	}

	// The Zoom write happens before persistence so the outcome lands in
	// the stored record, but its failure never rejects the registration.
	s.syncToZoom(ctx, organization, meeting, registrant)

	if err := s.registrantRepository.Create(ctx, registrant); err != nil {
		return nil, err
	}

	s.publishSyncEvents(ctx, registrant, true)

	if s.emailService != nil {
		if err := s.emailService.SendRegistrationConfirmation(ctx, meeting, registrant); err != nil {
			slog.WarnContext(ctx, "failed to send confirmation email",
				"registrant_uid", registrant.UID, logging.ErrKey, err)
		}
	}

	slog.InfoContext(ctx, "registrant created",
		"registrant_uid", registrant.UID,
		"sync_status", registrant.SyncStatus(),
	)
	return registrant, nil
}

// buildRegistrant validates submitted form values against the meeting's
// form definition and assembles the registrant record.
func buildRegistrant(meeting *models.Meeting, values map[string]string) (*models.Registrant, error) {
	registrant := &models.Registrant{
		UID:             uuid.New().String(),
		MeetingUID:      meeting.UID,
		OrganizationUID: meeting.OrganizationUID,
		CustomFields:    make(map[string]string),
	}

	for _, field := range meeting.FormFields {
		value := strings.TrimSpace(values[field.Name])
		if value == "" {
			if field.Required {
				return nil, domain.NewValidationError(fmt.Sprintf("field %s is required", field.Name))
			}
			continue
		}
		if field.Type == models.FieldTypeSelect && !containsOption(field.Options, value) {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid value for field %s", field.Name))
		}

		switch {
		case field.StandardZoomField && field.ZoomFieldKey == "email":
			registrant.Email = strings.ToLower(value)
		case field.StandardZoomField && field.ZoomFieldKey == "first_name":
			registrant.FirstName = value
		case field.StandardZoomField && field.ZoomFieldKey == "last_name":
			registrant.LastName = value
		case field.StandardZoomField:
			if setter, ok := standardFieldSetters[field.ZoomFieldKey]; ok {
				setter(registrant, value)
			} else {
				registrant.CustomFields[field.Name] = value
			}
		default:
			registrant.CustomFields[field.Name] = value
		}
	}

	if registrant.Email == "" {
		return nil, domain.NewValidationError("field email is required")
	}
	if registrant.FirstName == "" {
		return nil, domain.NewValidationError("field first_name is required")
	}
	if registrant.LastName == "" {
		return nil, domain.NewValidationError("field last_name is required")
	}

	now := time.Now().UTC()
	registrant.RegisteredAt = utils.TimePtr(now)
	registrant.UpdatedAt = utils.TimePtr(now)
	return registrant, nil
}

func containsOption(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

// syncToZoom attempts the Zoom registrant write and records the outcome
// on the registrant. It never returns an error.
func (s *RegistrantService) syncToZoom(ctx context.Context, organization *models.Organization, meeting *models.Meeting, registrant *models.Registrant) {
	if !meeting.ZoomLinked() || !organization.ZoomCredentials().Complete() || s.zoomProvider == nil {
		return
	}

	result, err := s.zoomProvider.AddRegistrant(ctx, organization.ZoomCredentials(), meeting, registrant)
	if err != nil {
		registrant.SyncedToZoom = false
		registrant.SyncError = domain.ErrorMessage(err)
		slog.WarnContext(ctx, "Zoom registrant sync failed",
			"registrant_email", registrant.Email, logging.ErrKey, err)
		return
	}

	registrant.SyncedToZoom = true
	registrant.SyncError = ""
	registrant.ZoomRegistrantID = result.RegistrantID
	registrant.ZoomJoinURL = result.JoinURL
}

// publishSyncEvents emits the created and sync outcome events, best effort
func (s *RegistrantService) publishSyncEvents(ctx context.Context, registrant *models.Registrant, created bool) {
	payload := map[string]string{
		"uid":              registrant.UID,
		"meeting_uid":      registrant.MeetingUID,
		"organization_uid": registrant.OrganizationUID,
		"sync_status":      string(registrant.SyncStatus()),
	}

	if created {
		if err := s.messageBuilder.PublishMessage(ctx, constants.RegistrantCreatedSubject, payload); err != nil {
			slog.WarnContext(ctx, "failed to publish registrant created event", logging.ErrKey, err)
		}
	}

	switch registrant.SyncStatus() {
	case models.SyncStatusSynced:
		if err := s.messageBuilder.PublishMessage(ctx, constants.RegistrantSyncedSubject, payload); err != nil {
			slog.WarnContext(ctx, "failed to publish registrant synced event", logging.ErrKey, err)
		}
	case models.SyncStatusError:
		if err := s.messageBuilder.PublishMessage(ctx, constants.RegistrantSyncFailedSubject, payload); err != nil {
			slog.WarnContext(ctx, "failed to publish registrant sync failed event", logging.ErrKey, err)
		}
	}
}

// RetrySync re-attempts the Zoom write for a registrant whose earlier
// sync failed or was never attempted. Retrying an already synced
// registrant is rejected; a retry that fails again persists the new
// outcome and reports the failure to the caller.
func (s *RegistrantService) RetrySync(ctx context.Context, orgUID, registrantUID string) (*models.Registrant, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("registrant_uid", registrantUID))

	registrant, revision, err := s.registrantRepository.GetWithRevision(ctx, registrantUID)
	if err != nil {
		return nil, err
	}
	if registrant.OrganizationUID != orgUID {
		return nil, domain.NewNotFoundError("registrant not found")
	}
	if registrant.SyncedToZoom {
		return nil, domain.NewValidationError("registrant is already synced to Zoom")
	}

	organization, err := s.organizationRepository.Get(ctx, orgUID)
	if err != nil {
		return nil, err
	}
	meeting, err := s.meetingRepository.Get(ctx, registrant.MeetingUID)
	if err != nil {
		return nil, err
	}

	if !meeting.ZoomLinked() {
		return nil, domain.NewValidationError("meeting is not linked to a Zoom meeting")
	}
	if !organization.ZoomCredentials().Complete() {
		return nil, domain.NewValidationError("organization has no Zoom credentials configured")
	}

	s.syncToZoom(ctx, organization, meeting, registrant)

	registrant.UpdatedAt = utils.TimePtr(time.Now().UTC())
	if err := s.registrantRepository.Update(ctx, registrant, revision); err != nil {
		return nil, err
	}

	s.publishSyncEvents(ctx, registrant, false)

	slog.InfoContext(ctx, "registrant sync retried", "sync_status", registrant.SyncStatus())
	if !registrant.SyncedToZoom {
		return nil, domain.NewInternalError("failed to sync registrant to Zoom: " + registrant.SyncError)
	}
	return registrant, nil
}

// Get retrieves a registrant, scoped to the owning organization
func (s *RegistrantService) Get(ctx context.Context, orgUID, registrantUID string) (*models.Registrant, error) {
	if !s.ServiceReady() {
		return nil, domain.NewUnavailableError("service not initialized")
	}

	registrant, err := s.registrantRepository.Get(ctx, registrantUID)
	if err != nil {
		return nil, err
	}
	if registrant.OrganizationUID != orgUID {
		return nil, domain.NewNotFoundError("registrant not found")
	}
	return registrant, nil
}

// ListByMeeting returns all registrants for one of the organization's meetings
func (s *RegistrantService) ListByMeeting(ctx context.Context, orgUID, meetingUID string) ([]*models.Registrant, error) {
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

	return s.registrantRepository.ListByMeeting(ctx, meetingUID)
}

// Delete removes a registrant from local storage. The Zoom side is left
// untouched.
func (s *RegistrantService) Delete(ctx context.Context, orgUID, registrantUID string) error {
	if !s.ServiceReady() {
		return domain.NewUnavailableError("service not initialized")
	}

	registrant, revision, err := s.registrantRepository.GetWithRevision(ctx, registrantUID)
	if err != nil {
		return err
	}
	if registrant.OrganizationUID != orgUID {
		return domain.NewNotFoundError("registrant not found")
	}

	if err := s.registrantRepository.Delete(ctx, registrantUID, revision); err != nil {
		return err
	}

	// Event publishing is best effort.
	if err := s.messageBuilder.PublishMessage(ctx, constants.RegistrantDeletedSubject, map[string]string{
		"uid":              registrantUID,
		"meeting_uid":      registrant.MeetingUID,
		"organization_uid": orgUID,
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish registrant deleted event", logging.ErrKey, err)
	}

	return nil
}
