// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package zoom implements the Zoom platform integration on top of the
// Server-to-Server OAuth API client.
package zoom

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/zoom/api"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-registration-service/pkg/constants"
)

// DefaultClientTTL is how long an idle per-credential API client stays
// cached before being evicted along with its access token.
const DefaultClientTTL = 30 * time.Minute

// Provider implements domain.ZoomProvider. It maintains one API client
// per credential fingerprint so access tokens are reused across requests
// from the same organization.
type Provider struct {
	clients       *gocache.Cache
	clientFactory func(config api.Config) api.ClientAPI
}

var _ domain.ZoomProvider = (*Provider)(nil)

// NewProvider creates a new Zoom provider with the given client cache TTL.
// A zero TTL uses DefaultClientTTL.
func NewProvider(clientTTL time.Duration) *Provider {
	if clientTTL == 0 {
		clientTTL = DefaultClientTTL
	}
	return &Provider{
		clients: gocache.New(clientTTL, 2*clientTTL),
		clientFactory: func(config api.Config) api.ClientAPI {
			return api.NewClient(config)
		},
	}
}

// clientFor returns the cached API client for the credentials, creating
// and caching one on first use.
func (p *Provider) clientFor(creds models.ZoomCredentials) api.ClientAPI {
	key := creds.Fingerprint()
	if cached, ok := p.clients.Get(key); ok {
		return cached.(api.ClientAPI)
	}

	client := p.clientFactory(api.Config{
		AccountID:    creds.AccountID,
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
	})
	p.clients.SetDefault(key, client)
	return client
}

// Invalidate drops the cached client for the credentials so the next use
// authenticates from scratch. Called when an organization edits its
// credentials.
func (p *Provider) Invalidate(creds models.ZoomCredentials) {
	p.clients.Delete(creds.Fingerprint())
}

// CreateMeeting creates a meeting or webinar on Zoom with registration
// enabled and returns its identifiers.
func (p *Provider) CreateMeeting(ctx context.Context, creds models.ZoomCredentials, meeting *models.Meeting) (*domain.ZoomMeetingResult, error) {
	if !creds.Complete() {
		return nil, domain.NewValidationError("Zoom credentials are not configured")
	}

	client := p.clientFor(creds)

	switch meeting.Type {
	case models.MeetingTypeWebinar:
		resp, err := client.CreateWebinar(ctx, buildWebinarRequest(meeting))
		if err != nil {
			slog.ErrorContext(ctx, "Zoom webinar creation failed", logging.ErrKey, err)
			return nil, normalizeError(err, "failed to create Zoom webinar")
		}
		return &domain.ZoomMeetingResult{
			MeetingID: strconv.FormatInt(resp.ID, 10),
			JoinURL:   resp.JoinURL,
			StartURL:  resp.StartURL,
			Passcode:  resp.Password,
		}, nil
	default:
		resp, err := client.CreateMeeting(ctx, buildMeetingRequest(meeting))
		if err != nil {
			slog.ErrorContext(ctx, "Zoom meeting creation failed", logging.ErrKey, err)
			return nil, normalizeError(err, "failed to create Zoom meeting")
		}
		return &domain.ZoomMeetingResult{
			MeetingID: strconv.FormatInt(resp.ID, 10),
			JoinURL:   resp.JoinURL,
			StartURL:  resp.StartURL,
			Passcode:  resp.Password,
		}, nil
	}
}

// AddRegistrant registers a person for the meeting's Zoom entity and
// returns the Zoom-side registrant identifiers.
func (p *Provider) AddRegistrant(ctx context.Context, creds models.ZoomCredentials, meeting *models.Meeting, registrant *models.Registrant) (*domain.ZoomRegistrationResult, error) {
	if !creds.Complete() {
		return nil, domain.NewValidationError("Zoom credentials are not configured")
	}
	if !meeting.ZoomLinked() {
		return nil, domain.NewValidationError("meeting is not linked to a Zoom meeting")
	}

	client := p.clientFor(creds)
	request := buildRegistrantRequest(meeting, registrant)

	var resp *api.AddRegistrantResponse
	var err error
	if meeting.Type == models.MeetingTypeWebinar {
		resp, err = client.AddWebinarRegistrant(ctx, meeting.ZoomMeetingID, request)
		if err != nil {
			slog.ErrorContext(ctx, "Zoom webinar registration failed",
				"zoom_meeting_id", meeting.ZoomMeetingID,
				logging.ErrKey, err)
			return nil, normalizeError(err, "failed to add registrant to Zoom webinar")
		}
	} else {
		resp, err = client.AddMeetingRegistrant(ctx, meeting.ZoomMeetingID, request)
		if err != nil {
			slog.ErrorContext(ctx, "Zoom meeting registration failed",
				"zoom_meeting_id", meeting.ZoomMeetingID,
				logging.ErrKey, err)
			return nil, normalizeError(err, "failed to add registrant to Zoom meeting")
		}
	}

	return &domain.ZoomRegistrationResult{
		RegistrantID: resp.ResolvedRegistrantID(),
		JoinURL:      resp.JoinURL,
	}, nil
}

// normalizeError maps an API error to a domain error with a stable
// message. Authentication failures are reported distinctly so tenants
// can tell bad credentials apart from Zoom-side rejections.
func normalizeError(err error, message string) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return domain.NewUnavailableError("failed to authenticate with Zoom", err)
	}
	return domain.NewUnavailableError(message, err)
}

func buildMeetingRequest(meeting *models.Meeting) *api.CreateMeetingRequest {
	return &api.CreateMeetingRequest{
		Topic:     meeting.Name,
		Type:      api.MeetingTypeScheduled,
		StartTime: meeting.StartTime.UTC().Format(time.RFC3339),
		Duration:  durationOrDefault(meeting.Duration),
		Timezone:  timezoneOrDefault(meeting.Timezone),
		Agenda:    meeting.Description,
		Settings: &api.MeetingSettings{
			HostVideo:        true,
			ParticipantVideo: false,
			JoinBeforeHost:   true,
			ApprovalType:     api.ApprovalTypeAutomatic,
			RegistrationType: api.RegistrationTypeOnce,
			WaitingRoom:      false,
		},
	}
}

func buildWebinarRequest(meeting *models.Meeting) *api.CreateWebinarRequest {
	return &api.CreateWebinarRequest{
		Topic:     meeting.Name,
		Type:      api.WebinarTypeScheduled,
		StartTime: meeting.StartTime.UTC().Format(time.RFC3339),
		Duration:  durationOrDefault(meeting.Duration),
		Timezone:  timezoneOrDefault(meeting.Timezone),
		Agenda:    meeting.Description,
		Settings: &api.WebinarSettings{
			HostVideo:        true,
			ApprovalType:     api.ApprovalTypeAutomatic,
			RegistrationType: api.RegistrationTypeOnce,
			AutoRecording:    "none",
		},
	}
}

// buildRegistrantRequest maps a stored registrant onto the Zoom payload.
// Optional profile fields are copied only when present; the local
// company field maps to Zoom's org field.
func buildRegistrantRequest(meeting *models.Meeting, registrant *models.Registrant) *api.AddRegistrantRequest {
	request := &api.AddRegistrantRequest{
		FirstName: registrant.FirstName,
		LastName:  registrant.LastName,
		Email:     registrant.Email,
	}

	optional := []struct {
		value string
		dst   *string
	}{
		{registrant.Phone, &request.Phone},
		{registrant.Address, &request.Address},
		{registrant.City, &request.City},
		{registrant.Country, &request.Country},
		{registrant.ZipCode, &request.Zip},
		{registrant.State, &request.State},
		{registrant.Company, &request.Org},
		{registrant.JobTitle, &request.JobTitle},
		{registrant.Industry, &request.Industry},
		{registrant.PurchasingTimeFrame, &request.PurchasingTimeFrame},
		{registrant.RoleInPurchaseProcess, &request.RoleInPurchaseProcess},
		{registrant.NumberOfEmployees, &request.NumberOfEmployees},
		{registrant.Comments, &request.Comments},
	}
	for _, field := range optional {
		if field.value != "" {
			*field.dst = field.value
		}
	}

	request.CustomQuestions = buildCustomQuestions(meeting, registrant)
	return request
}

// buildCustomQuestions pairs custom form answers with their configured
// labels. Answers without a matching form field are appended under their
// raw key in sorted order so the payload is deterministic.
func buildCustomQuestions(meeting *models.Meeting, registrant *models.Registrant) []api.CustomQuestion {
	if len(registrant.CustomFields) == 0 {
		return nil
	}

	var questions []api.CustomQuestion
	seen := make(map[string]bool, len(registrant.CustomFields))

	for _, field := range meeting.FormFields {
		if field.StandardZoomField {
			continue
		}
		value, ok := registrant.CustomFields[field.Name]
		if !ok || value == "" {
			continue
		}
		questions = append(questions, api.CustomQuestion{Title: field.Label, Value: value})
		seen[field.Name] = true
	}

	remaining := make([]string, 0, len(registrant.CustomFields))
	for name, value := range registrant.CustomFields {
		if !seen[name] && value != "" {
			remaining = append(remaining, name)
		}
	}
	sort.Strings(remaining)
	for _, name := range remaining {
		questions = append(questions, api.CustomQuestion{Title: name, Value: registrant.CustomFields[name]})
	}

	return questions
}

func durationOrDefault(duration int) int {
	if duration <= 0 {
		return constants.DefaultMeetingDurationMinutes
	}
	return duration
}

func timezoneOrDefault(timezone string) string {
	if timezone == "" {
		return constants.DefaultTimezone
	}
	return timezone
}
