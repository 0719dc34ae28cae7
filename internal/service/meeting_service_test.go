// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
)

type meetingServiceMocks struct {
	orgRepo        *domain.MockOrganizationRepository
	meetingRepo    *domain.MockMeetingRepository
	registrantRepo *domain.MockRegistrantRepository
	provider       *domain.MockZoomProvider
	builder        *domain.MockMessageBuilder
}

func newMeetingService() (*MeetingService, *meetingServiceMocks) {
	mocks := &meetingServiceMocks{
		orgRepo:        &domain.MockOrganizationRepository{},
		meetingRepo:    &domain.MockMeetingRepository{},
		registrantRepo: &domain.MockRegistrantRepository{},
		provider:       &domain.MockZoomProvider{},
		builder:        &domain.MockMessageBuilder{},
	}
	service := NewMeetingService(
		mocks.orgRepo,
		mocks.meetingRepo,
		mocks.registrantRepo,
		mocks.provider,
		mocks.builder,
	)
	return service, mocks
}

func validCreateRequest() *CreateMeetingRequest {
	return &CreateMeetingRequest{
		Name:      "Community Call",
		Type:      "meeting",
		StartTime: time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC),
		Duration:  45,
		Timezone:  "America/New_York",
		FormFields: []FormFieldRequest{
			{Name: "email", Label: "Email", Type: "email", Required: true, StandardZoomField: true, ZoomFieldKey: "email"},
			{Name: "first_name", Label: "First name", Type: "text", Required: true, StandardZoomField: true, ZoomFieldKey: "first_name"},
		},
	}
}

func TestMeetingServiceNotReadyWithoutProvider(t *testing.T) {
	service := NewMeetingService(
		&domain.MockOrganizationRepository{},
		&domain.MockMeetingRepository{},
		&domain.MockRegistrantRepository{},
		nil,
		&domain.MockMessageBuilder{},
	)

	assert.False(t, service.ServiceReady())

	request := validCreateRequest()
	request.CreateInZoom = true
	_, err := service.Create(context.Background(), "org-1", request)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
}

func TestCreateMeetingWithoutZoom(t *testing.T) {
	service, mocks := newMeetingService()

	mocks.orgRepo.On("Get", mock.Anything, "org-1").Return(testOrganization(false), nil)
	mocks.meetingRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Meeting")).Return(nil)
	mocks.builder.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	meeting, err := service.Create(context.Background(), "org-1", validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, meeting.UID)
	assert.Equal(t, "org-1", meeting.OrganizationUID)
	assert.Equal(t, models.MeetingTypeMeeting, meeting.Type)
	assert.True(t, meeting.IsActive)
	assert.False(t, meeting.ZoomLinked())
	assert.Equal(t, 0, meeting.FormFields[0].Order)
	assert.Equal(t, 1, meeting.FormFields[1].Order)

	mocks.provider.AssertNotCalled(t, "CreateMeeting", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMeetingInZoom(t *testing.T) {
	service, mocks := newMeetingService()

	organization := testOrganization(true)
	mocks.orgRepo.On("Get", mock.Anything, "org-1").Return(organization, nil)
	mocks.provider.On("CreateMeeting", mock.Anything, organization.ZoomCredentials(), mock.AnythingOfType("*models.Meeting")).
		Return(&domain.ZoomMeetingResult{
			MeetingID: "987654321",
			JoinURL:   "https://zoom.us/j/987654321",
			StartURL:  "https://zoom.us/s/987654321",
			Passcode:  "pass",
		}, nil)
	mocks.meetingRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Meeting")).Return(nil)
	mocks.builder.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	request := validCreateRequest()
	request.CreateInZoom = true

	meeting, err := service.Create(context.Background(), "org-1", request)
	require.NoError(t, err)

	assert.True(t, meeting.ZoomLinked())
	assert.Equal(t, "987654321", meeting.ZoomMeetingID)
	assert.Equal(t, "https://zoom.us/j/987654321", meeting.ZoomJoinURL)
	assert.Equal(t, "https://zoom.us/s/987654321", meeting.ZoomStartURL)
	assert.Equal(t, "pass", meeting.ZoomPasscode)
}

func TestCreateMeetingInZoomFailureAborts(t *testing.T) {
	service, mocks := newMeetingService()

	mocks.orgRepo.On("Get", mock.Anything, "org-1").Return(testOrganization(true), nil)
	mocks.provider.On("CreateMeeting", mock.Anything, mock.Anything, mock.AnythingOfType("*models.Meeting")).
		Return(nil, domain.NewUnavailableError("failed to create Zoom meeting"))

	request := validCreateRequest()
	request.CreateInZoom = true

	_, err := service.Create(context.Background(), "org-1", request)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))

	mocks.meetingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateMeetingInZoomRequiresCredentials(t *testing.T) {
	service, mocks := newMeetingService()

	mocks.orgRepo.On("Get", mock.Anything, "org-1").Return(testOrganization(false), nil)

	request := validCreateRequest()
	request.CreateInZoom = true

	_, err := service.Create(context.Background(), "org-1", request)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
	mocks.provider.AssertNotCalled(t, "CreateMeeting", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMeetingDuplicateFieldName(t *testing.T) {
	service, mocks := newMeetingService()

	mocks.orgRepo.On("Get", mock.Anything, "org-1").Return(testOrganization(false), nil)

	request := validCreateRequest()
	request.FormFields = append(request.FormFields, FormFieldRequest{
		Name: "email", Label: "Email again", Type: "email",
	})

	_, err := service.Create(context.Background(), "org-1", request)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestCreateMeetingSelectRequiresOptions(t *testing.T) {
	service, mocks := newMeetingService()

	mocks.orgRepo.On("Get", mock.Anything, "org-1").Return(testOrganization(false), nil)

	request := validCreateRequest()
	request.FormFields = append(request.FormFields, FormFieldRequest{
		Name: "shirt_size", Label: "Shirt size", Type: "select",
	})

	_, err := service.Create(context.Background(), "org-1", request)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestGetMeetingScopedToOrganization(t *testing.T) {
	service, mocks := newMeetingService()

	meeting := testMeeting(false)
	meeting.OrganizationUID = "org-other"
	mocks.meetingRepo.On("Get", mock.Anything, "meeting-1").Return(meeting, nil)

	_, err := service.Get(context.Background(), "org-1", "meeting-1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestDeleteMeetingCascadesRegistrants(t *testing.T) {
	service, mocks := newMeetingService()

	meeting := testMeeting(false)
	registrant := &models.Registrant{UID: "reg-1", MeetingUID: "meeting-1", OrganizationUID: "org-1"}

	mocks.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(2), nil)
	mocks.registrantRepo.On("ListByMeeting", mock.Anything, "meeting-1").
		Return([]*models.Registrant{registrant}, nil)
	mocks.registrantRepo.On("GetWithRevision", mock.Anything, "reg-1").Return(registrant, uint64(1), nil)
	mocks.registrantRepo.On("Delete", mock.Anything, "reg-1", uint64(1)).Return(nil)
	mocks.meetingRepo.On("Delete", mock.Anything, "meeting-1", uint64(2)).Return(nil)
	mocks.builder.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := service.Delete(context.Background(), "org-1", "meeting-1")
	require.NoError(t, err)

	mocks.registrantRepo.AssertCalled(t, "Delete", mock.Anything, "reg-1", uint64(1))
	mocks.meetingRepo.AssertExpectations(t)
}

func TestGetLandingPage(t *testing.T) {
	service, mocks := newMeetingService()

	mocks.orgRepo.On("GetBySubdomain", mock.Anything, "acme").Return(testOrganization(false), nil)
	mocks.meetingRepo.On("Get", mock.Anything, "meeting-1").Return(testMeeting(true), nil)

	page, err := service.GetLandingPage(context.Background(), "acme", "meeting-1")
	require.NoError(t, err)
	assert.Equal(t, "org-1", page.Organization.UID)
	assert.Equal(t, "meeting-1", page.Meeting.UID)
}

func TestGetLandingPageHidesInactiveMeeting(t *testing.T) {
	service, mocks := newMeetingService()

	meeting := testMeeting(true)
	meeting.IsActive = false

	mocks.orgRepo.On("GetBySubdomain", mock.Anything, "acme").Return(testOrganization(false), nil)
	mocks.meetingRepo.On("Get", mock.Anything, "meeting-1").Return(meeting, nil)

	_, err := service.GetLandingPage(context.Background(), "acme", "meeting-1")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}
