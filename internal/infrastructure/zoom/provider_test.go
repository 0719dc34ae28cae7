// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package zoom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/infrastructure/zoom/api"
)

// fakeClient records calls and replays canned responses.
type fakeClient struct {
	createMeetingReq  *api.CreateMeetingRequest
	createWebinarReq  *api.CreateWebinarRequest
	addMeetingID      string
	addWebinarID      string
	addRegistrantReq  *api.AddRegistrantRequest
	meetingResp       *api.CreateMeetingResponse
	webinarResp       *api.CreateWebinarResponse
	registrantResp    *api.AddRegistrantResponse
	err               error
}

func (f *fakeClient) CreateMeeting(ctx context.Context, request *api.CreateMeetingRequest) (*api.CreateMeetingResponse, error) {
	f.createMeetingReq = request
	return f.meetingResp, f.err
}

func (f *fakeClient) CreateWebinar(ctx context.Context, request *api.CreateWebinarRequest) (*api.CreateWebinarResponse, error) {
	f.createWebinarReq = request
	return f.webinarResp, f.err
}

func (f *fakeClient) GetMeeting(ctx context.Context, meetingID string) (*api.CreateMeetingResponse, error) {
	return f.meetingResp, f.err
}

func (f *fakeClient) GetWebinar(ctx context.Context, webinarID string) (*api.CreateWebinarResponse, error) {
	return f.webinarResp, f.err
}

func (f *fakeClient) AddMeetingRegistrant(ctx context.Context, meetingID string, request *api.AddRegistrantRequest) (*api.AddRegistrantResponse, error) {
	f.addMeetingID = meetingID
	f.addRegistrantReq = request
	return f.registrantResp, f.err
}

func (f *fakeClient) AddWebinarRegistrant(ctx context.Context, webinarID string, request *api.AddRegistrantRequest) (*api.AddRegistrantResponse, error) {
	f.addWebinarID = webinarID
	f.addRegistrantReq = request
	return f.registrantResp, f.err
}

func newTestProvider(client api.ClientAPI, factoryCalls *int) *Provider {
	provider := NewProvider(time.Minute)
	provider.clientFactory = func(config api.Config) api.ClientAPI {
		if factoryCalls != nil {
			*factoryCalls++
		}
		return client
	}
	return provider
}

func testCredentials() models.ZoomCredentials {
	return models.ZoomCredentials{
		AccountID:    "acc-1",
		ClientID:     "client-1",
		ClientSecret: "secret-1",
	}
}

func testMeeting() *models.Meeting {
	return &models.Meeting{
		UID:           "meeting-1",
		Name:          "Quarterly Review",
		Type:          models.MeetingTypeMeeting,
		ZoomMeetingID: "85746065",
		StartTime:     time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC),
		Duration:      45,
		Timezone:      "America/New_York",
	}
}

func TestClientCachedPerFingerprint(t *testing.T) {
	calls := 0
	provider := newTestProvider(&fakeClient{}, &calls)
	creds := testCredentials()

	provider.clientFor(creds)
	provider.clientFor(creds)
	assert.Equal(t, 1, calls)

	other := creds
	other.ClientSecret = "rotated"
	provider.clientFor(other)
	assert.Equal(t, 2, calls)
}

func TestInvalidateDropsCachedClient(t *testing.T) {
	calls := 0
	provider := newTestProvider(&fakeClient{}, &calls)
	creds := testCredentials()

	provider.clientFor(creds)
	provider.Invalidate(creds)
	provider.clientFor(creds)

	assert.Equal(t, 2, calls)
}

func TestCreateMeetingIncompleteCredentials(t *testing.T) {
	provider := newTestProvider(&fakeClient{}, nil)

	_, err := provider.CreateMeeting(context.Background(), models.ZoomCredentials{AccountID: "only-account"}, testMeeting())

	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestCreateMeeting(t *testing.T) {
	client := &fakeClient{
		meetingResp: &api.CreateMeetingResponse{
			ID:       85746065,
			JoinURL:  "https://zoom.us/j/85746065",
			StartURL: "https://zoom.us/s/85746065",
			Password: "abc123",
		},
	}
	provider := newTestProvider(client, nil)

	result, err := provider.CreateMeeting(context.Background(), testCredentials(), testMeeting())

	require.NoError(t, err)
	assert.Equal(t, "85746065", result.MeetingID)
	assert.Equal(t, "https://zoom.us/j/85746065", result.JoinURL)
	assert.Equal(t, "abc123", result.Passcode)

	require.NotNil(t, client.createMeetingReq)
	assert.Equal(t, "Quarterly Review", client.createMeetingReq.Topic)
	assert.Equal(t, api.MeetingTypeScheduled, client.createMeetingReq.Type)
	assert.Equal(t, "2026-09-01T15:00:00Z", client.createMeetingReq.StartTime)
	assert.Equal(t, 45, client.createMeetingReq.Duration)
	require.NotNil(t, client.createMeetingReq.Settings)
	assert.Equal(t, api.ApprovalTypeAutomatic, client.createMeetingReq.Settings.ApprovalType)
	assert.True(t, client.createMeetingReq.Settings.JoinBeforeHost)
	assert.False(t, client.createMeetingReq.Settings.WaitingRoom)
}

func TestCreateWebinar(t *testing.T) {
	client := &fakeClient{
		webinarResp: &api.CreateWebinarResponse{ID: 99887766, JoinURL: "https://zoom.us/w/99887766"},
	}
	provider := newTestProvider(client, nil)

	meeting := testMeeting()
	meeting.Type = models.MeetingTypeWebinar

	result, err := provider.CreateMeeting(context.Background(), testCredentials(), meeting)

	require.NoError(t, err)
	assert.Equal(t, "99887766", result.MeetingID)
	require.NotNil(t, client.createWebinarReq)
	assert.Equal(t, api.WebinarTypeScheduled, client.createWebinarReq.Type)
	assert.Equal(t, "none", client.createWebinarReq.Settings.AutoRecording)
	assert.Nil(t, client.createMeetingReq)
}

func TestCreateMeetingDefaults(t *testing.T) {
	client := &fakeClient{meetingResp: &api.CreateMeetingResponse{ID: 1}}
	provider := newTestProvider(client, nil)

	meeting := testMeeting()
	meeting.Duration = 0
	meeting.Timezone = ""

	_, err := provider.CreateMeeting(context.Background(), testCredentials(), meeting)

	require.NoError(t, err)
	assert.Equal(t, 60, client.createMeetingReq.Duration)
	assert.Equal(t, "UTC", client.createMeetingReq.Timezone)
}

func TestAddRegistrant(t *testing.T) {
	client := &fakeClient{
		registrantResp: &api.AddRegistrantResponse{
			RegistrantID: "reg-123",
			JoinURL:      "https://zoom.us/j/85746065?tk=xyz",
		},
	}
	provider := newTestProvider(client, nil)

	meeting := testMeeting()
	meeting.FormFields = []models.FormField{
		{Name: "dietary", Label: "Dietary preference", Type: models.FieldTypeText},
	}
	registrant := &models.Registrant{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Company:      "Analytical Engines Ltd",
		City:         "London",
		CustomFields: map[string]string{"dietary": "vegetarian", "extra": "value"},
	}

	result, err := provider.AddRegistrant(context.Background(), testCredentials(), meeting, registrant)

	require.NoError(t, err)
	assert.Equal(t, "reg-123", result.RegistrantID)
	assert.Equal(t, "https://zoom.us/j/85746065?tk=xyz", result.JoinURL)
	assert.Equal(t, "85746065", client.addMeetingID)

	req := client.addRegistrantReq
	require.NotNil(t, req)
	assert.Equal(t, "Analytical Engines Ltd", req.Org)
	assert.Equal(t, "London", req.City)
	assert.Empty(t, req.Phone)
	require.Len(t, req.CustomQuestions, 2)
	assert.Equal(t, api.CustomQuestion{Title: "Dietary preference", Value: "vegetarian"}, req.CustomQuestions[0])
	assert.Equal(t, api.CustomQuestion{Title: "extra", Value: "value"}, req.CustomQuestions[1])
}

func TestAddRegistrantToWebinar(t *testing.T) {
	client := &fakeClient{registrantResp: &api.AddRegistrantResponse{RegistrantID: "wbn-1"}}
	provider := newTestProvider(client, nil)

	meeting := testMeeting()
	meeting.Type = models.MeetingTypeWebinar

	_, err := provider.AddRegistrant(context.Background(), testCredentials(), meeting, &models.Registrant{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "85746065", client.addWebinarID)
	assert.Empty(t, client.addMeetingID)
}

func TestAddRegistrantNotLinked(t *testing.T) {
	provider := newTestProvider(&fakeClient{}, nil)

	meeting := testMeeting()
	meeting.ZoomMeetingID = ""

	_, err := provider.AddRegistrant(context.Background(), testCredentials(), meeting, &models.Registrant{})

	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
}

func TestAddRegistrantUpstreamFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("zoom API error (code 3027): Registrant already exists.")}
	provider := newTestProvider(client, nil)

	_, err := provider.AddRegistrant(context.Background(), testCredentials(), testMeeting(), &models.Registrant{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
	})

	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
	assert.Equal(t, "failed to add registrant to Zoom meeting", domain.ErrorMessage(err))
}

func TestNormalizeErrorAuthFailure(t *testing.T) {
	authErr := &oauth2.RetrieveError{Response: nil, Body: []byte("invalid client")}
	wrapped := normalizeError(errors.Join(authErr), "failed to create Zoom meeting")

	assert.Equal(t, "failed to authenticate with Zoom", domain.ErrorMessage(wrapped))
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(wrapped))
}
