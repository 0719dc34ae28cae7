// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Meeting type constants for Zoom API
const (
	MeetingTypeInstant              = 1
	MeetingTypeScheduled            = 2
	MeetingTypeRecurringNoFixedTime = 3
	MeetingTypeRecurringFixedTime   = 8
)

// Webinar type constants for Zoom API
const (
	WebinarTypeScheduled            = 5
	WebinarTypeRecurringNoFixedTime = 6
	WebinarTypeRecurringFixedTime   = 9
)

// Registration approval constants for Zoom API
const (
	ApprovalTypeAutomatic = 0
	ApprovalTypeManual    = 1
	ApprovalTypeNone      = 2

	RegistrationTypeOnce = 1
)

// CreateMeetingRequest represents the request to create a Zoom meeting
type CreateMeetingRequest struct {
	Topic     string           `json:"topic"`
	Type      int              `json:"type"`
	StartTime string           `json:"start_time,omitempty"`
	Duration  int              `json:"duration,omitempty"`
	Timezone  string           `json:"timezone,omitempty"`
	Agenda    string           `json:"agenda,omitempty"`
	Settings  *MeetingSettings `json:"settings,omitempty"`
}

// MeetingSettings represents Zoom meeting settings
type MeetingSettings struct {
	HostVideo        bool   `json:"host_video"`
	ParticipantVideo bool   `json:"participant_video"`
	JoinBeforeHost   bool   `json:"join_before_host"`
	MuteUponEntry    bool   `json:"mute_upon_entry"`
	ApprovalType     int    `json:"approval_type"`
	RegistrationType int    `json:"registration_type,omitempty"`
	AutoRecording    string `json:"auto_recording,omitempty"`
	WaitingRoom      bool   `json:"waiting_room"`
}

// CreateMeetingResponse represents the response from creating or fetching a Zoom meeting
type CreateMeetingResponse struct {
	ID        int64            `json:"id"`
	UUID      string           `json:"uuid"`
	HostID    string           `json:"host_id"`
	Topic     string           `json:"topic"`
	Type      int              `json:"type"`
	Status    string           `json:"status"`
	StartTime string           `json:"start_time"`
	Duration  int              `json:"duration"`
	Timezone  string           `json:"timezone"`
	CreatedAt string           `json:"created_at"`
	StartURL  string           `json:"start_url"`
	JoinURL   string           `json:"join_url"`
	Password  string           `json:"password"`
	Settings  *MeetingSettings `json:"settings"`
}

// CreateWebinarRequest represents the request to create a Zoom webinar
type CreateWebinarRequest struct {
	Topic     string           `json:"topic"`
	Type      int              `json:"type"`
	StartTime string           `json:"start_time,omitempty"`
	Duration  int              `json:"duration,omitempty"`
	Timezone  string           `json:"timezone,omitempty"`
	Agenda    string           `json:"agenda,omitempty"`
	Settings  *WebinarSettings `json:"settings,omitempty"`
}

// WebinarSettings represents Zoom webinar settings
type WebinarSettings struct {
	HostVideo        bool   `json:"host_video"`
	PanelistsVideo   bool   `json:"panelists_video"`
	ApprovalType     int    `json:"approval_type"`
	RegistrationType int    `json:"registration_type,omitempty"`
	AutoRecording    string `json:"auto_recording,omitempty"`
}

// CreateWebinarResponse represents the response from creating or fetching a Zoom webinar
type CreateWebinarResponse struct {
	ID        int64            `json:"id"`
	UUID      string           `json:"uuid"`
	HostID    string           `json:"host_id"`
	Topic     string           `json:"topic"`
	Type      int              `json:"type"`
	StartTime string           `json:"start_time"`
	Duration  int              `json:"duration"`
	Timezone  string           `json:"timezone"`
	CreatedAt string           `json:"created_at"`
	StartURL  string           `json:"start_url"`
	JoinURL   string           `json:"join_url"`
	Password  string           `json:"password"`
	Settings  *WebinarSettings `json:"settings"`
}

// CreateMeeting creates a new meeting with registration enabled under the
// authenticated account. This is a pure API call with no business logic.
func (c *Client) CreateMeeting(ctx context.Context, request *CreateMeetingRequest) (*CreateMeetingResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/me/meetings", request)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(body)
	}

	var meetingResp CreateMeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&meetingResp); err != nil {
		return nil, fmt.Errorf("failed to decode meeting response: %w", err)
	}

	return &meetingResp, nil
}

// CreateWebinar creates a new webinar with registration enabled under the
// authenticated account. This is a pure API call with no business logic.
func (c *Client) CreateWebinar(ctx context.Context, request *CreateWebinarRequest) (*CreateWebinarResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/users/me/webinars", request)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(body)
	}

	var webinarResp CreateWebinarResponse
	if err := json.NewDecoder(resp.Body).Decode(&webinarResp); err != nil {
		return nil, fmt.Errorf("failed to decode webinar response: %w", err)
	}

	return &webinarResp, nil
}

// GetMeeting fetches a meeting from Zoom by its numeric ID
func (c *Client) GetMeeting(ctx context.Context, meetingID string) (*CreateMeetingResponse, error) {
	path := fmt.Sprintf("/meetings/%s", meetingID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(body)
	}

	var meetingResp CreateMeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&meetingResp); err != nil {
		return nil, fmt.Errorf("failed to decode meeting response: %w", err)
	}

	return &meetingResp, nil
}

// GetWebinar fetches a webinar from Zoom by its numeric ID
func (c *Client) GetWebinar(ctx context.Context, webinarID string) (*CreateWebinarResponse, error) {
	path := fmt.Sprintf("/webinars/%s", webinarID)
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(body)
	}

	var webinarResp CreateWebinarResponse
	if err := json.NewDecoder(resp.Body).Decode(&webinarResp); err != nil {
		return nil, fmt.Errorf("failed to decode webinar response: %w", err)
	}

	return &webinarResp, nil
}
