// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
)

// ZoomMeetingResult contains the identifiers returned by Zoom when a
// meeting or webinar is created on the platform.
type ZoomMeetingResult struct {
	MeetingID string
	JoinURL   string
	StartURL  string
	Passcode  string
}

// ZoomRegistrationResult contains the identifiers returned by Zoom when
// a registrant is added to a meeting or webinar.
type ZoomRegistrationResult struct {
	RegistrantID string
	JoinURL      string
}

// ZoomProvider defines the interface for the Zoom platform integration.
// Implementations authenticate per organization using its Server-to-Server
// OAuth credentials.
type ZoomProvider interface {
	// CreateMeeting creates a meeting or webinar on Zoom with
	// registration enabled, depending on the meeting type.
	CreateMeeting(ctx context.Context, creds models.ZoomCredentials, meeting *models.Meeting) (*ZoomMeetingResult, error)

	// AddRegistrant registers a person for the meeting's Zoom meeting
	// or webinar and returns the Zoom-side registrant identifiers.
	AddRegistrant(ctx context.Context, creds models.ZoomCredentials, meeting *models.Meeting, registrant *models.Registrant) (*ZoomRegistrationResult, error)

	// Invalidate drops any cached client state for the given
	// credentials, forcing a fresh authentication on next use.
	Invalidate(creds models.ZoomCredentials)
}
