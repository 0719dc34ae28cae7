// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// MeetingType determines which Zoom endpoint family is used for the entity's
// lifetime. It is fixed at creation.
type MeetingType string

const (
	// MeetingTypeMeeting is a regular Zoom meeting.
	MeetingTypeMeeting MeetingType = "meeting"
	// MeetingTypeWebinar is a Zoom webinar.
	MeetingTypeWebinar MeetingType = "webinar"
)

// Valid reports whether the meeting type is one of the supported values.
func (t MeetingType) Valid() bool {
	return t == MeetingTypeMeeting || t == MeetingTypeWebinar
}

// FieldType is the input type of a landing-page form field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
)

// FormField is one configurable input on a meeting's registration form.
type FormField struct {
	Name              string    `json:"name"`
	Label             string    `json:"label"`
	Type              FieldType `json:"type"`
	Required          bool      `json:"required"`
	StandardZoomField bool      `json:"standard_zoom_field"`
	ZoomFieldKey      string    `json:"zoom_field_key,omitempty"`
	Options           []string  `json:"options,omitempty"`
	Order             int       `json:"order"`
}

// Meeting is the key-value store representation of a meeting or webinar with
// its registration landing page configuration.
type Meeting struct {
	UID                    string      `json:"uid"`
	OrganizationUID        string      `json:"organization_uid"`
	Name                   string      `json:"name"`
	Type                   MeetingType `json:"type"`
	Description            string      `json:"description,omitempty"`
	ZoomMeetingID          string      `json:"zoom_meeting_id,omitempty"`
	ZoomJoinURL            string      `json:"zoom_join_url,omitempty"`
	ZoomStartURL           string      `json:"zoom_start_url,omitempty"`
	ZoomPasscode           string      `json:"zoom_passcode,omitempty"`
	StartTime              time.Time   `json:"start_time"`
	Duration               int         `json:"duration"`
	Timezone               string      `json:"timezone"`
	LandingPageTitle       string      `json:"landing_page_title,omitempty"`
	LandingPageDescription string      `json:"landing_page_description,omitempty"`
	FormFields             []FormField `json:"form_fields,omitempty"`
	IsActive               bool        `json:"is_active"`
	CreatedAt              *time.Time  `json:"created_at,omitempty"`
	UpdatedAt              *time.Time  `json:"updated_at,omitempty"`
}

// ZoomLinked reports whether the meeting is linked to a remote Zoom entity.
// An empty ID is a deliberate state: registration-only meetings never sync.
func (m *Meeting) ZoomLinked() bool {
	return m.ZoomMeetingID != ""
}
