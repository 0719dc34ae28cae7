// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// SyncStatus is the derived three-valued sync state of a registrant.
type SyncStatus string

const (
	// SyncStatusSynced means the registrant is mirrored in Zoom. Terminal.
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusError means the last sync attempt failed; retriable.
	SyncStatusError SyncStatus = "error"
	// SyncStatusNotAttempted means no sync was ever attempted, e.g. the
	// meeting has no Zoom linkage. Not an error state.
	SyncStatusNotAttempted SyncStatus = "not_attempted"
)

// Registrant is the key-value store representation of one attendee's
// submission for one meeting.
type Registrant struct {
	UID             string `json:"uid"`
	MeetingUID      string `json:"meeting_uid"`
	OrganizationUID string `json:"organization_uid"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`

	Phone                 string `json:"phone,omitempty"`
	Address               string `json:"address,omitempty"`
	City                  string `json:"city,omitempty"`
	Country               string `json:"country,omitempty"`
	ZipCode               string `json:"zip_code,omitempty"`
	State                 string `json:"state,omitempty"`
	Company               string `json:"company,omitempty"`
	JobTitle              string `json:"job_title,omitempty"`
	Industry              string `json:"industry,omitempty"`
	PurchasingTimeFrame   string `json:"purchasing_time_frame,omitempty"`
	RoleInPurchaseProcess string `json:"role_in_purchase_process,omitempty"`
	NumberOfEmployees     string `json:"no_of_employees,omitempty"`
	Comments              string `json:"comments,omitempty"`

	CustomFields map[string]string `json:"custom_fields,omitempty"`

	// Sync fields are written once at registration time and afterwards only
	// by the manual retry operation.
	ZoomRegistrantID string `json:"zoom_registrant_id,omitempty"`
	ZoomJoinURL      string `json:"zoom_join_url,omitempty"`
	SyncedToZoom     bool   `json:"synced_to_zoom"`
	SyncError        string `json:"sync_error,omitempty"`

	RegisteredAt *time.Time `json:"registered_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// SyncStatus derives the three-valued sync state from the stored fields.
func (r *Registrant) SyncStatus() SyncStatus {
	switch {
	case r.SyncedToZoom:
		return SyncStatusSynced
	case r.SyncError != "":
		return SyncStatusError
	default:
		return SyncStatusNotAttempted
	}
}
