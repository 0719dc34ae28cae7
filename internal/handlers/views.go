// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"time"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/service"
)

// OrganizationView is the API representation of an organization. Password
// hashes and the Zoom client secret never leave the service.
type OrganizationView struct {
	UID                string     `json:"uid"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Subdomain          string     `json:"subdomain"`
	ZoomAccountID      string     `json:"zoom_account_id,omitempty"`
	ZoomClientID       string     `json:"zoom_client_id,omitempty"`
	HasZoomCredentials bool       `json:"has_zoom_credentials"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

func organizationView(organization *models.Organization) *OrganizationView {
	return &OrganizationView{
		UID:                organization.UID,
		Name:               organization.Name,
		Email:              organization.Email,
		Subdomain:          organization.Subdomain,
		ZoomAccountID:      organization.ZoomAccountID,
		ZoomClientID:       organization.ZoomClientID,
		HasZoomCredentials: organization.HasZoomCredentials(),
		IsActive:           organization.IsActive,
		CreatedAt:          organization.CreatedAt,
		UpdatedAt:          organization.UpdatedAt,
	}
}

// PublicOrganizationView is the subset of organization data embedded in
// public landing pages.
type PublicOrganizationView struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

// PublicMeetingView is the subset of meeting data shown on public landing
// pages. Host-side Zoom URLs are omitted.
type PublicMeetingView struct {
	UID                    string             `json:"uid"`
	Name                   string             `json:"name"`
	Type                   models.MeetingType `json:"type"`
	Description            string             `json:"description,omitempty"`
	StartTime              time.Time          `json:"start_time"`
	Duration               int                `json:"duration"`
	Timezone               string             `json:"timezone"`
	LandingPageTitle       string             `json:"landing_page_title,omitempty"`
	LandingPageDescription string             `json:"landing_page_description,omitempty"`
	FormFields             []models.FormField `json:"form_fields,omitempty"`
}

// LandingPageView is the public landing page payload
type LandingPageView struct {
	Organization PublicOrganizationView `json:"organization"`
	Meeting      PublicMeetingView      `json:"meeting"`
}

func landingPageView(page *service.LandingPage) *LandingPageView {
	return &LandingPageView{
		Organization: PublicOrganizationView{
			Name:      page.Organization.Name,
			Subdomain: page.Organization.Subdomain,
		},
		Meeting: PublicMeetingView{
			UID:                    page.Meeting.UID,
			Name:                   page.Meeting.Name,
			Type:                   page.Meeting.Type,
			Description:            page.Meeting.Description,
			StartTime:              page.Meeting.StartTime,
			Duration:               page.Meeting.Duration,
			Timezone:               page.Meeting.Timezone,
			LandingPageTitle:       page.Meeting.LandingPageTitle,
			LandingPageDescription: page.Meeting.LandingPageDescription,
			FormFields:             page.Meeting.FormFields,
		},
	}
}

// RegistrantView is the API representation of a registrant with its
// derived sync status.
type RegistrantView struct {
	*models.Registrant
	SyncStatus models.SyncStatus `json:"sync_status"`
}

func registrantView(registrant *models.Registrant) *RegistrantView {
	return &RegistrantView{
		Registrant: registrant,
		SyncStatus: registrant.SyncStatus(),
	}
}

func registrantViews(registrants []*models.Registrant) []*RegistrantView {
	views := make([]*RegistrantView, 0, len(registrants))
	for _, registrant := range registrants {
		views = append(views, registrantView(registrant))
	}
	return views
}

// PublicRegistrationView is what a successful public registration returns.
// The registrant UID is deliberately not exposed.
type PublicRegistrationView struct {
	Email       string            `json:"email"`
	SyncStatus  models.SyncStatus `json:"sync_status"`
	ZoomJoinURL string            `json:"zoom_join_url,omitempty"`
}

// OwnerView is the API representation of a portal owner account
type OwnerView struct {
	UID       string           `json:"uid"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      models.OwnerRole `json:"role"`
	LastLogin *time.Time       `json:"last_login,omitempty"`
}

func ownerView(owner *models.Owner) *OwnerView {
	return &OwnerView{
		UID:       owner.UID,
		Name:      owner.Name,
		Email:     owner.Email,
		Role:      owner.Role,
		LastLogin: owner.LastLogin,
	}
}
