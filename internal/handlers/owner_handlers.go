// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/service"
)

// OwnerHandler handles the owner portal endpoints
type OwnerHandler struct {
	ownerService *service.OwnerService
}

// NewOwnerHandler creates a new owner handler
func NewOwnerHandler(ownerService *service.OwnerService) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService}
}

// ownerSessionResponse is returned by owner login
type ownerSessionResponse struct {
	Token string     `json:"token"`
	Owner *OwnerView `json:"owner"`
}

// Login handles POST /owner/login
func (h *OwnerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	owner, token, err := h.ownerService.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ownerSessionResponse{
		Token: token,
		Owner: ownerView(owner),
	})
}

// organizationSummaryView pairs the organization view with usage counts
type organizationSummaryView struct {
	Organization    *OrganizationView `json:"organization"`
	MeetingCount    int               `json:"meeting_count"`
	RegistrantCount int               `json:"registrant_count"`
}

// ListOrganizations handles GET /owner/organizations
func (h *OwnerHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.OwnerFromContext(r.Context()); !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	summaries, err := h.ownerService.ListOrganizations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]*organizationSummaryView, 0, len(summaries))
	for _, summary := range summaries {
		views = append(views, &organizationSummaryView{
			Organization:    organizationView(summary.Organization),
			MeetingCount:    summary.MeetingCount,
			RegistrantCount: summary.RegistrantCount,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// organizationDetailView is the owner portal's single-tenant response
type organizationDetailView struct {
	Organization *OrganizationView `json:"organization"`
	Meetings     any               `json:"meetings"`
}

// GetOrganization handles GET /owner/organizations/{uid}
func (h *OwnerHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.OwnerFromContext(r.Context()); !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	organization, meetings, err := h.ownerService.GetOrganization(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, organizationDetailView{
		Organization: organizationView(organization),
		Meetings:     meetings,
	})
}

// setActiveRequest is the payload for tenant activation toggling
type setActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// SetOrganizationActive handles PUT /owner/organizations/{uid}/active
func (h *OwnerHandler) SetOrganizationActive(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.OwnerFromContext(r.Context()); !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	var request setActiveRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	organization, err := h.ownerService.SetOrganizationActive(r.Context(), chi.URLParam(r, "uid"), *request.IsActive)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, organizationView(organization))
}

// DeleteOrganization handles DELETE /owner/organizations/{uid}
func (h *OwnerHandler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OwnerFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}
	if principal.Role != "owner" {
		writeError(w, r, domain.NewForbiddenError("only portal owners can delete organizations"))
		return
	}

	if err := h.ownerService.DeleteOrganization(r.Context(), chi.URLParam(r, "uid")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteMeeting handles DELETE /owner/meetings/{uid}
func (h *OwnerHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.OwnerFromContext(r.Context()); !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	if err := h.ownerService.DeleteMeeting(r.Context(), chi.URLParam(r, "uid")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteRegistrant handles DELETE /owner/registrants/{uid}
func (h *OwnerHandler) DeleteRegistrant(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.OwnerFromContext(r.Context()); !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	if err := h.ownerService.DeleteRegistrant(r.Context(), chi.URLParam(r, "uid")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
