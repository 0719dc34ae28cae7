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

// OrganizationHandler handles organization account endpoints
type OrganizationHandler struct {
	organizationService *service.OrganizationService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(organizationService *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{organizationService: organizationService}
}

// sessionResponse is returned by signup and login
type sessionResponse struct {
	Token        string            `json:"token"`
	Organization *OrganizationView `json:"organization"`
}

// Signup handles POST /api/signup
func (h *OrganizationHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var request service.SignupOrganizationRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	organization, token, err := h.organizationService.Signup(r.Context(), &request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		Token:        token,
		Organization: organizationView(organization),
	})
}

// loginRequest is the payload for both organization and owner login
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/login
func (h *OrganizationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	organization, token, err := h.organizationService.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		Token:        token,
		Organization: organizationView(organization),
	})
}

// GetProfile handles GET /api/profile
func (h *OrganizationHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	organization, err := h.organizationService.Get(r.Context(), principal.UID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, organizationView(organization))
}

// UpdateProfile handles PUT /api/profile
func (h *OrganizationHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	var request service.UpdateProfileRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	organization, err := h.organizationService.UpdateProfile(r.Context(), principal.UID, &request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, organizationView(organization))
}

// UpdateZoomCredentials handles PUT /api/profile/zoom-credentials
func (h *OrganizationHandler) UpdateZoomCredentials(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	var request service.UpdateZoomCredentialsRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	organization, err := h.organizationService.UpdateZoomCredentials(r.Context(), principal.UID, &request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, organizationView(organization))
}

// GetBySubdomain handles GET /public/{subdomain}. It exposes only the
// fields a landing page needs to identify the tenant.
func (h *OrganizationHandler) GetBySubdomain(w http.ResponseWriter, r *http.Request) {
	organization, err := h.organizationService.GetBySubdomain(r.Context(), chi.URLParam(r, "subdomain"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PublicOrganizationView{
		Name:      organization.Name,
		Subdomain: organization.Subdomain,
	})
}
