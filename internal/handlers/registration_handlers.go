// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/service"
)

// RegistrationHandler handles the public, unauthenticated landing page
// and registration endpoints.
type RegistrationHandler struct {
	meetingService    *service.MeetingService
	registrantService *service.RegistrantService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(meetingService *service.MeetingService, registrantService *service.RegistrantService) *RegistrationHandler {
	return &RegistrationHandler{
		meetingService:    meetingService,
		registrantService: registrantService,
	}
}

// GetLandingPage handles GET /public/{subdomain}/meetings/{uid}
func (h *RegistrationHandler) GetLandingPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.meetingService.GetLandingPage(r.Context(), chi.URLParam(r, "subdomain"), chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, landingPageView(page))
}

// Register handles POST /public/{subdomain}/meetings/{uid}/register.
// Registration succeeds with 201 whether or not the Zoom sync worked;
// the response carries the sync outcome.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request service.RegisterRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	registrant, err := h.registrantService.Register(r.Context(), chi.URLParam(r, "subdomain"), chi.URLParam(r, "uid"), &request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, PublicRegistrationView{
		Email:       registrant.Email,
		SyncStatus:  registrant.SyncStatus(),
		ZoomJoinURL: registrant.ZoomJoinURL,
	})
}
