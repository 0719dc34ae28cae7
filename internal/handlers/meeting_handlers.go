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

// MeetingHandler handles the organization-facing meeting endpoints
type MeetingHandler struct {
	meetingService    *service.MeetingService
	registrantService *service.RegistrantService
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService *service.MeetingService, registrantService *service.RegistrantService) *MeetingHandler {
	return &MeetingHandler{
		meetingService:    meetingService,
		registrantService: registrantService,
	}
}

// Create handles POST /api/meetings
func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	var request service.CreateMeetingRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	meeting, err := h.meetingService.Create(r.Context(), principal.UID, &request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, meeting)
}

// List handles GET /api/meetings
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	meetings, err := h.meetingService.List(r.Context(), principal.UID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, meetings)
}

// Get handles GET /api/meetings/{uid}
func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	meeting, err := h.meetingService.Get(r.Context(), principal.UID, chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, meeting)
}

// Update handles PUT /api/meetings/{uid}
func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	var request service.UpdateMeetingRequest
	if !decodeAndValidate(w, r, &request) {
		return
	}

	meeting, err := h.meetingService.Update(r.Context(), principal.UID, chi.URLParam(r, "uid"), &request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, meeting)
}

// Delete handles DELETE /api/meetings/{uid}
func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	if err := h.meetingService.Delete(r.Context(), principal.UID, chi.URLParam(r, "uid")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRegistrants handles GET /api/meetings/{uid}/registrants
func (h *MeetingHandler) ListRegistrants(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	registrants, err := h.registrantService.ListByMeeting(r.Context(), principal.UID, chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, registrantViews(registrants))
}

// GetRegistrant handles GET /api/registrants/{uid}
func (h *MeetingHandler) GetRegistrant(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	registrant, err := h.registrantService.Get(r.Context(), principal.UID, chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, registrantView(registrant))
}

// RetrySync handles POST /api/registrants/{uid}/retry-sync
func (h *MeetingHandler) RetrySync(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	registrant, err := h.registrantService.RetrySync(r.Context(), principal.UID, chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, registrantView(registrant))
}

// DeleteRegistrant handles DELETE /api/registrants/{uid}
func (h *MeetingHandler) DeleteRegistrant(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.OrganizationFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.NewUnauthorizedError("not authenticated"))
		return
	}

	if err := h.registrantService.Delete(r.Context(), principal.UID, chi.URLParam(r, "uid")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
