// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package handlers implements the HTTP API of the registration service.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
)

// validate is shared across handlers; the validator caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// errorResponse is the JSON body returned for all error statuses
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps a domain error to its HTTP status. Internal causes are
// logged but never leak into the response body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		status = http.StatusBadRequest
	case domain.ErrorTypeUnauthorized:
		status = http.StatusUnauthorized
	case domain.ErrorTypeForbidden:
		status = http.StatusForbidden
	case domain.ErrorTypeNotFound:
		status = http.StatusNotFound
	case domain.ErrorTypeConflict:
		status = http.StatusConflict
	case domain.ErrorTypeUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", logging.ErrKey, err)
	}

	writeJSON(w, status, errorResponse{Error: domain.ErrorMessage(err)})
}

// decodeAndValidate parses the JSON request body into dst and runs the
// struct validation rules. A false return means the response was written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		message := "invalid request body"
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			message = "invalid value for field " + validationErrors[0].Field()
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
		return false
	}
	return true
}
