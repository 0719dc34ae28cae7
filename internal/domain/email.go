// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
)

// EmailService defines the interface for sending registration emails
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, meeting *models.Meeting, registrant *models.Registrant) error
}
