// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
)

// NoopService is an EmailService that logs instead of sending. Used when
// no SMTP host is configured.
type NoopService struct{}

var _ domain.EmailService = (*NoopService)(nil)

// NewNoopService creates a new no-op email service
func NewNoopService() *NoopService {
	return &NoopService{}
}

// SendRegistrationConfirmation logs the confirmation that would have been sent
func (s *NoopService) SendRegistrationConfirmation(ctx context.Context, meeting *models.Meeting, registrant *models.Registrant) error {
	slog.InfoContext(ctx, "email sending disabled, skipping confirmation",
		"recipient_email", registrant.Email,
		"meeting_uid", meeting.UID,
	)
	return nil
}
