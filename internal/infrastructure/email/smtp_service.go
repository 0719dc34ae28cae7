// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package email sends registration emails over SMTP.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
)

// SMTPService implements the EmailService interface using SMTP
type SMTPService struct {
	config SMTPConfig
	send   smtpSender
}

// SMTPConfig holds the SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string // Optional for authenticated SMTP
	Password string // Optional for authenticated SMTP
}

var _ domain.EmailService = (*SMTPService)(nil)

// NewSMTPService creates a new SMTP email service
func NewSMTPService(config SMTPConfig) *SMTPService {
	return &SMTPService{
		config: config,
		send:   sendEmailMessage,
	}
}

// SendRegistrationConfirmation sends a confirmation email to a registrant
func (s *SMTPService) SendRegistrationConfirmation(ctx context.Context, meeting *models.Meeting, registrant *models.Registrant) error {
	ctx = logging.AppendCtx(ctx, slog.String("recipient_email", registrant.Email))
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meeting.UID))

	data := newConfirmationData(meeting, registrant)

	htmlContent, err := renderConfirmationHTML(data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render HTML template", logging.ErrKey, err)
		return err
	}

	textContent, err := renderConfirmationText(data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render text template", logging.ErrKey, err)
		return err
	}

	subject := fmt.Sprintf("Registration confirmed: %s", meeting.Name)
	message := buildEmailMessage(registrant.Email, subject, htmlContent, textContent, s.config)
	if err := s.send(registrant.Email, message, s.config); err != nil {
		slog.ErrorContext(ctx, "failed to send confirmation email", logging.ErrKey, err)
		return err
	}

	slog.InfoContext(ctx, "confirmation email sent successfully")
	return nil
}
