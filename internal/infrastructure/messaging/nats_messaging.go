// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package messaging publishes domain events to NATS.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
)

// INatsConn is the NATS connection interface the message builder needs.
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder publishes domain events over core NATS. Events are
// best effort: registration and sync flows never fail because a
// consumer is down.
type MessageBuilder struct {
	NatsConn INatsConn
}

var _ domain.MessageBuilder = (*MessageBuilder)(nil)

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// envelope is the wire shape of every published event
type envelope struct {
	Subject   string    `json:"subject"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// PublishMessage marshals the message and publishes it on the subject.
func (m *MessageBuilder) PublishMessage(ctx context.Context, subject string, message any) error {
	if m.NatsConn == nil || !m.NatsConn.IsConnected() {
		err := domain.NewUnavailableError("NATS connection is not available")
		slog.WarnContext(ctx, "skipping event publish, NATS not connected", "subject", subject)
		return err
	}

	data, err := json.Marshal(envelope{
		Subject:   subject,
		Timestamp: time.Now().UTC(),
		Data:      message,
	})
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message into JSON", logging.ErrKey, err, "subject", subject)
		return domain.NewInternalError("failed to marshal event", err)
	}

	if err := m.NatsConn.Publish(subject, data); err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return domain.NewInternalError("failed to publish event", err)
	}

	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}
