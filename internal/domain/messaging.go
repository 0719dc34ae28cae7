// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import "context"

// MessageBuilder defines the interface for publishing domain events
type MessageBuilder interface {
	PublishMessage(ctx context.Context, subject string, message any) error
}
