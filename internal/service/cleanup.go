// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-registration-service/pkg/concurrent"
)

// cascadeWorkers bounds the concurrency of child-record cleanup.
const cascadeWorkers = 10

// deleteRegistrants removes a batch of registrants concurrently. Each
// delete is independent; failures are logged and do not stop the batch.
func deleteRegistrants(ctx context.Context, repo domain.RegistrantRepository, registrants []*models.Registrant) {
	tasks := make([]func() error, 0, len(registrants))
	for _, registrant := range registrants {
		tasks = append(tasks, func() error {
			_, revision, err := repo.GetWithRevision(ctx, registrant.UID)
			if err != nil {
				return nil
			}
			if err := repo.Delete(ctx, registrant.UID, revision); err != nil {
				slog.WarnContext(ctx, "failed to delete registrant during cascade",
					"registrant_uid", registrant.UID, logging.ErrKey, err)
			}
			return nil
		})
	}
	concurrent.NewWorkerPool(cascadeWorkers).RunAll(ctx, tasks...)
}

// deleteMeetings removes a batch of meetings concurrently with the same
// failure handling as deleteRegistrants.
func deleteMeetings(ctx context.Context, repo domain.MeetingRepository, meetings []*models.Meeting) {
	tasks := make([]func() error, 0, len(meetings))
	for _, meeting := range meetings {
		tasks = append(tasks, func() error {
			_, revision, err := repo.GetWithRevision(ctx, meeting.UID)
			if err != nil {
				return nil
			}
			if err := repo.Delete(ctx, meeting.UID, revision); err != nil {
				slog.WarnContext(ctx, "failed to delete meeting during cascade",
					"meeting_uid", meeting.UID, logging.ErrKey, err)
			}
			return nil
		})
	}
	concurrent.NewWorkerPool(cascadeWorkers).RunAll(ctx, tasks...)
}
