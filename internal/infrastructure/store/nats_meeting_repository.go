// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
)

// NatsMeetingRepository is the NATS KV store repository for meetings
type NatsMeetingRepository struct {
	*NatsBaseRepository[models.Meeting]
	keyBuilder *KeyBuilder
}

var _ domain.MeetingRepository = (*NatsMeetingRepository)(nil)

// NewNatsMeetingRepository creates a new NATS KV store repository for meetings
func NewNatsMeetingRepository(kvStore INatsKeyValue) *NatsMeetingRepository {
	return &NatsMeetingRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Meeting](kvStore, "meeting"),
		keyBuilder:         NewKeyBuilder(""),
	}
}

func (r *NatsMeetingRepository) entityKey(meetingUID string) string {
	return r.keyBuilder.EntityKeyEncoded(KeyPrefixMeeting, meetingUID)
}

// Create stores a new meeting
func (r *NatsMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	return r.NatsBaseRepository.Create(ctx, r.entityKey(meeting.UID), meeting)
}

// Exists checks whether a meeting exists
func (r *NatsMeetingRepository) Exists(ctx context.Context, meetingUID string) (bool, error) {
	return r.NatsBaseRepository.Exists(ctx, r.entityKey(meetingUID))
}

// Get retrieves a meeting by UID
func (r *NatsMeetingRepository) Get(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	return r.NatsBaseRepository.Get(ctx, r.entityKey(meetingUID))
}

// GetWithRevision retrieves a meeting with its KV revision
func (r *NatsMeetingRepository) GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, r.entityKey(meetingUID))
}

// Update writes a meeting at the given revision
func (r *NatsMeetingRepository) Update(ctx context.Context, meeting *models.Meeting, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, r.entityKey(meeting.UID), meeting, revision)
}

// Delete removes a meeting
func (r *NatsMeetingRepository) Delete(ctx context.Context, meetingUID string, revision uint64) error {
	return r.NatsBaseRepository.Delete(ctx, r.entityKey(meetingUID), revision)
}

// ListByOrganization returns all meetings belonging to an organization
func (r *NatsMeetingRepository) ListByOrganization(ctx context.Context, orgUID string) ([]*models.Meeting, error) {
	all, err := r.ListEntitiesEncoded(ctx, "/"+KeyPrefixMeeting+"/", r.keyBuilder)
	if err != nil {
		return nil, err
	}

	var meetings []*models.Meeting
	for _, meeting := range all {
		if meeting.OrganizationUID == orgUID {
			meetings = append(meetings, meeting)
		}
	}
	return meetings, nil
}
