// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
)

// NatsRegistrantRepository is the NATS KV store repository for registrants.
// The (meeting, email) pair is reserved through an atomically created index
// entry, so two concurrent registrations with the same email cannot both
// pass a read-then-write check.
type NatsRegistrantRepository struct {
	*NatsBaseRepository[models.Registrant]
	keyBuilder *KeyBuilder
}

var _ domain.RegistrantRepository = (*NatsRegistrantRepository)(nil)

// NewNatsRegistrantRepository creates a new NATS KV store repository for registrants
func NewNatsRegistrantRepository(kvStore INatsKeyValue) *NatsRegistrantRepository {
	return &NatsRegistrantRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Registrant](kvStore, "registrant"),
		keyBuilder:         NewKeyBuilder(""),
	}
}

func (r *NatsRegistrantRepository) entityKey(registrantUID string) string {
	return r.keyBuilder.EntityKeyEncoded(KeyPrefixRegistrant, registrantUID)
}

func (r *NatsRegistrantRepository) reservationKey(meetingUID, email string) string {
	return r.keyBuilder.CompoundIndexKeyEncoded(KeyPrefixIndexMeetingEmail, meetingUID, normalizeEmail(email))
}

// Create reserves the (meeting, email) pair and stores the registrant
func (r *NatsRegistrantRepository) Create(ctx context.Context, registrant *models.Registrant) error {
	reservation := r.reservationKey(registrant.MeetingUID, registrant.Email)
	if err := r.CreateIndex(ctx, reservation, registrant.UID); err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeConflict {
			return domain.NewConflictError("this email is already registered for this meeting", err)
		}
		return err
	}

	if err := r.NatsBaseRepository.Create(ctx, r.entityKey(registrant.UID), registrant); err != nil {
		_ = r.DeleteIndex(ctx, reservation)
		return err
	}

	return nil
}

// Get retrieves a registrant by UID
func (r *NatsRegistrantRepository) Get(ctx context.Context, registrantUID string) (*models.Registrant, error) {
	return r.NatsBaseRepository.Get(ctx, r.entityKey(registrantUID))
}

// GetWithRevision retrieves a registrant with its KV revision
func (r *NatsRegistrantRepository) GetWithRevision(ctx context.Context, registrantUID string) (*models.Registrant, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, r.entityKey(registrantUID))
}

// Update writes a registrant at the given revision
func (r *NatsRegistrantRepository) Update(ctx context.Context, registrant *models.Registrant, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, r.entityKey(registrant.UID), registrant, revision)
}

// Delete removes a registrant and releases its (meeting, email) reservation
func (r *NatsRegistrantRepository) Delete(ctx context.Context, registrantUID string, revision uint64) error {
	existing, err := r.Get(ctx, registrantUID)
	if err != nil {
		return err
	}

	if err := r.NatsBaseRepository.Delete(ctx, r.entityKey(registrantUID), revision); err != nil {
		return err
	}

	// Reservation cleanup is best effort once the entity is gone.
	_ = r.DeleteIndex(ctx, r.reservationKey(existing.MeetingUID, existing.Email))

	return nil
}

// ExistsByMeetingAndEmail checks whether the email already registered for the meeting
func (r *NatsRegistrantRepository) ExistsByMeetingAndEmail(ctx context.Context, meetingUID, email string) (bool, error) {
	_, err := r.GetIndex(ctx, r.reservationKey(meetingUID, email))
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListByMeeting returns all registrants of a meeting
func (r *NatsRegistrantRepository) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Registrant, error) {
	all, err := r.ListEntitiesEncoded(ctx, "/"+KeyPrefixRegistrant+"/", r.keyBuilder)
	if err != nil {
		return nil, err
	}

	var registrants []*models.Registrant
	for _, registrant := range all {
		if registrant.MeetingUID == meetingUID {
			registrants = append(registrants, registrant)
		}
	}
	return registrants, nil
}

// ListByOrganization returns all registrants across an organization's meetings
func (r *NatsRegistrantRepository) ListByOrganization(ctx context.Context, orgUID string) ([]*models.Registrant, error) {
	all, err := r.ListEntitiesEncoded(ctx, "/"+KeyPrefixRegistrant+"/", r.keyBuilder)
	if err != nil {
		return nil, err
	}

	var registrants []*models.Registrant
	for _, registrant := range all {
		if registrant.OrganizationUID == orgUID {
			registrants = append(registrants, registrant)
		}
	}
	return registrants, nil
}
