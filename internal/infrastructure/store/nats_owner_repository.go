// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
)

// NatsOwnerRepository is the NATS KV store repository for owner accounts
type NatsOwnerRepository struct {
	*NatsBaseRepository[models.Owner]
	keyBuilder *KeyBuilder
}

var _ domain.OwnerRepository = (*NatsOwnerRepository)(nil)

// NewNatsOwnerRepository creates a new NATS KV store repository for owners
func NewNatsOwnerRepository(kvStore INatsKeyValue) *NatsOwnerRepository {
	return &NatsOwnerRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Owner](kvStore, "owner"),
		keyBuilder:         NewKeyBuilder(""),
	}
}

func (r *NatsOwnerRepository) entityKey(ownerUID string) string {
	return r.keyBuilder.EntityKeyEncoded(KeyPrefixOwner, ownerUID)
}

func (r *NatsOwnerRepository) emailIndexKey(email string) string {
	return r.keyBuilder.IndexKeyEncoded(KeyPrefixIndexEmail, normalizeEmail(email))
}

// Create stores a new owner account and claims its email
func (r *NatsOwnerRepository) Create(ctx context.Context, owner *models.Owner) error {
	emailKey := r.emailIndexKey(owner.Email)
	if err := r.CreateIndex(ctx, emailKey, owner.UID); err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeConflict {
			return domain.NewConflictError("an owner with this email already exists", err)
		}
		return err
	}

	if err := r.NatsBaseRepository.Create(ctx, r.entityKey(owner.UID), owner); err != nil {
		_ = r.DeleteIndex(ctx, emailKey)
		return err
	}

	return nil
}

// Get retrieves an owner by UID
func (r *NatsOwnerRepository) Get(ctx context.Context, ownerUID string) (*models.Owner, error) {
	return r.NatsBaseRepository.Get(ctx, r.entityKey(ownerUID))
}

// GetWithRevision retrieves an owner with its KV revision
func (r *NatsOwnerRepository) GetWithRevision(ctx context.Context, ownerUID string) (*models.Owner, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, r.entityKey(ownerUID))
}

// GetByEmail resolves an owner through the email index
func (r *NatsOwnerRepository) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	ownerUID, err := r.GetIndex(ctx, r.emailIndexKey(email))
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return nil, domain.NewNotFoundError("owner not found", err)
		}
		return nil, err
	}
	return r.Get(ctx, ownerUID)
}

// Update writes an owner at the given revision. Owner emails are fixed at
// creation, so no index maintenance happens here.
func (r *NatsOwnerRepository) Update(ctx context.Context, owner *models.Owner, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, r.entityKey(owner.UID), owner, revision)
}

// List returns all owner accounts
func (r *NatsOwnerRepository) List(ctx context.Context) ([]*models.Owner, error) {
	return r.ListEntitiesEncoded(ctx, "/"+KeyPrefixOwner+"/", r.keyBuilder)
}
