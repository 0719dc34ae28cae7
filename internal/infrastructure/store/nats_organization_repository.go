// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"strings"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
)

// NatsOrganizationRepository is the NATS KV store repository for tenant
// organizations. Email and subdomain uniqueness is enforced through
// atomically created index entries that point back at the organization UID.
type NatsOrganizationRepository struct {
	*NatsBaseRepository[models.Organization]
	keyBuilder *KeyBuilder
}

var _ domain.OrganizationRepository = (*NatsOrganizationRepository)(nil)

// NewNatsOrganizationRepository creates a new NATS KV store repository for organizations
func NewNatsOrganizationRepository(kvStore INatsKeyValue) *NatsOrganizationRepository {
	return &NatsOrganizationRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Organization](kvStore, "organization"),
		keyBuilder:         NewKeyBuilder(""),
	}
}

func (r *NatsOrganizationRepository) entityKey(orgUID string) string {
	return r.keyBuilder.EntityKeyEncoded(KeyPrefixOrganization, orgUID)
}

func (r *NatsOrganizationRepository) emailIndexKey(email string) string {
	return r.keyBuilder.IndexKeyEncoded(KeyPrefixIndexEmail, normalizeEmail(email))
}

func (r *NatsOrganizationRepository) subdomainIndexKey(subdomain string) string {
	return r.keyBuilder.IndexKeyEncoded(KeyPrefixIndexSubdomain, strings.ToLower(subdomain))
}

// Create stores a new organization and claims its email and subdomain.
// Index claims happen before the entity write so concurrent signups with
// the same email or subdomain cannot both succeed.
func (r *NatsOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	emailKey := r.emailIndexKey(org.Email)
	if err := r.CreateIndex(ctx, emailKey, org.UID); err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeConflict {
			return domain.NewConflictError("an organization with this email already exists", err)
		}
		return err
	}

	subdomainKey := r.subdomainIndexKey(org.Subdomain)
	if err := r.CreateIndex(ctx, subdomainKey, org.UID); err != nil {
		_ = r.DeleteIndex(ctx, emailKey)
		if domain.GetErrorType(err) == domain.ErrorTypeConflict {
			return domain.NewConflictError("this subdomain is already taken", err)
		}
		return err
	}

	if err := r.NatsBaseRepository.Create(ctx, r.entityKey(org.UID), org); err != nil {
		_ = r.DeleteIndex(ctx, emailKey)
		_ = r.DeleteIndex(ctx, subdomainKey)
		return err
	}

	return nil
}

// Exists checks whether an organization exists
func (r *NatsOrganizationRepository) Exists(ctx context.Context, orgUID string) (bool, error) {
	return r.NatsBaseRepository.Exists(ctx, r.entityKey(orgUID))
}

// Get retrieves an organization by UID
func (r *NatsOrganizationRepository) Get(ctx context.Context, orgUID string) (*models.Organization, error) {
	return r.NatsBaseRepository.Get(ctx, r.entityKey(orgUID))
}

// GetWithRevision retrieves an organization with its KV revision
func (r *NatsOrganizationRepository) GetWithRevision(ctx context.Context, orgUID string) (*models.Organization, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, r.entityKey(orgUID))
}

// GetByEmail resolves an organization through its email index
func (r *NatsOrganizationRepository) GetByEmail(ctx context.Context, email string) (*models.Organization, error) {
	orgUID, err := r.GetIndex(ctx, r.emailIndexKey(email))
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return nil, domain.NewNotFoundError("organization not found", err)
		}
		return nil, err
	}
	return r.Get(ctx, orgUID)
}

// GetBySubdomain resolves an organization through its subdomain index
func (r *NatsOrganizationRepository) GetBySubdomain(ctx context.Context, subdomain string) (*models.Organization, error) {
	orgUID, err := r.GetIndex(ctx, r.subdomainIndexKey(subdomain))
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return nil, domain.NewNotFoundError("organization not found", err)
		}
		return nil, err
	}
	return r.Get(ctx, orgUID)
}

// Update writes an organization at the given revision, maintaining the
// email and subdomain indexes when either value changed.
func (r *NatsOrganizationRepository) Update(ctx context.Context, org *models.Organization, revision uint64) error {
	existing, err := r.Get(ctx, org.UID)
	if err != nil {
		return err
	}

	emailChanged := normalizeEmail(existing.Email) != normalizeEmail(org.Email)
	subdomainChanged := !strings.EqualFold(existing.Subdomain, org.Subdomain)

	if emailChanged {
		if err := r.CreateIndex(ctx, r.emailIndexKey(org.Email), org.UID); err != nil {
			if domain.GetErrorType(err) == domain.ErrorTypeConflict {
				return domain.NewConflictError("an organization with this email already exists", err)
			}
			return err
		}
	}
	if subdomainChanged {
		if err := r.CreateIndex(ctx, r.subdomainIndexKey(org.Subdomain), org.UID); err != nil {
			if emailChanged {
				_ = r.DeleteIndex(ctx, r.emailIndexKey(org.Email))
			}
			if domain.GetErrorType(err) == domain.ErrorTypeConflict {
				return domain.NewConflictError("this subdomain is already taken", err)
			}
			return err
		}
	}

	if err := r.NatsBaseRepository.Update(ctx, r.entityKey(org.UID), org, revision); err != nil {
		if emailChanged {
			_ = r.DeleteIndex(ctx, r.emailIndexKey(org.Email))
		}
		if subdomainChanged {
			_ = r.DeleteIndex(ctx, r.subdomainIndexKey(org.Subdomain))
		}
		return err
	}

	if emailChanged {
		_ = r.DeleteIndex(ctx, r.emailIndexKey(existing.Email))
	}
	if subdomainChanged {
		_ = r.DeleteIndex(ctx, r.subdomainIndexKey(existing.Subdomain))
	}

	return nil
}

// Delete removes an organization and its index entries
func (r *NatsOrganizationRepository) Delete(ctx context.Context, orgUID string, revision uint64) error {
	existing, err := r.Get(ctx, orgUID)
	if err != nil {
		return err
	}

	if err := r.NatsBaseRepository.Delete(ctx, r.entityKey(orgUID), revision); err != nil {
		return err
	}

	// Index cleanup is best effort once the entity is gone.
	_ = r.DeleteIndex(ctx, r.emailIndexKey(existing.Email))
	_ = r.DeleteIndex(ctx, r.subdomainIndexKey(existing.Subdomain))

	return nil
}

// List returns all organizations
func (r *NatsOrganizationRepository) List(ctx context.Context) ([]*models.Organization, error) {
	return r.ListEntitiesEncoded(ctx, "/"+KeyPrefixOrganization+"/", r.keyBuilder)
}

// normalizeEmail lowercases and trims an email for use as an index value
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
