// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
)

// OrganizationRepository defines the interface for organization storage operations
type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	Exists(ctx context.Context, orgUID string) (bool, error)
	Get(ctx context.Context, orgUID string) (*models.Organization, error)
	GetWithRevision(ctx context.Context, orgUID string) (*models.Organization, uint64, error)
	GetByEmail(ctx context.Context, email string) (*models.Organization, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Organization, error)
	Update(ctx context.Context, org *models.Organization, revision uint64) error
	Delete(ctx context.Context, orgUID string, revision uint64) error
	List(ctx context.Context) ([]*models.Organization, error)
}

// MeetingRepository defines the interface for meeting storage operations
type MeetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	Exists(ctx context.Context, meetingUID string) (bool, error)
	Get(ctx context.Context, meetingUID string) (*models.Meeting, error)
	GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error)
	Update(ctx context.Context, meeting *models.Meeting, revision uint64) error
	Delete(ctx context.Context, meetingUID string, revision uint64) error
	ListByOrganization(ctx context.Context, orgUID string) ([]*models.Meeting, error)
}

// RegistrantRepository defines the interface for registrant storage operations
type RegistrantRepository interface {
	// Create stores the registrant and atomically reserves the
	// (meeting, email) pair. Returns a conflict error when the email is
	// already registered for the meeting.
	Create(ctx context.Context, registrant *models.Registrant) error
	Get(ctx context.Context, registrantUID string) (*models.Registrant, error)
	GetWithRevision(ctx context.Context, registrantUID string) (*models.Registrant, uint64, error)
	Update(ctx context.Context, registrant *models.Registrant, revision uint64) error
	Delete(ctx context.Context, registrantUID string, revision uint64) error
	ExistsByMeetingAndEmail(ctx context.Context, meetingUID, email string) (bool, error)
	ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Registrant, error)
	ListByOrganization(ctx context.Context, orgUID string) ([]*models.Registrant, error)
}

// OwnerRepository defines the interface for owner account storage operations
type OwnerRepository interface {
	Create(ctx context.Context, owner *models.Owner) error
	Get(ctx context.Context, ownerUID string) (*models.Owner, error)
	GetWithRevision(ctx context.Context, ownerUID string) (*models.Owner, uint64, error)
	GetByEmail(ctx context.Context, email string) (*models.Owner, error)
	Update(ctx context.Context, owner *models.Owner, revision uint64) error
	List(ctx context.Context) ([]*models.Owner, error)
}
