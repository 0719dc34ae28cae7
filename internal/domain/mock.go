// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
)

// MockOrganizationRepository is a mock implementation of OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Exists(ctx context.Context, orgUID string) (bool, error) {
	args := m.Called(ctx, orgUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrganizationRepository) Get(ctx context.Context, orgUID string) (*models.Organization, error) {
	args := m.Called(ctx, orgUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetWithRevision(ctx context.Context, orgUID string) (*models.Organization, uint64, error) {
	args := m.Called(ctx, orgUID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.Organization), args.Get(1).(uint64), args.Error(2)
}

func (m *MockOrganizationRepository) GetByEmail(ctx context.Context, email string) (*models.Organization, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetBySubdomain(ctx context.Context, subdomain string) (*models.Organization, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *models.Organization, revision uint64) error {
	args := m.Called(ctx, org, revision)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, orgUID string, revision uint64) error {
	args := m.Called(ctx, orgUID, revision)
	return args.Error(0)
}

func (m *MockOrganizationRepository) List(ctx context.Context) ([]*models.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

// MockMeetingRepository is a mock implementation of MeetingRepository
type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) Exists(ctx context.Context, meetingUID string) (bool, error) {
	args := m.Called(ctx, meetingUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMeetingRepository) Get(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	args := m.Called(ctx, meetingUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error) {
	args := m.Called(ctx, meetingUID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.Meeting), args.Get(1).(uint64), args.Error(2)
}

func (m *MockMeetingRepository) Update(ctx context.Context, meeting *models.Meeting, revision uint64) error {
	args := m.Called(ctx, meeting, revision)
	return args.Error(0)
}

func (m *MockMeetingRepository) Delete(ctx context.Context, meetingUID string, revision uint64) error {
	args := m.Called(ctx, meetingUID, revision)
	return args.Error(0)
}

func (m *MockMeetingRepository) ListByOrganization(ctx context.Context, orgUID string) ([]*models.Meeting, error) {
	args := m.Called(ctx, orgUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Meeting), args.Error(1)
}

// MockRegistrantRepository is a mock implementation of RegistrantRepository
type MockRegistrantRepository struct {
	mock.Mock
}

func (m *MockRegistrantRepository) Create(ctx context.Context, registrant *models.Registrant) error {
	args := m.Called(ctx, registrant)
	return args.Error(0)
}

func (m *MockRegistrantRepository) Get(ctx context.Context, registrantUID string) (*models.Registrant, error) {
	args := m.Called(ctx, registrantUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Registrant), args.Error(1)
}

func (m *MockRegistrantRepository) GetWithRevision(ctx context.Context, registrantUID string) (*models.Registrant, uint64, error) {
	args := m.Called(ctx, registrantUID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.Registrant), args.Get(1).(uint64), args.Error(2)
}

func (m *MockRegistrantRepository) Update(ctx context.Context, registrant *models.Registrant, revision uint64) error {
	args := m.Called(ctx, registrant, revision)
	return args.Error(0)
}

func (m *MockRegistrantRepository) Delete(ctx context.Context, registrantUID string, revision uint64) error {
	args := m.Called(ctx, registrantUID, revision)
	return args.Error(0)
}

func (m *MockRegistrantRepository) ExistsByMeetingAndEmail(ctx context.Context, meetingUID, email string) (bool, error) {
	args := m.Called(ctx, meetingUID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrantRepository) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Registrant, error) {
	args := m.Called(ctx, meetingUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Registrant), args.Error(1)
}

func (m *MockRegistrantRepository) ListByOrganization(ctx context.Context, orgUID string) ([]*models.Registrant, error) {
	args := m.Called(ctx, orgUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Registrant), args.Error(1)
}

// MockOwnerRepository is a mock implementation of OwnerRepository
type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) Create(ctx context.Context, owner *models.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) Get(ctx context.Context, ownerUID string) (*models.Owner, error) {
	args := m.Called(ctx, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Owner), args.Error(1)
}

func (m *MockOwnerRepository) GetWithRevision(ctx context.Context, ownerUID string) (*models.Owner, uint64, error) {
	args := m.Called(ctx, ownerUID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.Owner), args.Get(1).(uint64), args.Error(2)
}

func (m *MockOwnerRepository) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Owner), args.Error(1)
}

func (m *MockOwnerRepository) Update(ctx context.Context, owner *models.Owner, revision uint64) error {
	args := m.Called(ctx, owner, revision)
	return args.Error(0)
}

func (m *MockOwnerRepository) List(ctx context.Context) ([]*models.Owner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Owner), args.Error(1)
}

// MockZoomProvider is a mock implementation of ZoomProvider
type MockZoomProvider struct {
	mock.Mock
}

func (m *MockZoomProvider) CreateMeeting(ctx context.Context, creds models.ZoomCredentials, meeting *models.Meeting) (*ZoomMeetingResult, error) {
	args := m.Called(ctx, creds, meeting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ZoomMeetingResult), args.Error(1)
}

func (m *MockZoomProvider) AddRegistrant(ctx context.Context, creds models.ZoomCredentials, meeting *models.Meeting, registrant *models.Registrant) (*ZoomRegistrationResult, error) {
	args := m.Called(ctx, creds, meeting, registrant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ZoomRegistrationResult), args.Error(1)
}

func (m *MockZoomProvider) Invalidate(creds models.ZoomCredentials) {
	m.Called(creds)
}

// MockMessageBuilder is a mock implementation of MessageBuilder
type MockMessageBuilder struct {
	mock.Mock
}

func (m *MockMessageBuilder) PublishMessage(ctx context.Context, subject string, message any) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}

// MockEmailService is a mock implementation of EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRegistrationConfirmation(ctx context.Context, meeting *models.Meeting, registrant *models.Registrant) error {
	args := m.Called(ctx, meeting, registrant)
	return args.Error(0)
}
