// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// NATS subjects for registration service domain events. Consumers are
// best-effort: publishing failures never affect the originating request.
const (
	// RegistrantCreatedSubject is published when a registrant is recorded locally.
	RegistrantCreatedSubject = "registration-service.registrant.created"

	// RegistrantSyncedSubject is published when a registrant is mirrored to Zoom.
	RegistrantSyncedSubject = "registration-service.registrant.synced"

	// RegistrantSyncFailedSubject is published when a Zoom sync attempt fails.
	RegistrantSyncFailedSubject = "registration-service.registrant.sync_failed"

	// RegistrantDeletedSubject is published when a registrant is deleted.
	RegistrantDeletedSubject = "registration-service.registrant.deleted"

	// MeetingCreatedSubject is published when a meeting is created.
	MeetingCreatedSubject = "registration-service.meeting.created"

	// MeetingDeletedSubject is published when a meeting is deleted.
	MeetingDeletedSubject = "registration-service.meeting.deleted"

	// OrganizationCreatedSubject is published when an organization signs up.
	OrganizationCreatedSubject = "registration-service.organization.created"
)
