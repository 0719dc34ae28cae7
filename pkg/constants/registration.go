// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Registration constraints
const (
	// DefaultMeetingDurationMinutes is the duration used when a meeting is
	// created without an explicit duration.
	DefaultMeetingDurationMinutes = 60

	// MaxMeetingDurationMinutes is the maximum duration of a meeting in minutes
	MaxMeetingDurationMinutes = 1440

	// DefaultTimezone is the timezone used when a meeting is created without
	// an explicit timezone.
	DefaultTimezone = "UTC"
)
