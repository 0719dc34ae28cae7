// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Constants for the HTTP request headers
const (
	// AuthorizationHeader is the header name for the authorization
	AuthorizationHeader string = "Authorization"

	// RequestIDHeader is the header name for the request ID
	RequestIDHeader string = "X-REQUEST-ID"
)

// contextRequestID is the type for the request ID context key
type contextRequestID string

// RequestIDContextID is the context ID for the request ID
const RequestIDContextID contextRequestID = "X-REQUEST-ID"

// contextOrganization is the type for the authenticated organization context key
type contextOrganization string

// OrganizationContextID is the context ID for the authenticated organization
const OrganizationContextID contextOrganization = "organization"

// contextOwner is the type for the authenticated owner context key
type contextOwner string

// OwnerContextID is the context ID for the authenticated portal owner
const OwnerContextID contextOwner = "owner"
