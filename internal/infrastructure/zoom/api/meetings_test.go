// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// newTestClient wires a client against the given API handler with a
// stub token endpoint.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	var fetches atomic.Int64
	authServer := newAuthServer(t, &fetches, 3600)
	apiServer := httptest.NewServer(handler)

	client := NewClient(Config{
		AccountID:      "test-account",
		ClientID:       "test-client-id",
		ClientSecret:   "test-secret",
		BaseURL:        apiServer.URL,
		AuthURL:        authServer.URL,
		MaxRetries:     1,
		InitialBackoff: 1 * time.Millisecond,
	})

	return client, func() {
		apiServer.Close()
		authServer.Close()
	}
}

func TestCreateMeeting(t *testing.T) {
	client, cleanup := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/users/me/meetings" {
			t.Errorf("expected path /users/me/meetings, got %s", r.URL.Path)
		}

		var req CreateMeetingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Topic != "Quarterly Review" {
			t.Errorf("expected topic 'Quarterly Review', got %q", req.Topic)
		}
		if req.Settings == nil || req.Settings.ApprovalType != ApprovalTypeAutomatic {
			t.Error("expected automatic approval in settings")
		}

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{
			"id": 85746065,
			"uuid": "4444AAAiAAAAAiAiAiiAii==",
			"topic": "Quarterly Review",
			"type": 2,
			"start_url": "https://zoom.us/s/85746065?zak=xxx",
			"join_url": "https://zoom.us/j/85746065",
			"password": "abc123"
		}`)
	})
	defer cleanup()

	resp, err := client.CreateMeeting(context.Background(), &CreateMeetingRequest{
		Topic:     "Quarterly Review",
		Type:      MeetingTypeScheduled,
		StartTime: "2026-09-01T15:00:00Z",
		Duration:  60,
		Timezone:  "UTC",
		Settings: &MeetingSettings{
			ApprovalType:     ApprovalTypeAutomatic,
			RegistrationType: RegistrationTypeOnce,
			JoinBeforeHost:   true,
		},
	})
	if err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}

	if resp.ID != 85746065 {
		t.Errorf("expected ID 85746065, got %d", resp.ID)
	}
	if resp.JoinURL != "https://zoom.us/j/85746065" {
		t.Errorf("unexpected join URL %q", resp.JoinURL)
	}
	if resp.Password != "abc123" {
		t.Errorf("unexpected password %q", resp.Password)
	}
}

func TestCreateMeetingError(t *testing.T) {
	client, cleanup := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":300,"message":"Invalid meeting topic."}`)
	})
	defer cleanup()

	_, err := client.CreateMeeting(context.Background(), &CreateMeetingRequest{Topic: ""})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "zoom API error (code 300): Invalid meeting topic." {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestCreateWebinar(t *testing.T) {
	client, cleanup := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me/webinars" {
			t.Errorf("expected path /users/me/webinars, got %s", r.URL.Path)
		}

		var req CreateWebinarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Type != WebinarTypeScheduled {
			t.Errorf("expected webinar type %d, got %d", WebinarTypeScheduled, req.Type)
		}

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{
			"id": 99887766,
			"topic": "Product Launch",
			"type": 5,
			"join_url": "https://zoom.us/w/99887766"
		}`)
	})
	defer cleanup()

	resp, err := client.CreateWebinar(context.Background(), &CreateWebinarRequest{
		Topic: "Product Launch",
		Type:  WebinarTypeScheduled,
		Settings: &WebinarSettings{
			ApprovalType:  ApprovalTypeAutomatic,
			AutoRecording: "none",
		},
	})
	if err != nil {
		t.Fatalf("CreateWebinar failed: %v", err)
	}

	if resp.ID != 99887766 {
		t.Errorf("expected ID 99887766, got %d", resp.ID)
	}
}

func TestGetMeeting(t *testing.T) {
	client, cleanup := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/meetings/85746065" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"id":85746065,"topic":"Quarterly Review","status":"waiting"}`)
	})
	defer cleanup()

	resp, err := client.GetMeeting(context.Background(), "85746065")
	if err != nil {
		t.Fatalf("GetMeeting failed: %v", err)
	}
	if resp.Status != "waiting" {
		t.Errorf("expected status 'waiting', got %q", resp.Status)
	}
}

func TestGetWebinarNotFound(t *testing.T) {
	client, cleanup := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"code":3001,"message":"Webinar does not exist."}`)
	})
	defer cleanup()

	_, err := client.GetWebinar(context.Background(), "404404")
	if err == nil {
		t.Fatal("expected error for missing webinar")
	}
}
