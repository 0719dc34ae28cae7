// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// CustomQuestion represents an answer to a custom registration question
type CustomQuestion struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// AddRegistrantRequest represents the request to add a registrant to a
// Zoom meeting or webinar. Only first name, last name, and email are
// required; every other field is sent only when it has a value.
type AddRegistrantRequest struct {
	FirstName             string           `json:"first_name"`
	LastName              string           `json:"last_name"`
	Email                 string           `json:"email"`
	Address               string           `json:"address,omitempty"`
	City                  string           `json:"city,omitempty"`
	Country               string           `json:"country,omitempty"`
	Zip                   string           `json:"zip,omitempty"`
	State                 string           `json:"state,omitempty"`
	Phone                 string           `json:"phone,omitempty"`
	Industry              string           `json:"industry,omitempty"`
	Org                   string           `json:"org,omitempty"`
	JobTitle              string           `json:"job_title,omitempty"`
	PurchasingTimeFrame   string           `json:"purchasing_time_frame,omitempty"`
	RoleInPurchaseProcess string           `json:"role_in_purchase_process,omitempty"`
	NumberOfEmployees     string           `json:"no_of_employees,omitempty"`
	Comments              string           `json:"comments,omitempty"`
	CustomQuestions       []CustomQuestion `json:"custom_questions,omitempty"`
}

// AddRegistrantResponse represents the response from adding a registrant
type AddRegistrantResponse struct {
	ID           int64  `json:"id"`
	RegistrantID string `json:"registrant_id"`
	JoinURL      string `json:"join_url"`
	Topic        string `json:"topic"`
	StartTime    string `json:"start_time"`
}

// ResolvedRegistrantID returns the registrant identifier from the
// response. Meeting and webinar responses differ in which field carries
// it, so fall back to the numeric id when registrant_id is absent.
func (r *AddRegistrantResponse) ResolvedRegistrantID() string {
	if r.RegistrantID != "" {
		return r.RegistrantID
	}
	if r.ID != 0 {
		return strconv.FormatInt(r.ID, 10)
	}
	return ""
}

// AddMeetingRegistrant registers a person for a Zoom meeting.
// This is a pure API call with no business logic.
func (c *Client) AddMeetingRegistrant(ctx context.Context, meetingID string, request *AddRegistrantRequest) (*AddRegistrantResponse, error) {
	path := fmt.Sprintf("/meetings/%s/registrants", meetingID)
	return c.addRegistrant(ctx, path, request)
}

// AddWebinarRegistrant registers a person for a Zoom webinar.
// This is a pure API call with no business logic.
func (c *Client) AddWebinarRegistrant(ctx context.Context, webinarID string, request *AddRegistrantRequest) (*AddRegistrantResponse, error) {
	path := fmt.Sprintf("/webinars/%s/registrants", webinarID)
	return c.addRegistrant(ctx, path, request)
}

func (c *Client) addRegistrant(ctx context.Context, path string, request *AddRegistrantRequest) (*AddRegistrantResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, request)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(body)
	}

	var registrantResp AddRegistrantResponse
	if err := json.NewDecoder(resp.Body).Decode(&registrantResp); err != nil {
		return nil, fmt.Errorf("failed to decode registrant response: %w", err)
	}

	return &registrantResp, nil
}
