// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
	"time"

	"github.com/linuxfoundation/lfx-v2-registration-service/internal/domain/models"
)

// confirmationData is the template context for registration confirmations
type confirmationData struct {
	RecipientName string
	MeetingName   string
	Description   string
	StartTime     string
	Timezone      string
	JoinURL       string
	Synced        bool
}

const confirmationHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Registration confirmed</h2>
  <p>Hi {{.RecipientName}},</p>
  <p>You are registered for <strong>{{.MeetingName}}</strong>.</p>
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  <p>
    <strong>When:</strong> {{.StartTime}}{{if .Timezone}} ({{.Timezone}}){{end}}
  </p>
  {{if .Synced}}
  <p><a href="{{.JoinURL}}">Join the meeting</a></p>
  {{else}}
  <p>Your join link will be sent closer to the meeting.</p>
  {{end}}
</body>
</html>
`

const confirmationTextTemplate = `Hi {{.RecipientName}},

You are registered for {{.MeetingName}}.
{{if .Description}}
{{.Description}}
{{end}}
When: {{.StartTime}}{{if .Timezone}} ({{.Timezone}}){{end}}
{{if .Synced}}
Join the meeting: {{.JoinURL}}
{{else}}
Your join link will be sent closer to the meeting.
{{end}}`

var (
	confirmationHTML = template.Must(template.New("confirmation.html").Parse(confirmationHTMLTemplate))
	confirmationText = texttemplate.Must(texttemplate.New("confirmation.txt").Parse(confirmationTextTemplate))
)

// newConfirmationData builds the template context for a registrant
func newConfirmationData(meeting *models.Meeting, registrant *models.Registrant) confirmationData {
	return confirmationData{
		RecipientName: fmt.Sprintf("%s %s", registrant.FirstName, registrant.LastName),
		MeetingName:   meeting.Name,
		Description:   meeting.Description,
		StartTime:     meeting.StartTime.Format(time.RFC1123),
		Timezone:      meeting.Timezone,
		JoinURL:       registrant.ZoomJoinURL,
		Synced:        registrant.SyncedToZoom && registrant.ZoomJoinURL != "",
	}
}

func renderConfirmationHTML(data confirmationData) (string, error) {
	var buf bytes.Buffer
	if err := confirmationHTML.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render HTML template: %w", err)
	}
	return buf.String(), nil
}

func renderConfirmationText(data confirmationData) (string, error) {
	var buf bytes.Buffer
	if err := confirmationText.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render text template: %w", err)
	}
	return buf.String(), nil
}
