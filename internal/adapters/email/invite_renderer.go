package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// inviteRenderer renders the event invite email from the embedded templates.
// All three templates are parsed once at construction.
type inviteRenderer struct {
	subject *texttemplate.Template
	html    *template.Template
	text    *texttemplate.Template
}

// NewInviteRenderer parses the embedded invite templates and returns the
// renderer. A parse failure is a packaging bug, surfaced at startup.
func NewInviteRenderer() (domain.EventInviteRenderer, error) {
	subject, err := texttemplate.ParseFS(templateFS, "templates/event_invite_subject.txt")
	if err != nil {
		return nil, fmt.Errorf("parse invite subject template: %w", err)
	}
	html, err := template.ParseFS(templateFS, "templates/event_invite.html")
	if err != nil {
		return nil, fmt.Errorf("parse invite html template: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/event_invite.txt")
	if err != nil {
		return nil, fmt.Errorf("parse invite text template: %w", err)
	}
	return &inviteRenderer{subject: subject, html: html, text: text}, nil
}

func (r *inviteRenderer) RenderEventInvite(data *domain.EventInviteEmailData) (subject, htmlBody, textBody string, err error) {
	var buf bytes.Buffer
	if err := r.subject.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render invite subject: %w", err)
	}
	subject = strings.TrimSpace(buf.String())

	buf.Reset()
	if err := r.html.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render invite html: %w", err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := r.text.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render invite text: %w", err)
	}
	textBody = buf.String()

	return subject, htmlBody, textBody, nil
}
