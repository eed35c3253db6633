package domain

import "context"

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers rendered messages (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// EventInviteEmailData holds data for the "you've been invited" email.
type EventInviteEmailData struct {
	Email       string
	Nickname    string
	EventName   string
	EventWhen   string
	EventWhere  string
	InviterName string
}

// EventInviteRenderer renders the invite email bodies from typed data.
type EventInviteRenderer interface {
	RenderEventInvite(data *EventInviteEmailData) (subject, htmlBody, textBody string, err error)
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventInvite(ctx context.Context, data *EventInviteEmailData) error
}
