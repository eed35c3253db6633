package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EventInviteRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that renders invites and hands them
// to the configured mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EventInviteRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

func (s *emailService) SendEventInvite(ctx context.Context, data *domain.EventInviteEmailData) error {
	if data == nil {
		return fmt.Errorf("event invite data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.RenderEventInvite(data)
	if err != nil {
		return fmt.Errorf("render event invite: %w", err)
	}
	msg := domain.Message{
		To:      data.Email,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send event invite email: %w", err)
	}
	s.logger.InfoContext(ctx, "event invite sent", "to", data.Email, "event", data.EventName)
	return nil
}
