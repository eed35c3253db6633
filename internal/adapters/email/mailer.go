package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

// SESConfig holds region and static credentials for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig selects the delivery driver and the sender identity stamped on
// outgoing invites.
type MailerConfig struct {
	Driver      string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewMailer builds the mailer for the configured driver. Driver "ses" sends
// through AWS SES; "noop" and anything unrecognized log instead of sending, so
// invites still land even when no mail provider is set up.
func NewMailer(config MailerConfig, logger *slog.Logger) domain.Mailer {
	switch config.Driver {
	case "ses":
		return &sesMailer{
			client: newSESClient(config.SES, logger),
			source: formatSource(config.FromName, config.FromAddress),
			logger: logger,
		}
	case "noop":
		return &noopMailer{logger: logger}
	default:
		logger.Warn("unknown mailer driver, falling back to noop", "driver", config.Driver)
		return &noopMailer{logger: logger}
	}
}

func newSESClient(cfg SESConfig, logger *slog.Logger) *ses.Client {
	if cfg.InsecureSkipVerify {
		logger.Warn("TLS certificate verification disabled for SES, development only")
	}
	return ses.NewFromConfig(aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: cfg.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		},
	})
}

// formatSource renders the SES Source header: "Name <addr>" when a display
// name is configured, the bare address otherwise.
func formatSource(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

type sesMailer struct {
	client *ses.Client
	source string
	logger *slog.Logger
}

func (s *sesMailer) Send(ctx context.Context, msg domain.Message) error {
	body := &types.Body{}
	if msg.HTML != "" {
		body.Html = utf8Content(msg.HTML)
	}
	if msg.Text != "" {
		body.Text = utf8Content(msg.Text)
	}
	result, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(s.source),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: utf8Content(msg.Subject),
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("send email via SES: %w", err)
	}
	s.logger.Info("email sent via SES", "to", msg.To, "message_id", aws.ToString(result.MessageId))
	return nil
}

func utf8Content(data string) *types.Content {
	return &types.Content{Data: aws.String(data), Charset: aws.String("UTF-8")}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(ctx context.Context, msg domain.Message) error {
	n.logger.Info("email suppressed (noop mailer)", "to", msg.To, "subject", msg.Subject)
	return nil
}
