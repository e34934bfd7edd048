// Package mailer delivers plain-text notification emails.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/pkg/logger"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

var ErrNoRecipient = errors.New("mail recipient is required")

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New returns an SMTP sender, or a log-only sender when no host is set.
func New(cfg config.MailConfig, log *zap.Logger) (Sender, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return NewLogSender(log), nil
	}
	return NewSMTP(cfg)
}

type SMTP struct {
	client *mail.Client
	from   string
}

func NewSMTP(cfg config.MailConfig) (*SMTP, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTP{client: client, from: cfg.From}, nil
}

func (s *SMTP) Send(ctx context.Context, to, subject, body string) error {
	msg, err := buildMessage(s.from, to, subject, body)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) (*mail.Msg, error) {
	if strings.TrimSpace(to) == "" {
		return nil, ErrNoRecipient
	}
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: logger.OrNop(log)}
}

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return ErrNoRecipient
	}
	s.log.Info("mail not delivered, smtp disabled",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", logger.Truncate(body, 200)),
	)
	return nil
}
