// Package email implements the notify port. The SES mailer sends a plain-text
// subscriber notification; the noop mailer logs and drops it, which keeps
// local development from needing AWS credentials.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"github.com/igetback/shuttle-api/internal/ports/out/notify"
)

// SESConfig holds AWS SES settings.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// MailerConfig selects and configures a mailer.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewMailer creates a mailer from config. Provider "ses" uses AWS SES; "noop"
// or anything unknown uses the no-op mailer.
func NewMailer(cfg MailerConfig, log *zap.Logger) notify.Notifier {
	switch cfg.Provider {
	case "ses":
		awsCfg := aws.Config{
			Region: cfg.SES.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					cfg.SES.AccessKeyID,
					cfg.SES.SecretAccessKey,
					"",
				),
			),
		}
		return &sesMailer{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: cfg.FromAddress,
			fromName:    cfg.FromName,
			log:         log,
		}
	case "noop":
		return &noopMailer{log: log}
	default:
		log.Warn("unknown email provider, using noop", zap.String("provider", cfg.Provider))
		return &noopMailer{log: log}
	}
}

type sesMailer struct {
	client      *ses.Client
	fromAddress string
	fromName    string
	log         *zap.Logger
}

func (m *sesMailer) SubscriberNotification(ctx context.Context, n notify.TripNotification) error {
	if len(n.Recipients) == 0 {
		return nil
	}

	subject := "IGetBack Notification"
	body := notificationBody(n)
	source := m.fromAddress
	if m.fromName != "" {
		source = fmt.Sprintf("%s <%s>", m.fromName, m.fromAddress)
	}

	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: n.Recipients,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	m.log.Debug("subscriber notification sent",
		zap.Int("recipients", len(n.Recipients)),
		zap.Stringp("messageId", out.MessageId),
	)
	return nil
}

type noopMailer struct {
	log *zap.Logger
}

func (m *noopMailer) SubscriberNotification(_ context.Context, n notify.TripNotification) error {
	m.log.Info("not notifying subscribers (mail disabled)",
		zap.Int("recipients", len(n.Recipients)),
		zap.String("origin", n.Origin),
		zap.String("destination", n.Destination),
	)
	return nil
}

// notificationBody renders the plain-text message, with the departure time in
// 12-hour form.
func notificationBody(n notify.TripNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A trip from %s to %s was posted for %s at %s.\n",
		n.Origin, n.Destination,
		n.TripDate.Format("Monday, January 2, 2006"),
		formatTripTime(n.TripHour, n.TripQuarterHour))
	fmt.Fprintf(&b, "\nContact %s to coordinate.\n", n.ContactEmail)
	return b.String()
}

func formatTripTime(hour, quarter int) string {
	amOrPm := "AM"
	if hour > 12 {
		hour -= 12
		amOrPm = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, quarter, amOrPm)
}
