package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Mailer delivers account confirmation links.
type Mailer interface {
	Enabled() bool
	SendConfirmation(ctx context.Context, to, token string) error
}

// LogMailer logs the confirmation token instead of sending mail. It reports
// itself disabled so sign-ups complete without confirmation.
type LogMailer struct {
	Logger *slog.Logger
}

// Enabled implements Mailer.
func (LogMailer) Enabled() bool { return false }

// SendConfirmation implements Mailer.
func (m LogMailer) SendConfirmation(_ context.Context, to, token string) error {
	log := m.Logger
	if log == nil {
		log = slog.Default()
	}
	log.Info("email disabled, skipping confirmation", "to", to, "token", token)
	return nil
}

// SESMailer sends confirmation email through Amazon SES.
type SESMailer struct {
	client   *sesv2.Client
	from     string
	fromName string
	baseURL  string
	log      *slog.Logger
}

// NewSESMailer loads the default AWS configuration for region. An empty from
// address yields a LogMailer.
func NewSESMailer(ctx context.Context, region, from, fromName, baseURL string, log *slog.Logger) (Mailer, error) {
	if log == nil {
		log = slog.Default()
	}
	if from == "" {
		log.Info("email service disabled: no from address configured")
		return LogMailer{Logger: log}, nil
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	log.Info("email service enabled", "from", from, "region", region)
	return &SESMailer{
		client:   sesv2.NewFromConfig(cfg),
		from:     from,
		fromName: fromName,
		baseURL:  baseURL,
		log:      log,
	}, nil
}

// Enabled implements Mailer.
func (m *SESMailer) Enabled() bool { return true }

// SendConfirmation implements Mailer.
func (m *SESMailer) SendConfirmation(ctx context.Context, to, token string) error {
	link := confirmLink(m.baseURL, token)
	subject := "Confirm your Math Forest account"
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h1>Welcome to Math Forest! 🌳</h1>
	<p>Tap the button below to confirm your email and start your adventure.</p>
	<p><a href="%s" style="padding: 12px 30px; background: #6b3fa0; color: white; border-radius: 5px; text-decoration: none;">Confirm email</a></p>
	<p style="font-size: 12px; color: #666;">Or paste this link into your browser: %s</p>
</body>
</html>`, link, link)
	text := fmt.Sprintf("Welcome to Math Forest!\n\nConfirm your email to start your adventure:\n%s\n", link)

	fromAddress := m.from
	if m.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(html), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(text), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send confirmation to %s: %w", to, err)
	}
	m.log.Info("confirmation email sent", "to", to, "message_id", aws.ToString(out.MessageId))
	return nil
}

func confirmLink(baseURL, token string) string {
	return fmt.Sprintf("%s/confirm?token=%s", baseURL, token)
}
