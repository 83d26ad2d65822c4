// Package email delivers dashboard digests via Resend.
package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/ezcar24/dealer-backend/internal/application/adapter"
	domainerror "github.com/ezcar24/dealer-backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// ResendOption customizes a ResendClient.
type ResendOption func(*resend.Client) error

// WithBaseURL points the client at another Resend compatible endpoint.
func WithBaseURL(rawURL string) ResendOption {
	return func(c *resend.Client) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid resend base url: %w", err)
		}
		c.BaseURL = u
		return nil
	}
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string, opts ...ResendOption) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return &ResendClient{
		client:    client,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if strings.TrimSpace(input.To) == "" {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeMissingRecipient,
			domainerror.ErrMissingRecipient.Error(),
			domainerror.ErrMissingRecipient,
		)
	}

	params := &resend.SendEmailRequest{
		From:    formatAddress(c.fromName, c.fromEmail),
		To:      []string{formatAddress(input.Name, input.To)},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"permanent email failure",
				err,
			)
		}
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"temporary email failure",
			err,
		)
	}

	return &adapter.SendEmailResult{
		ResendID: resp.Id,
	}, nil
}

func formatAddress(name, email string) string {
	name = strings.TrimSpace(strings.NewReplacer("<", "", ">", "", "\"", "").Replace(name))
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// isPermanentError reports whether a Resend failure will not succeed on retry:
// authentication, permission and validation failures.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid"} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// MockEmailSender records digests instead of sending them.
type MockEmailSender struct {
	SentEmails []adapter.SendEmailInput
	FailFor    map[string]error
}

// NewMockEmailSender creates a new mock email sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{
		SentEmails: make([]adapter.SendEmailInput, 0),
		FailFor:    make(map[string]error),
	}
}

// Send implements the adapter.EmailSender interface for testing.
func (m *MockEmailSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if err, ok := m.FailFor[input.To]; ok {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"mock temporary failure",
			err,
		)
	}

	m.SentEmails = append(m.SentEmails, input)

	return &adapter.SendEmailResult{
		ResendID: fmt.Sprintf("mock-%d", len(m.SentEmails)),
	}, nil
}

// Reset clears all sent emails and failure configuration.
func (m *MockEmailSender) Reset() {
	m.SentEmails = make([]adapter.SendEmailInput, 0)
	m.FailFor = make(map[string]error)
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*MockEmailSender)(nil)
)
