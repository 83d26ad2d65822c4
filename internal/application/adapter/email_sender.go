// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// DigestTemplateData is the data rendered into a dashboard digest email.
type DigestTemplateData struct {
	RecipientName string
	DealerName    string
	RangeLabel    string
	PeriodLabel   string
	TotalExpenses string
	ExpenseChange string
	SalesIncome   string
	SalesCount    int
	PeriodProfit  string
	AllTimeProfit string
	CashBalance   string
	BankBalance   string
	VehicleValue  string
	NetPosition   string
	TopCategories []DigestLine
	TopVehicles   []DigestLine
	OverdueDebts  int
	DashboardURL  string
}

// DigestLine is a labelled amount listed in a digest.
type DigestLine struct {
	Label  string
	Amount string
}

// EmailRenderer renders email bodies from templates.
type EmailRenderer interface {
	// RenderDigest returns the HTML and plain text bodies of a dashboard digest.
	RenderDigest(data DigestTemplateData) (html string, text string, err error)
}
