package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// NewProposalEmailData holds data for the new talk proposal notification email.
type NewProposalEmailData struct {
	To          string
	ProposalID  string
	FullName    string
	Email       string
	Phone       string
	Title       string
	Description string
	Duration    string
	SubmittedAt string
	ReviewURL   string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendNewProposal(ctx context.Context, data *NewProposalEmailData) error
}

// ProposalNotificationRecord is the record carried by the new-proposal notification envelope.
type ProposalNotificationRecord struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	CreatedAt   string `json:"created_at"`
}

// ProposalNotification is the fixed envelope sent for every new proposal:
// {"type":"INSERT","table":"talk_proposals","record":{...}}.
// swagger:model ProposalNotification
type ProposalNotification struct {
	Type   string                     `json:"type"`
	Table  string                     `json:"table"`
	Record ProposalNotificationRecord `json:"record"`
}

// NotificationService handles a received new-proposal envelope.
type NotificationService interface {
	HandleNewProposal(ctx context.Context, n *ProposalNotification) error
}

// NewProposalNotification builds the notification envelope for p.
func NewProposalNotification(p *TalkProposal) *ProposalNotification {
	return &ProposalNotification{
		Type:  "INSERT",
		Table: "talk_proposals",
		Record: ProposalNotificationRecord{
			ID:          p.ID,
			FullName:    p.FullName,
			Email:       p.Email,
			Phone:       p.Phone,
			Title:       p.Title,
			Description: p.Description,
			Duration:    string(p.Duration),
			CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	}
}
