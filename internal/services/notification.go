package services

import (
	"context"
	"fmt"

	"communityhub/internal/domain"
)

// Envelope values accepted by the notification handler.
const (
	notificationTypeInsert = "INSERT"
	notificationTable      = "talk_proposals"
)

type notificationService struct {
	emailService domain.EmailService
	recipient    string
	reviewURL    string
}

// NewNotificationService returns the handler behind the notify-new-proposal function.
// It emails recipient about every inserted proposal; reviewURL is linked from the email when set.
func NewNotificationService(emailService domain.EmailService, recipient, reviewURL string) domain.NotificationService {
	return &notificationService{emailService: emailService, recipient: recipient, reviewURL: reviewURL}
}

func (s *notificationService) HandleNewProposal(ctx context.Context, n *domain.ProposalNotification) error {
	if n == nil {
		return fmt.Errorf("notification is empty: %w", domain.ErrInvalidInput)
	}
	if n.Type != notificationTypeInsert || n.Table != notificationTable {
		return fmt.Errorf("unexpected notification %s on %s: %w", n.Type, n.Table, domain.ErrInvalidInput)
	}
	if s.recipient == "" {
		return fmt.Errorf("NOTIFICATION_EMAIL: %w", domain.ErrMissingConfig)
	}
	r := n.Record
	return s.emailService.SendNewProposal(ctx, &domain.NewProposalEmailData{
		To:          s.recipient,
		ProposalID:  r.ID,
		FullName:    r.FullName,
		Email:       r.Email,
		Phone:       r.Phone,
		Title:       r.Title,
		Description: r.Description,
		Duration:    r.Duration,
		SubmittedAt: r.CreatedAt,
		ReviewURL:   s.reviewURL,
	})
}
