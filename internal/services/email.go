package services

import (
	"context"
	"fmt"
	"log/slog"

	"communityhub/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendNewProposal sends the "new_proposal" email to data.To.
func (s *emailService) SendNewProposal(ctx context.Context, data *domain.NewProposalEmailData) error {
	if data == nil {
		return fmt.Errorf("new proposal email data is nil: %w", domain.ErrInvalidInput)
	}
	subject, htmlBody, textBody, err := s.renderer.Render("new_proposal", data)
	if err != nil {
		return fmt.Errorf("failed to render new_proposal template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.To, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send new proposal email: %w", err)
	}
	s.logger.Info("new proposal email sent", "to", data.To, "proposal_id", data.ProposalID)
	return nil
}
