// Package notify announces newly submitted talk proposals.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"communityhub/internal/domain"
)

// Provider names accepted by NewNotifier.
const (
	ProviderWebhook = "webhook"
	ProviderEmail   = "email"
	ProviderNoop    = "noop"
)

// Config selects and configures the notifier.
type Config struct {
	Provider     string
	WebhookURL   string
	WebhookToken string
}

// NewNotifier builds the notifier named by cfg.Provider. The email provider hands the
// envelope straight to notifications; unknown providers fall back to noop.
func NewNotifier(cfg Config, notifications domain.NotificationService, logger *slog.Logger) (domain.ProposalNotifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Provider {
	case ProviderWebhook:
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("NOTIFY_WEBHOOK_URL: %w", domain.ErrMissingConfig)
		}
		return NewWebhookNotifier(&http.Client{Timeout: 10 * time.Second}, cfg.WebhookURL, cfg.WebhookToken), nil
	case ProviderEmail:
		if notifications == nil {
			return nil, fmt.Errorf("email notifier needs a notification service: %w", domain.ErrMissingConfig)
		}
		return NewEmailNotifier(notifications), nil
	case ProviderNoop, "":
		return NewNoopNotifier(logger), nil
	default:
		logger.Warn("unknown notify provider, using noop", "provider", cfg.Provider)
		return NewNoopNotifier(logger), nil
	}
}

type emailNotifier struct {
	notifications domain.NotificationService
}

// NewEmailNotifier delivers the envelope in-process instead of over HTTP.
func NewEmailNotifier(notifications domain.NotificationService) domain.ProposalNotifier {
	return &emailNotifier{notifications: notifications}
}

func (n *emailNotifier) NotifyNewProposal(ctx context.Context, p *domain.TalkProposal) error {
	return n.notifications.HandleNewProposal(ctx, domain.NewProposalNotification(p))
}

type noopNotifier struct {
	logger *slog.Logger
}

func NewNoopNotifier(logger *slog.Logger) domain.ProposalNotifier {
	return &noopNotifier{logger: logger}
}

func (n *noopNotifier) NotifyNewProposal(_ context.Context, p *domain.TalkProposal) error {
	n.logger.Debug("new proposal notification skipped (noop)", "proposal_id", p.ID)
	return nil
}
