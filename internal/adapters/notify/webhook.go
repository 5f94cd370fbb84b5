package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"communityhub/internal/domain"
)

type webhookNotifier struct {
	client *http.Client
	url    string
	token  string
}

// NewWebhookNotifier returns a notifier that POSTs the new-proposal envelope to url.
// A non-empty token is sent as a bearer token. Any non-2xx response is an error.
func NewWebhookNotifier(client *http.Client, url, token string) domain.ProposalNotifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &webhookNotifier{client: client, url: url, token: token}
}

func (n *webhookNotifier) NotifyNewProposal(ctx context.Context, p *domain.TalkProposal) error {
	body, err := json.Marshal(domain.NewProposalNotification(p))
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call notification webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notification webhook returned status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return nil
}
