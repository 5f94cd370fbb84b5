package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"communityhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var proposal = &domain.TalkProposal{
	ID:          "tp-1",
	FullName:    "Lucia",
	Email:       "lucia@example.com",
	Phone:       "999",
	Title:       "Go generics",
	Description: "Deep dive",
	Duration:    domain.ProposalDuration30,
	Status:      domain.ProposalStatusProposed,
	CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWebhookNotifier_SendsEnvelope(t *testing.T) {
	var got domain.ProposalNotification
	var auth, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.Client(), srv.URL, "secret")
	require.NoError(t, n.NotifyNewProposal(context.Background(), proposal))

	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, domain.ProposalNotification{
		Type:  "INSERT",
		Table: "talk_proposals",
		Record: domain.ProposalNotificationRecord{
			ID: "tp-1", FullName: "Lucia", Email: "lucia@example.com", Phone: "999",
			Title: "Go generics", Description: "Deep dive", Duration: "30", CreatedAt: "2024-05-01T12:00:00Z",
		},
	}, got)
}

func TestWebhookNotifier_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.Client(), srv.URL, "").NotifyNewProposal(context.Background(), proposal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "boom")
}

type recordingService struct {
	got *domain.ProposalNotification
}

func (s *recordingService) HandleNewProposal(_ context.Context, n *domain.ProposalNotification) error {
	s.got = n
	return nil
}

func TestNewNotifier(t *testing.T) {
	svc := &recordingService{}

	tests := []struct {
		name    string
		cfg     Config
		svc     domain.NotificationService
		wantErr error
	}{
		{name: "noop", cfg: Config{Provider: ProviderNoop}},
		{name: "default", cfg: Config{}},
		{name: "unknown", cfg: Config{Provider: "pigeon"}},
		{name: "webhook", cfg: Config{Provider: ProviderWebhook, WebhookURL: "http://localhost:1"}},
		{name: "webhook without url", cfg: Config{Provider: ProviderWebhook}, wantErr: domain.ErrMissingConfig},
		{name: "email", cfg: Config{Provider: ProviderEmail}, svc: svc},
		{name: "email without service", cfg: Config{Provider: ProviderEmail}, wantErr: domain.ErrMissingConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewNotifier(tt.cfg, tt.svc, quietLogger())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, n)
		})
	}
}

func TestEmailNotifier_HandsEnvelopeToService(t *testing.T) {
	svc := &recordingService{}
	require.NoError(t, NewEmailNotifier(svc).NotifyNewProposal(context.Background(), proposal))
	require.NotNil(t, svc.got)
	assert.Equal(t, "INSERT", svc.got.Type)
	assert.Equal(t, "tp-1", svc.got.Record.ID)
}
