package localstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"communityhub/internal/domain"
	"communityhub/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalRepository_SubmitAndUpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := NewMapStore()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	opts := sequentialIDs("tp")
	opts.Now = func() time.Time { return clock }
	repo := NewProposalRepository(store, opts)

	first, err := repo.SubmitProposal(ctx, domain.CreateProposalDTO{
		FullName: "Lucia", Email: "lucia@example.com", Title: "Go generics",
		Duration: domain.ProposalDuration15, Status: domain.ProposalStatusAccepted,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProposalStatusProposed, first.Status)
	assert.Equal(t, clock, first.CreatedAt)

	_, err = repo.SubmitProposal(ctx, domain.CreateProposalDTO{FullName: "Marco", Title: "Tracing", Duration: domain.ProposalDuration30})
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      string
		status  domain.ProposalStatus
		wantErr error
	}{
		{name: "accept", id: "tp-1", status: domain.ProposalStatusAccepted},
		{name: "missing", id: "tp-9", status: domain.ProposalStatusRejected, wantErr: domain.ErrNotFound},
		{name: "unknown status", id: "tp-2", status: "archived", wantErr: domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.UpdateProposalStatus(ctx, tt.id, tt.status)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
		})
	}

	proposals, err := NewProposalRepository(store, memory.Options{}).GetProposals(ctx)
	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, "tp-2", proposals[0].ID)
	assert.Equal(t, domain.ProposalStatusProposed, proposals[0].Status)
	assert.Equal(t, domain.ProposalStatusAccepted, proposals[1].Status)
}

func TestProposalRepository_LegacyRecordsDefaultToProposed(t *testing.T) {
	ctx := context.Background()
	store := NewMapStore()
	require.NoError(t, store.Set(ctx, ProposalsKey, []byte(`[{"id":"old","title":"Legacy"}]`)))

	proposals, err := NewProposalRepository(store, memory.Options{}).GetProposals(ctx)
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, domain.ProposalStatusProposed, proposals[0].Status)
}
