package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"communityhub/internal/domain"
)

// ProposalRepository keeps talk proposals in process memory, newest first.
// It starts empty: proposals only arrive through SubmitProposal.
type ProposalRepository struct {
	mu        sync.Mutex
	proposals []*domain.TalkProposal
	opts      Options
}

func NewProposalRepository(opts Options) *ProposalRepository {
	return &ProposalRepository{proposals: []*domain.TalkProposal{}, opts: opts}
}

// SubmitProposal stores dto as a new proposal. Status is always proposed.
func (r *ProposalRepository) SubmitProposal(ctx context.Context, dto domain.CreateProposalDTO) (*domain.TalkProposal, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	p := domain.NewTalkProposal(dto, r.opts.Time())
	p.ID = r.opts.ID()
	r.mu.Lock()
	r.proposals = append([]*domain.TalkProposal{p}, r.proposals...)
	r.mu.Unlock()
	cp := *p
	return &cp, nil
}

func (r *ProposalRepository) GetProposals(ctx context.Context) ([]*domain.TalkProposal, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.TalkProposal, len(r.proposals))
	for i, p := range r.proposals {
		cp := *p
		out[i] = &cp
	}
	return out, nil
}

func (r *ProposalRepository) UpdateProposalStatus(ctx context.Context, id string, status domain.ProposalStatus) error {
	if !status.Valid() {
		return fmt.Errorf("proposal status %q: %w", status, domain.ErrInvalidInput)
	}
	if err := r.opts.Wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.proposals, func(p *domain.TalkProposal) bool { return p.ID == id })
	if i < 0 {
		return fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	updated := *r.proposals[i]
	updated.Status = status
	next := slices.Clone(r.proposals)
	next[i] = &updated
	r.proposals = next
	return nil
}

// replace swaps the whole collection without simulated latency.
func (r *ProposalRepository) replace(proposals []*domain.TalkProposal) {
	next := make([]*domain.TalkProposal, 0, len(proposals))
	for _, p := range proposals {
		if p == nil {
			continue
		}
		cp := *p
		next = append(next, &cp)
	}
	r.mu.Lock()
	r.proposals = next
	r.mu.Unlock()
}
