package localstore

import (
	"context"
	"fmt"
	"slices"

	"communityhub/internal/domain"
	"communityhub/internal/repository/memory"
)

type proposalRepository struct {
	proposals collection[*domain.TalkProposal]
	opts      memory.Options
}

// NewProposalRepository returns a ProposalRepository persisted under ProposalsKey.
func NewProposalRepository(store Store, opts memory.Options) domain.ProposalRepository {
	return &proposalRepository{
		proposals: collection[*domain.TalkProposal]{store: store, key: ProposalsKey, normalize: normalizeProposal},
		opts:      opts,
	}
}

func normalizeProposal(p *domain.TalkProposal) *domain.TalkProposal {
	if p == nil {
		return &domain.TalkProposal{Status: domain.ProposalStatusProposed}
	}
	if p.Status == "" {
		p.Status = domain.ProposalStatusProposed
	}
	return p
}

func (r *proposalRepository) SubmitProposal(ctx context.Context, dto domain.CreateProposalDTO) (*domain.TalkProposal, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	proposals, err := r.proposals.load(ctx)
	if err != nil {
		return nil, err
	}
	p := domain.NewTalkProposal(dto, r.opts.Time())
	p.ID = r.opts.ID()
	if err := r.proposals.save(ctx, append([]*domain.TalkProposal{p}, proposals...)); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *proposalRepository) GetProposals(ctx context.Context) ([]*domain.TalkProposal, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	return r.proposals.load(ctx)
}

func (r *proposalRepository) UpdateProposalStatus(ctx context.Context, id string, status domain.ProposalStatus) error {
	if !status.Valid() {
		return fmt.Errorf("proposal status %q: %w", status, domain.ErrInvalidInput)
	}
	if err := r.opts.Wait(ctx); err != nil {
		return err
	}
	proposals, err := r.proposals.load(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(proposals, func(p *domain.TalkProposal) bool { return p.ID == id })
	if i < 0 {
		return fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	proposals[i].Status = status
	return r.proposals.save(ctx, proposals)
}
