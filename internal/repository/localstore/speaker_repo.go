package localstore

import (
	"context"
	"fmt"
	"slices"

	"communityhub/internal/domain"
	"communityhub/internal/repository/memory"
)

type speakerRepository struct {
	speakers collection[*domain.Speaker]
	opts     memory.Options
}

// NewSpeakerRepository returns a SpeakerRepository persisted under SpeakersKey.
func NewSpeakerRepository(store Store, opts memory.Options) domain.SpeakerRepository {
	return &speakerRepository{
		speakers: collection[*domain.Speaker]{store: store, key: SpeakersKey},
		opts:     opts,
	}
}

func (r *speakerRepository) GetSpeakers(ctx context.Context) ([]*domain.Speaker, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	return r.speakers.load(ctx)
}

func (r *speakerRepository) GetSpeaker(ctx context.Context, id string) (*domain.Speaker, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	speakers, err := r.speakers.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfSpeaker(speakers, id); i >= 0 {
		return speakers[i], nil
	}
	return nil, nil
}

func (r *speakerRepository) CreateSpeaker(ctx context.Context, dto domain.CreateSpeakerDTO) (*domain.Speaker, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	speakers, err := r.speakers.load(ctx)
	if err != nil {
		return nil, err
	}
	s := domain.NewSpeaker(dto)
	s.ID = r.opts.ID()
	if err := r.speakers.save(ctx, append([]*domain.Speaker{s}, speakers...)); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *speakerRepository) UpdateSpeaker(ctx context.Context, id string, patch domain.SpeakerPatch) (*domain.Speaker, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	speakers, err := r.speakers.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOfSpeaker(speakers, id)
	if i < 0 {
		return nil, fmt.Errorf("speaker %s: %w", id, domain.ErrNotFound)
	}
	patch.ResolveAvatar().ApplyTo(speakers[i])
	if err := r.speakers.save(ctx, speakers); err != nil {
		return nil, err
	}
	return speakers[i], nil
}

func indexOfSpeaker(speakers []*domain.Speaker, id string) int {
	return slices.IndexFunc(speakers, func(s *domain.Speaker) bool { return s != nil && s.ID == id })
}
