package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"communityhub/internal/domain"
)

// SpeakerRepository keeps speakers in process memory, newest created first.
type SpeakerRepository struct {
	mu       sync.Mutex
	speakers []*domain.Speaker
	opts     Options
}

// NewSpeakerRepository returns a SpeakerRepository seeded with the demo fixtures.
func NewSpeakerRepository(opts Options) *SpeakerRepository {
	return &SpeakerRepository{speakers: DemoSpeakers(), opts: opts}
}

func (r *SpeakerRepository) GetSpeakers(ctx context.Context) ([]*domain.Speaker, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Speaker, len(r.speakers))
	for i, s := range r.speakers {
		cp := *s
		out[i] = &cp
	}
	return out, nil
}

func (r *SpeakerRepository) GetSpeaker(ctx context.Context, id string) (*domain.Speaker, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		cp := *r.speakers[i]
		return &cp, nil
	}
	return nil, nil
}

// CreateSpeaker stores a new speaker. A raw avatar file is embedded as a data URL
// before the record is stored.
func (r *SpeakerRepository) CreateSpeaker(ctx context.Context, dto domain.CreateSpeakerDTO) (*domain.Speaker, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	s := domain.NewSpeaker(dto)
	s.ID = r.opts.ID()
	r.mu.Lock()
	r.speakers = append([]*domain.Speaker{s}, r.speakers...)
	r.mu.Unlock()
	cp := *s
	return &cp, nil
}

func (r *SpeakerRepository) UpdateSpeaker(ctx context.Context, id string, patch domain.SpeakerPatch) (*domain.Speaker, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	patch = patch.ResolveAvatar()
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("speaker %s: %w", id, domain.ErrNotFound)
	}
	updated := *r.speakers[i]
	patch.ApplyTo(&updated)
	next := slices.Clone(r.speakers)
	next[i] = &updated
	r.speakers = next
	cp := updated
	return &cp, nil
}

// replace swaps the whole collection without simulated latency.
func (r *SpeakerRepository) replace(speakers []*domain.Speaker) {
	next := make([]*domain.Speaker, 0, len(speakers))
	for _, s := range speakers {
		if s == nil {
			continue
		}
		cp := *s
		next = append(next, &cp)
	}
	r.mu.Lock()
	r.speakers = next
	r.mu.Unlock()
}

func (r *SpeakerRepository) indexOf(id string) int {
	return slices.IndexFunc(r.speakers, func(s *domain.Speaker) bool { return s.ID == id })
}
