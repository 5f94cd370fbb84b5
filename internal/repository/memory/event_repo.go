package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"communityhub/internal/domain"
)

// EventRepository keeps events in process memory, newest created first.
// Every method copies in and out so callers never alias the private slice.
type EventRepository struct {
	mu     sync.Mutex
	events []*domain.Event
	opts   Options
}

// NewEventRepository returns an EventRepository seeded with the demo fixtures.
func NewEventRepository(opts Options) *EventRepository {
	return &EventRepository{events: DemoEvents(), opts: opts}
}

func (r *EventRepository) snapshot() []*domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Event, len(r.events))
	for i, e := range r.events {
		out[i] = e.Clone()
	}
	return out
}

func (r *EventRepository) GetEvents(ctx context.Context) ([]*domain.Event, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	return domain.AllEvents(r.snapshot()), nil
}

func (r *EventRepository) GetPublishedEvents(ctx context.Context) ([]*domain.Event, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	return domain.PublishedEvents(r.snapshot()), nil
}

func (r *EventRepository) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		return r.events[i].Clone(), nil
	}
	return nil, nil
}

func (r *EventRepository) CreateEvent(ctx context.Context, dto domain.CreateEventDTO) (*domain.Event, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	e := domain.NewEvent(dto)
	e.ID = r.opts.ID()
	r.mu.Lock()
	r.events = append([]*domain.Event{e}, r.events...)
	r.mu.Unlock()
	return e.Clone(), nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	updated := r.events[i].Clone()
	patch.ApplyTo(updated)
	next := slices.Clone(r.events)
	next[i] = updated
	r.events = next
	return updated.Clone(), nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	if err := r.opts.Wait(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	r.events = slices.Delete(slices.Clone(r.events), i, i+1)
	return nil
}

// replace swaps the whole collection without simulated latency.
func (r *EventRepository) replace(events []*domain.Event) {
	next := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e != nil {
			next = append(next, e.Clone())
		}
	}
	r.mu.Lock()
	r.events = next
	r.mu.Unlock()
}

func (r *EventRepository) indexOf(id string) int {
	return slices.IndexFunc(r.events, func(e *domain.Event) bool { return e.ID == id })
}
