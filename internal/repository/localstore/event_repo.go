package localstore

import (
	"context"
	"fmt"
	"slices"

	"communityhub/internal/domain"
	"communityhub/internal/repository/memory"
)

type eventRepository struct {
	events collection[*domain.Event]
	opts   memory.Options
}

// NewEventRepository returns an EventRepository persisted under EventsKey.
func NewEventRepository(store Store, opts memory.Options) domain.EventRepository {
	return &eventRepository{
		events: collection[*domain.Event]{store: store, key: EventsKey, normalize: normalizeEvent},
		opts:   opts,
	}
}

func normalizeEvent(e *domain.Event) *domain.Event {
	if e == nil {
		return &domain.Event{Links: []domain.EventLink{}, Agenda: []domain.AgendaItem{}}
	}
	if e.Status == "" {
		e.Status = domain.EventStatusDraft
	}
	if e.Links == nil {
		e.Links = []domain.EventLink{}
	}
	if e.Agenda == nil {
		e.Agenda = []domain.AgendaItem{}
	}
	return e
}

func (r *eventRepository) GetEvents(ctx context.Context) ([]*domain.Event, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	events, err := r.events.load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.AllEvents(events), nil
}

func (r *eventRepository) GetPublishedEvents(ctx context.Context) ([]*domain.Event, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	events, err := r.events.load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.PublishedEvents(events), nil
}

func (r *eventRepository) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	events, err := r.events.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfEvent(events, id); i >= 0 {
		return events[i], nil
	}
	return nil, nil
}

func (r *eventRepository) CreateEvent(ctx context.Context, dto domain.CreateEventDTO) (*domain.Event, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	events, err := r.events.load(ctx)
	if err != nil {
		return nil, err
	}
	e := domain.NewEvent(dto)
	e.ID = r.opts.ID()
	if err := r.events.save(ctx, append([]*domain.Event{e}, events...)); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	if err := r.opts.Wait(ctx); err != nil {
		return nil, err
	}
	events, err := r.events.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOfEvent(events, id)
	if i < 0 {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	patch.ApplyTo(events[i])
	if err := r.events.save(ctx, events); err != nil {
		return nil, err
	}
	return events[i], nil
}

func (r *eventRepository) DeleteEvent(ctx context.Context, id string) error {
	if err := r.opts.Wait(ctx); err != nil {
		return err
	}
	events, err := r.events.load(ctx)
	if err != nil {
		return err
	}
	i := indexOfEvent(events, id)
	if i < 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return r.events.save(ctx, slices.Delete(events, i, i+1))
}

func indexOfEvent(events []*domain.Event, id string) int {
	return slices.IndexFunc(events, func(e *domain.Event) bool { return e.ID == id })
}
