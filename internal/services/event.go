package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"communityhub/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService returns an EventService over eventRepo. A positive timeout bounds every call.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{eventRepo: eventRepo, contextTimeout: timeout}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.GetEvents(ctx)
}

func (s *eventService) ListPublishedEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.GetPublishedEvents(ctx)
}

// GetEvent turns an absent event into domain.ErrNotFound.
func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	e, err := s.eventRepo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

func (s *eventService) CreateEvent(ctx context.Context, dto domain.CreateEventDTO) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	dto.Title = strings.TrimSpace(dto.Title)
	if dto.Title == "" {
		return nil, fmt.Errorf("event title is required: %w", domain.ErrInvalidInput)
	}
	if dto.Format == "" {
		dto.Format = domain.EventFormatInPerson
	}
	if err := validateEventFields(&dto.Date, &dto.Format); err != nil {
		return nil, err
	}
	return s.eventRepo.CreateEvent(ctx, dto)
}

// UpdateEvent refuses to move the status backwards (draft -> published -> done).
func (s *eventService) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("event title cannot be empty: %w", domain.ErrInvalidInput)
	}
	if err := validateEventFields(patch.Date, patch.Format); err != nil {
		return nil, err
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("event status %q: %w", *patch.Status, domain.ErrInvalidInput)
		}
		current, err := s.eventRepo.GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
		}
		if !current.Status.CanAdvanceTo(*patch.Status) {
			return nil, fmt.Errorf("event status cannot go from %s to %s: %w", current.Status, *patch.Status, domain.ErrInvalidInput)
		}
	}
	return s.eventRepo.UpdateEvent(ctx, id, patch)
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.DeleteEvent(ctx, id)
}

func validateEventFields(date *string, format *domain.EventFormat) error {
	if date != nil && *date != "" {
		if _, err := time.Parse(time.DateOnly, *date); err != nil {
			return fmt.Errorf("event date %q must be YYYY-MM-DD: %w", *date, domain.ErrInvalidInput)
		}
	}
	if format != nil && !format.Valid() {
		return fmt.Errorf("event format %q: %w", *format, domain.ErrInvalidInput)
	}
	return nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
