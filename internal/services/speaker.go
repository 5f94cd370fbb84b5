package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"communityhub/internal/domain"
)

type speakerService struct {
	speakerRepo    domain.SpeakerRepository
	contextTimeout time.Duration
}

func NewSpeakerService(speakerRepo domain.SpeakerRepository, timeout time.Duration) domain.SpeakerService {
	return &speakerService{speakerRepo: speakerRepo, contextTimeout: timeout}
}

func (s *speakerService) ListSpeakers(ctx context.Context) ([]*domain.Speaker, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.speakerRepo.GetSpeakers(ctx)
}

func (s *speakerService) GetSpeaker(ctx context.Context, id string) (*domain.Speaker, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	sp, err := s.speakerRepo.GetSpeaker(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, fmt.Errorf("speaker %s: %w", id, domain.ErrNotFound)
	}
	return sp, nil
}

func (s *speakerService) CreateSpeaker(ctx context.Context, dto domain.CreateSpeakerDTO) (*domain.Speaker, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	if err := validateSpeakerEmail(dto.Email); err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.speakerRepo.CreateSpeaker(ctx, dto)
}

func (s *speakerService) UpdateSpeaker(ctx context.Context, id string, patch domain.SpeakerPatch) (*domain.Speaker, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("name must not be empty: %w", domain.ErrInvalidInput)
		}
		patch.Name = &name
	}
	if patch.Email != nil {
		if err := validateSpeakerEmail(*patch.Email); err != nil {
			return nil, err
		}
	}
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.speakerRepo.UpdateSpeaker(ctx, id, patch)
}

// validateSpeakerEmail accepts an empty address; speakers need not have one.
func validateSpeakerEmail(email string) error {
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email %q: %w", email, domain.ErrInvalidInput)
	}
	return nil
}
