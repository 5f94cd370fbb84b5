package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"communityhub/internal/domain"
)

const (
	acceptedSpeakerRole = "Speaker"
	defaultEventTime    = "19:00"
)

type proposalService struct {
	proposalRepo   domain.ProposalRepository
	eventRepo      domain.EventRepository
	speakerRepo    domain.SpeakerRepository
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewProposalService returns a ProposalService. Accept touches all three repositories.
func NewProposalService(
	proposalRepo domain.ProposalRepository,
	eventRepo domain.EventRepository,
	speakerRepo domain.SpeakerRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ProposalService {
	if logger == nil {
		logger = slog.Default()
	}
	return &proposalService{
		proposalRepo:   proposalRepo,
		eventRepo:      eventRepo,
		speakerRepo:    speakerRepo,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *proposalService) Submit(ctx context.Context, dto domain.CreateProposalDTO) (*domain.TalkProposal, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	dto.FullName = strings.TrimSpace(dto.FullName)
	dto.Email = strings.TrimSpace(dto.Email)
	dto.Title = strings.TrimSpace(dto.Title)
	switch {
	case dto.FullName == "":
		return nil, fmt.Errorf("full name is required: %w", domain.ErrInvalidInput)
	case dto.Title == "":
		return nil, fmt.Errorf("talk title is required: %w", domain.ErrInvalidInput)
	case !dto.Duration.Valid():
		return nil, fmt.Errorf("duration %q must be 15 or 30: %w", dto.Duration, domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return nil, fmt.Errorf("email %q: %w", dto.Email, domain.ErrInvalidInput)
	}

	p, err := s.proposalRepo.SubmitProposal(ctx, dto)
	if err != nil {
		return nil, err
	}
	s.logger.Info("proposal submitted", "proposal_id", p.ID, "duration", p.Duration)
	return p, nil
}

func (s *proposalService) List(ctx context.Context) ([]*domain.TalkProposal, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.proposalRepo.GetProposals(ctx)
}

// Accept runs the acceptance workflow: resolve the speaker, resolve the event, append
// the talk to the event agenda and mark the proposal accepted. Steps are not rolled
// back; the first failing step's error is returned.
func (s *proposalService) Accept(ctx context.Context, id string, in domain.AcceptProposalInput) (*domain.AcceptProposalResult, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	proposal, err := s.findProposal(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal.Status == domain.ProposalStatusAccepted {
		return nil, fmt.Errorf("proposal %s is already accepted: %w", id, domain.ErrInvalidInput)
	}

	speaker, err := s.resolveSpeaker(ctx, proposal, in.SpeakerID)
	if err != nil {
		return nil, err
	}
	event, err := s.resolveEvent(ctx, in)
	if err != nil {
		return nil, err
	}

	agenda := append(slices.Clone(event.Agenda), domain.AgendaItem{
		ID:          uuid.NewString(),
		Title:       proposal.Title,
		SpeakerID:   speaker.ID,
		SpeakerName: proposal.FullName,
	})
	event, err = s.eventRepo.UpdateEvent(ctx, event.ID, domain.EventPatch{Agenda: &agenda})
	if err != nil {
		return nil, fmt.Errorf("add talk to event agenda: %w", err)
	}

	if err := s.proposalRepo.UpdateProposalStatus(ctx, id, domain.ProposalStatusAccepted); err != nil {
		return nil, err
	}
	s.logger.Info("proposal accepted", "proposal_id", id, "event_id", event.ID, "speaker_id", speaker.ID)
	return &domain.AcceptProposalResult{Event: event, Speaker: speaker}, nil
}

func (s *proposalService) Reject(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, id, domain.ProposalStatusRejected)
}

func (s *proposalService) UpdateStatus(ctx context.Context, id string, status domain.ProposalStatus) error {
	if !status.Valid() {
		return fmt.Errorf("proposal status %q: %w", status, domain.ErrInvalidInput)
	}
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := s.proposalRepo.UpdateProposalStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info("proposal status updated", "proposal_id", id, "status", status)
	return nil
}

func (s *proposalService) findProposal(ctx context.Context, id string) (*domain.TalkProposal, error) {
	proposals, err := s.proposalRepo.GetProposals(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(proposals, func(p *domain.TalkProposal) bool { return p.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	return proposals[i], nil
}

// resolveSpeaker uses speakerID when given, else a speaker with the proposal's email,
// else a new speaker built from the proposal.
func (s *proposalService) resolveSpeaker(ctx context.Context, p *domain.TalkProposal, speakerID string) (*domain.Speaker, error) {
	if speakerID != "" {
		speaker, err := s.speakerRepo.GetSpeaker(ctx, speakerID)
		if err != nil {
			return nil, err
		}
		if speaker == nil {
			return nil, fmt.Errorf("speaker %s: %w", speakerID, domain.ErrNotFound)
		}
		return speaker, nil
	}

	speakers, err := s.speakerRepo.GetSpeakers(ctx)
	if err != nil {
		return nil, err
	}
	if p.Email != "" {
		for _, sp := range speakers {
			if strings.EqualFold(sp.Email, p.Email) {
				return sp, nil
			}
		}
	}
	return s.speakerRepo.CreateSpeaker(ctx, domain.CreateSpeakerDTO{
		Name:     p.FullName,
		Role:     acceptedSpeakerRole,
		Email:    p.Email,
		Phone:    p.Phone,
		Twitter:  p.Twitter,
		LinkedIn: p.LinkedIn,
	})
}

func (s *proposalService) resolveEvent(ctx context.Context, in domain.AcceptProposalInput) (*domain.Event, error) {
	if in.EventID != "" {
		event, err := s.eventRepo.GetEvent(ctx, in.EventID)
		if err != nil {
			return nil, err
		}
		if event == nil {
			return nil, fmt.Errorf("event %s: %w", in.EventID, domain.ErrNotFound)
		}
		return event, nil
	}

	dto := in.NewEvent
	if strings.TrimSpace(dto.Title) == "" {
		return nil, fmt.Errorf("new event title is required: %w", domain.ErrInvalidInput)
	}
	if dto.Date == "" {
		dto.Date = s.now().Format(time.DateOnly)
	}
	if dto.Time == "" {
		dto.Time = defaultEventTime
	}
	if dto.Format == "" {
		dto.Format = domain.EventFormatInPerson
	}
	return s.eventRepo.CreateEvent(ctx, dto)
}
