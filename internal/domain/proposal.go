package domain

import (
	"context"
	"time"
)

// ProposalStatus is the review state of a talk proposal.
type ProposalStatus string

const (
	ProposalStatusProposed ProposalStatus = "proposed"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusProposed, ProposalStatusAccepted, ProposalStatusRejected:
		return true
	}
	return false
}

// ProposalDuration is the talk length in minutes.
type ProposalDuration string

const (
	ProposalDuration15 ProposalDuration = "15"
	ProposalDuration30 ProposalDuration = "30"
)

// Valid reports whether d is 15 or 30.
func (d ProposalDuration) Valid() bool {
	return d == ProposalDuration15 || d == ProposalDuration30
}

// TalkProposal is a talk submitted through the public form.
// swagger:model TalkProposal
type TalkProposal struct {
	ID          string           `json:"id"`
	FullName    string           `json:"fullName"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Duration    ProposalDuration `json:"duration"`
	Status      ProposalStatus   `json:"status"`
	LinkedIn    string           `json:"linkedin,omitempty"`
	GitHub      string           `json:"github,omitempty"`
	Twitter     string           `json:"twitter,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// CreateProposalDTO is the public submission. Status is accepted on the wire but
// always ignored: submissions start as proposed.
type CreateProposalDTO struct {
	FullName    string           `json:"fullName"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Duration    ProposalDuration `json:"duration"`
	LinkedIn    string           `json:"linkedin,omitempty"`
	GitHub      string           `json:"github,omitempty"`
	Twitter     string           `json:"twitter,omitempty"`
	Status      ProposalStatus   `json:"status,omitempty"`
}

// NewTalkProposal builds a proposed TalkProposal from dto. ID is set by the adapter.
func NewTalkProposal(dto CreateProposalDTO, createdAt time.Time) *TalkProposal {
	return &TalkProposal{
		FullName:    dto.FullName,
		Email:       dto.Email,
		Phone:       dto.Phone,
		Title:       dto.Title,
		Description: dto.Description,
		Duration:    dto.Duration,
		Status:      ProposalStatusProposed,
		LinkedIn:    dto.LinkedIn,
		GitHub:      dto.GitHub,
		Twitter:     dto.Twitter,
		CreatedAt:   createdAt,
	}
}

// ProposalRepository defines the interface for talk proposal storage.
type ProposalRepository interface {
	SubmitProposal(ctx context.Context, dto CreateProposalDTO) (*TalkProposal, error)
	GetProposals(ctx context.Context) ([]*TalkProposal, error)
	UpdateProposalStatus(ctx context.Context, id string, status ProposalStatus) error
}

// ProposalNotifier announces a freshly submitted proposal. Callers treat it as best effort.
type ProposalNotifier interface {
	NotifyNewProposal(ctx context.Context, proposal *TalkProposal) error
}

// AcceptProposalInput selects where an accepted talk goes.
// Empty EventID creates a new event from NewEvent; empty SpeakerID reuses a speaker with
// the proposal's email or creates one.
type AcceptProposalInput struct {
	EventID   string         `json:"eventId,omitempty"`
	NewEvent  CreateEventDTO `json:"newEvent,omitempty"`
	SpeakerID string         `json:"speakerId,omitempty"`
}

// AcceptProposalResult reports the records the accept workflow touched.
type AcceptProposalResult struct {
	Event   *Event   `json:"event"`
	Speaker *Speaker `json:"speaker"`
}

// ProposalService defines the business logic around talk proposals.
type ProposalService interface {
	Submit(ctx context.Context, dto CreateProposalDTO) (*TalkProposal, error)
	List(ctx context.Context) ([]*TalkProposal, error)
	Accept(ctx context.Context, id string, in AcceptProposalInput) (*AcceptProposalResult, error)
	Reject(ctx context.Context, id string) error
	// UpdateStatus sets the status directly, without the accept workflow.
	UpdateStatus(ctx context.Context, id string, status ProposalStatus) error
}
