package memory

import (
	"slices"
	"sync"

	"communityhub/internal/domain"
)

// Test doubles: the in-memory adapters with no simulated latency plus synchronous
// Given* seams that replace the whole collection in one call. Create, update and
// delete run the real adapter logic unchanged.

// FakeEventRepository is an EventRepository for tests.
type FakeEventRepository struct {
	*EventRepository
}

func NewFakeEventRepository() *FakeEventRepository {
	return &FakeEventRepository{EventRepository: NewEventRepository(Options{})}
}

// GivenEvents replaces every stored event with events. Nil entries are dropped.
func (f *FakeEventRepository) GivenEvents(events ...*domain.Event) {
	f.replace(events)
}

// FakeSpeakerRepository is a SpeakerRepository for tests.
type FakeSpeakerRepository struct {
	*SpeakerRepository
}

func NewFakeSpeakerRepository() *FakeSpeakerRepository {
	return &FakeSpeakerRepository{SpeakerRepository: NewSpeakerRepository(Options{})}
}

// GivenSpeakers replaces every stored speaker with speakers. Nil entries are dropped.
func (f *FakeSpeakerRepository) GivenSpeakers(speakers ...*domain.Speaker) {
	f.replace(speakers)
}

// FakeProposalRepository is a ProposalRepository for tests.
type FakeProposalRepository struct {
	*ProposalRepository
}

func NewFakeProposalRepository() *FakeProposalRepository {
	return &FakeProposalRepository{ProposalRepository: NewProposalRepository(Options{})}
}

// GivenProposals replaces every stored proposal with proposals. Nil entries are dropped.
func (f *FakeProposalRepository) GivenProposals(proposals ...*domain.TalkProposal) {
	f.replace(proposals)
}

// FakeAuthRepository is an AuthRepository whose session and allow-list are set directly by tests.
type FakeAuthRepository struct {
	*AuthRepository
	mu      sync.Mutex
	allowed []string
}

func NewFakeAuthRepository() *FakeAuthRepository {
	return &FakeAuthRepository{AuthRepository: NewAuthRepository(Options{})}
}

// SetFakeUser sets the session to u (nil signs out) and notifies listeners.
func (f *FakeAuthRepository) SetFakeUser(u *domain.User) {
	if u != nil {
		cp := *u
		u = &cp
	}
	f.setUser(u)
}

// SetAllowedEmails overrides the allow-list. An empty list falls back to FakeUser only.
func (f *FakeAuthRepository) SetAllowedEmails(emails ...string) {
	f.mu.Lock()
	f.allowed = slices.Clone(emails)
	f.mu.Unlock()
}

func (f *FakeAuthRepository) IsEmailAllowed(email string) bool {
	f.mu.Lock()
	allowed := f.allowed
	f.mu.Unlock()
	if len(allowed) == 0 {
		return f.AuthRepository.IsEmailAllowed(email)
	}
	return slices.Contains(allowed, email)
}
