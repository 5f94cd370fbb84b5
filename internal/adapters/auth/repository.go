package auth

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"communityhub/internal/domain"
)

// Option configures the remote AuthRepository.
type Option func(*authRepository)

// WithEnvLookup replaces os.Getenv for reading the allow-list.
func WithEnvLookup(lookup func(string) string) Option {
	return func(r *authRepository) { r.lookup = lookup }
}

type authRepository struct {
	provider domain.IdentityProvider
	logger   *slog.Logger
	lookup   func(string) string

	mu        sync.Mutex
	current   *domain.User
	listeners map[int]domain.AuthStateListener
	nextID    int
}

// NewAuthRepository returns the remote AuthRepository backed by provider.
// It resolves the provider's current session, then follows every provider session
// change: the user is mapped, the allow-list decision is re-derived and subscribers
// are notified.
func NewAuthRepository(ctx context.Context, provider domain.IdentityProvider, logger *slog.Logger, opts ...Option) domain.AuthRepository {
	if logger == nil {
		logger = slog.Default()
	}
	r := &authRepository{
		provider:  provider,
		logger:    logger,
		lookup:    os.Getenv,
		listeners: make(map[int]domain.AuthStateListener),
	}
	for _, o := range opts {
		o(r)
	}

	user, err := provider.GetUser(ctx)
	if err != nil {
		logger.Warn("failed to resolve identity provider session", "err", err)
		user = nil
	}
	r.current = copyUser(user)
	provider.OnSessionChange(r.handleSessionChange)
	return r
}

func (r *authRepository) handleSessionChange(user *domain.User) {
	if user != nil {
		r.logger.Info("session changed", "user_id", user.ID, "email", user.Email, "allowed", r.IsEmailAllowed(user.Email))
	} else {
		r.logger.Info("session ended")
	}

	r.mu.Lock()
	r.current = copyUser(user)
	listeners := orderedListeners(r.listeners, r.nextID)
	r.mu.Unlock()

	for _, l := range listeners {
		l(copyUser(user))
	}
}

func (r *authRepository) CurrentUser() *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyUser(r.current)
}

func (r *authRepository) SignIn(ctx context.Context) error {
	return r.provider.SignIn(ctx)
}

func (r *authRepository) SignOut(ctx context.Context) error {
	return r.provider.SignOut(ctx)
}

// OnAuthStateChange registers listener and immediately calls it with the current user.
func (r *authRepository) OnAuthStateChange(listener domain.AuthStateListener) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = listener
	r.mu.Unlock()

	listener(r.CurrentUser())

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// IsEmailAllowed reads the allow-list on every call. An empty list denies everyone.
func (r *authRepository) IsEmailAllowed(email string) bool {
	allowed := ParseAllowList(r.lookup(AllowedEmailsEnv))
	if len(allowed) == 0 {
		r.logger.Warn("allow-list is empty, denying access", "env", AllowedEmailsEnv)
		return false
	}
	return IsEmailAllowed(allowed, email)
}
