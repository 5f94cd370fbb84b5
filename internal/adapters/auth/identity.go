package auth

import (
	"context"
	"fmt"
	"sync"

	"communityhub/internal/domain"
)

// ContextTokenSource hands out the access token the caller stored with domain.WithAccessToken.
type ContextTokenSource struct{}

func (ContextTokenSource) Token(ctx context.Context) (string, error) {
	token, ok := domain.AccessTokenFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("no access token presented: %w", domain.ErrUnauthorized)
	}
	return token, nil
}

// TokenIdentityProvider keeps a provider session built from a verified access token.
// SignIn fetches a token from the source and verifies it; SignOut drops the session.
type TokenIdentityProvider struct {
	source   domain.TokenSource
	verifier domain.TokenVerifier

	mu        sync.Mutex
	user      *domain.User
	listeners map[int]domain.AuthStateListener
	nextID    int
}

func NewTokenIdentityProvider(source domain.TokenSource, verifier domain.TokenVerifier) *TokenIdentityProvider {
	return &TokenIdentityProvider{
		source:    source,
		verifier:  verifier,
		listeners: make(map[int]domain.AuthStateListener),
	}
}

func (p *TokenIdentityProvider) GetUser(context.Context) (*domain.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copyUser(p.user), nil
}

func (p *TokenIdentityProvider) SignIn(ctx context.Context) error {
	token, err := p.source.Token(ctx)
	if err != nil {
		return err
	}
	user, err := p.verifier.Verify(token)
	if err != nil {
		return err
	}
	p.emit(user)
	return nil
}

func (p *TokenIdentityProvider) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.emit(nil)
	return nil
}

// OnSessionChange registers listener. It is only called on later changes.
func (p *TokenIdentityProvider) OnSessionChange(listener domain.AuthStateListener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = listener
	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *TokenIdentityProvider) emit(user *domain.User) {
	p.mu.Lock()
	p.user = copyUser(user)
	listeners := orderedListeners(p.listeners, p.nextID)
	p.mu.Unlock()

	for _, l := range listeners {
		l(copyUser(user))
	}
}

func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

// orderedListeners returns the registered listeners in registration order.
func orderedListeners(m map[int]domain.AuthStateListener, next int) []domain.AuthStateListener {
	out := make([]domain.AuthStateListener, 0, len(m))
	for id := 0; id < next; id++ {
		if l, ok := m[id]; ok {
			out = append(out, l)
		}
	}
	return out
}
