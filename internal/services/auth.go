package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"communityhub/internal/domain"
)

type authService struct {
	authRepo  domain.AuthRepository
	identity  domain.TokenVerifier
	issuer    domain.TokenIssuer
	verifier  domain.TokenVerifier
	jwtExpiry time.Duration
	logger    *slog.Logger
	now       func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewAuthService returns an AuthService. identity verifies the access tokens callers
// present on sign-in; issuer and verifier handle the session tokens it hands out,
// which last jwtExpiry. The allow-list is read from authRepo.
func NewAuthService(authRepo domain.AuthRepository, identity domain.TokenVerifier, issuer domain.TokenIssuer, verifier domain.TokenVerifier, jwtExpiry time.Duration, logger *slog.Logger) domain.AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		authRepo:  authRepo,
		identity:  identity,
		issuer:    issuer,
		verifier:  verifier,
		jwtExpiry: jwtExpiry,
		logger:    logger,
		now:       time.Now,
		revoked:   make(map[string]time.Time),
	}
}

func (s *authService) SignIn(ctx context.Context, accessToken string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if accessToken == "" || s.isRevoked(accessToken) {
		return nil, fmt.Errorf("missing or revoked access token: %w", domain.ErrUnauthorized)
	}
	user, err := s.identity.Verify(accessToken)
	if err != nil {
		return nil, err
	}
	session := &domain.Session{User: user, Allowed: s.authRepo.IsEmailAllowed(user.Email)}
	if !session.Allowed {
		s.logger.Warn("sign-in by user outside the allow-list", "email", user.Email)
		return session, nil
	}
	token, err := s.issuer.Issue(user, s.jwtExpiry)
	if err != nil {
		return nil, err
	}
	session.Token = token
	session.ExpiresAt = s.now().Add(s.jwtExpiry).UTC()
	return session, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("missing token: %w", domain.ErrUnauthorized)
	}
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for t, until := range s.revoked {
		if now.After(until) {
			delete(s.revoked, t)
		}
	}
	s.revoked[token] = now.Add(s.jwtExpiry)
	return nil
}

func (s *authService) Authenticate(token string) (*domain.User, error) {
	if token == "" {
		return nil, fmt.Errorf("missing token: %w", domain.ErrUnauthorized)
	}
	if s.isRevoked(token) {
		return nil, fmt.Errorf("token was signed out: %w", domain.ErrUnauthorized)
	}
	user, err := s.verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	if !s.authRepo.IsEmailAllowed(user.Email) {
		return nil, fmt.Errorf("%s is not allowed: %w", user.Email, domain.ErrForbidden)
	}
	return user, nil
}

func (s *authService) isRevoked(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[token]
	return ok && !s.now().After(until)
}
