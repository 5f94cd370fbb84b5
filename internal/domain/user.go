package domain

import (
	"context"
	"time"
)

// User is the signed-in operator as reported by the identity provider.
// It is session state, not a stored entity.
// swagger:model User
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// AuthStateListener receives the current user (nil when signed out).
type AuthStateListener func(user *User)

// AuthRepository holds the current session and the authorization predicate.
type AuthRepository interface {
	// CurrentUser returns the signed-in user or nil.
	CurrentUser() *User
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	// OnAuthStateChange registers listener and returns a function that removes it.
	OnAuthStateChange(listener AuthStateListener) (unsubscribe func())
	// IsEmailAllowed reports whether email may use the internal tools.
	IsEmailAllowed(email string) bool
}

// IdentityProvider is the external identity service behind the remote auth adapter.
type IdentityProvider interface {
	// GetUser returns the user of the active provider session, or nil.
	GetUser(ctx context.Context) (*User, error)
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	// OnSessionChange registers listener for provider session changes.
	OnSessionChange(listener AuthStateListener) (unsubscribe func())
}

// TokenSource yields the access token presented to the identity provider on sign-in.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type accessTokenKey struct{}

// WithAccessToken returns a context carrying the caller's identity-provider access token.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFromContext returns the token stored by WithAccessToken.
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok && token != ""
}

// TokenIssuer issues identity tokens (e.g. JWT) for a user.
type TokenIssuer interface {
	Issue(user *User, expiry time.Duration) (string, error)
}

// TokenVerifier verifies an identity token and returns the user it was issued for.
type TokenVerifier interface {
	Verify(token string) (*User, error)
}

// Session describes a signed-in operator as seen by the HTTP layer.
// Token is only issued to users on the allow-list.
// swagger:model Session
type Session struct {
	User      *User     `json:"user"`
	Allowed   bool      `json:"allowed"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// AuthService signs operators in and guards the internal API. Sessions are
// per caller: nothing here reads or changes the AuthRepository session.
type AuthService interface {
	// SignIn verifies an identity-provider access token presented by the caller.
	// A session token is issued only when the email is on the allow-list.
	SignIn(ctx context.Context, accessToken string) (*Session, error)
	// SignOut revokes a session token until it would have expired.
	SignOut(ctx context.Context, token string) error
	// Authenticate verifies a session token and checks the allow-list.
	Authenticate(token string) (*User, error)
}
