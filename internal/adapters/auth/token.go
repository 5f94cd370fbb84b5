package auth

import (
	"errors"
	"fmt"
	"time"

	"communityhub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// userMetadata mirrors the profile block identity providers put in access tokens.
type userMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Email        string       `json:"email"`
	UserMetadata userMetadata `json:"user_metadata"`
}

type jwtIssuer struct {
	secret []byte
}

// NewJWTIssuer returns a TokenIssuer that signs JWTs with HS256 using the given secret.
func NewJWTIssuer(secret string) domain.TokenIssuer {
	return &jwtIssuer{secret: []byte(secret)}
}

func (i *jwtIssuer) Issue(user *domain.User, expiry time.Duration) (string, error) {
	if user == nil {
		return "", fmt.Errorf("issue token: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email:        user.Email,
		UserMetadata: userMetadata{FullName: user.Name, AvatarURL: user.AvatarURL},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a TokenVerifier accepting HS256 tokens signed with secret.
// Every rejection wraps domain.ErrUnauthorized.
func NewJWTVerifier(secret string) domain.TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(token string) (*domain.User, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("AUTH_JWT_SECRET: %w", domain.ErrMissingConfig)
	}
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token expired: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("invalid token: %v: %w", err, domain.ErrUnauthorized)
	}
	if !parsed.Valid || claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("token has no subject or email: %w", domain.ErrUnauthorized)
	}
	name := claims.UserMetadata.FullName
	if name == "" {
		name = claims.UserMetadata.Name
	}
	return &domain.User{
		ID:        claims.Subject,
		Email:     claims.Email,
		Name:      name,
		AvatarURL: claims.UserMetadata.AvatarURL,
	}, nil
}
