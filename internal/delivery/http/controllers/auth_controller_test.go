package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"communityhub/internal/adapters/auth"
	"communityhub/internal/delivery/http/middleware"
	"communityhub/internal/domain"
	"communityhub/internal/repository/memory"
	"communityhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	controllerSecret = "controller-secret"
	providerSecret   = "provider-secret"
)

func newAuthMux(repo *memory.FakeAuthRepository) *http.ServeMux {
	svc := services.NewAuthService(repo, auth.NewJWTVerifier(providerSecret), auth.NewJWTIssuer(controllerSecret), auth.NewJWTVerifier(controllerSecret), time.Hour, testLogger)
	c := NewAuthController(testLogger, svc)
	requireAuth := middleware.RequireAuth(svc, testLogger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/session", requireAuth(c.GetSession))
	mux.HandleFunc("POST /auth/sign-in", c.SignIn)
	mux.HandleFunc("POST /auth/sign-out", requireAuth(c.SignOut))
	return mux
}

func providerAccessToken(t *testing.T, user domain.User) string {
	t.Helper()
	token, err := auth.NewJWTIssuer(providerSecret).Issue(&user, time.Hour)
	require.NoError(t, err)
	return token
}

func serveAuthorized(t *testing.T, mux *http.ServeMux, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestAuthController_SessionLifecycle(t *testing.T) {
	mux := newAuthMux(memory.NewFakeAuthRepository())

	rr := serveAuthorized(t, mux, http.MethodGet, "/auth/session", "", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serveAuthorized(t, mux, http.MethodPost, "/auth/sign-in", "", SignInRequest{AccessToken: providerAccessToken(t, memory.FakeUser)})
	require.Equal(t, http.StatusOK, rr.Code)
	var signedIn domain.Session
	decodeData(t, rr, &signedIn)
	require.NotNil(t, signedIn.User)
	assert.Equal(t, memory.FakeUser.Email, signedIn.User.Email)
	assert.True(t, signedIn.Allowed)
	require.NotEmpty(t, signedIn.Token)

	rr = serveAuthorized(t, mux, http.MethodGet, "/auth/session", signedIn.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var current domain.Session
	decodeData(t, rr, &current)
	require.NotNil(t, current.User)
	assert.Equal(t, memory.FakeUser.ID, current.User.ID)
	assert.Empty(t, current.Token)

	rr = serveAuthorized(t, mux, http.MethodPost, "/auth/sign-out", signedIn.Token, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = serveAuthorized(t, mux, http.MethodGet, "/auth/session", signedIn.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthController_SignInRequiresCallerCredential(t *testing.T) {
	mux := newAuthMux(memory.NewFakeAuthRepository())

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{name: "empty body", body: nil, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "blank token", body: SignInRequest{AccessToken: "  "}, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "forged token", body: SignInRequest{AccessToken: "not-a-jwt"}, wantStatus: http.StatusUnauthorized, wantCode: "unauthorized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serveAuthorized(t, mux, http.MethodPost, "/auth/sign-in", "", tt.body)
			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCode, decodeErrorCode(t, rr))
		})
	}
}

func TestAuthController_SignInOutsideAllowList(t *testing.T) {
	repo := memory.NewFakeAuthRepository()
	repo.SetAllowedEmails("organizer@devperu.org")
	mux := newAuthMux(repo)

	rr := serveAuthorized(t, mux, http.MethodPost, "/auth/sign-in", "", SignInRequest{AccessToken: providerAccessToken(t, memory.FakeUser)})
	require.Equal(t, http.StatusOK, rr.Code)
	var session domain.Session
	decodeData(t, rr, &session)
	assert.False(t, session.Allowed)
	assert.Empty(t, session.Token)
}
