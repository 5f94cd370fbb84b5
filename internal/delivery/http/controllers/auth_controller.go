package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"communityhub/internal/delivery/http/helpers"
	"communityhub/internal/delivery/http/middleware"
	"communityhub/internal/domain"
)

// SessionSuccessResponse is the success envelope for the auth endpoints.
type SessionSuccessResponse struct {
	Data  *domain.Session   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SignInRequest carries the access token the identity provider gave the caller.
type SignInRequest struct {
	AccessToken string `json:"accessToken"`
}

func (r *SignInRequest) Validate() []string {
	r.AccessToken = strings.TrimSpace(r.AccessToken)
	if r.AccessToken == "" {
		return []string{"accessToken is required"}
	}
	return nil
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{Logger: logger, Service: svc}
}

// GetSession godoc
// @Summary Current operator session
// @Description Returns the operator the bearer token belongs to. Never returns a token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/session [get]
func (c *AuthController) GetSession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "not signed in")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &domain.Session{User: user, Allowed: true})
}

// SignIn godoc
// @Summary Sign in
// @Description Verifies the caller's identity-provider access token. A session token is returned only when the email is on the allow-list.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body controllers.SignInRequest true "Identity-provider access token"
// @Success 200 {object} controllers.SessionSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/sign-in [post]
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	session, err := c.Service.SignIn(r.Context(), req.AccessToken)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// SignOut godoc
// @Summary Sign out
// @Description Revokes the bearer token.
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/sign-out [post]
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.TokenFromContext(r.Context())
	if err := c.Service.SignOut(r.Context(), token); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
