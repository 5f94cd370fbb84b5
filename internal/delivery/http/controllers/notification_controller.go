package controllers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"communityhub/internal/delivery/http/helpers"
	"communityhub/internal/domain"
)

type NotificationController struct {
	Logger  *slog.Logger
	Service domain.NotificationService
	// Token must be presented as a Bearer token by callers. Without it the endpoint refuses every request.
	Token string
}

func NewNotificationController(logger *slog.Logger, svc domain.NotificationService, token string) *NotificationController {
	if token == "" {
		logger.Warn("NOTIFY_WEBHOOK_TOKEN is not set, the notify-new-proposal endpoint is disabled")
	}
	return &NotificationController{Logger: logger, Service: svc, Token: token}
}

// NotifyNewProposal godoc
// @Summary Notify organizers about a new proposal
// @Description Receives the new-proposal envelope ({type: INSERT, table: talk_proposals, record}) and emails the notification recipient.
// @Tags functions
// @Accept json
// @Produce json
// @Param envelope body domain.ProposalNotification true "Notification envelope"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /functions/notify-new-proposal [post]
func (c *NotificationController) NotifyNewProposal(w http.ResponseWriter, r *http.Request) {
	if c.Token == "" {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "notifications are not configured")
		return
	}
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(c.Token)) != 1 {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid notification token")
		return
	}
	var envelope domain.ProposalNotification
	if !helpers.DecodeAndValidate(w, r, &envelope) {
		return
	}
	if err := c.Service.HandleNewProposal(r.Context(), &envelope); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"success": true})
}
