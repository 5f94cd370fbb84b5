package http

import (
	"log/slog"
	"net/http"

	"communityhub/internal/delivery/http/controllers"
	"communityhub/internal/delivery/http/middleware"
	"communityhub/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "communityhub/internal/delivery/http/docs"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events        *controllers.EventController
	Speakers      *controllers.SpeakerController
	Proposals     *controllers.ProposalController
	Auth          *controllers.AuthController
	Notifications *controllers.NotificationController
}

// NewRouter initializes the HTTP router with all application routes. Internal routes
// require a bearer token for an allow-listed operator.
func NewRouter(c Controllers, authService domain.AuthService, logger *slog.Logger, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(authService, logger)

	// Public
	mux.HandleFunc("GET /events/published", c.Events.ListPublishedEvents)
	mux.HandleFunc("POST /proposals", c.Proposals.SubmitProposal)
	mux.HandleFunc("POST /functions/notify-new-proposal", c.Notifications.NotifyNewProposal)

	// Auth
	mux.HandleFunc("POST /auth/sign-in", c.Auth.SignIn)
	mux.HandleFunc("GET /auth/session", requireAuth(c.Auth.GetSession))
	mux.HandleFunc("POST /auth/sign-out", requireAuth(c.Auth.SignOut))

	// Events
	mux.HandleFunc("GET /events", requireAuth(c.Events.ListEvents))
	mux.HandleFunc("POST /events", requireAuth(c.Events.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", requireAuth(c.Events.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", requireAuth(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(c.Events.DeleteEvent))

	// Speakers
	mux.HandleFunc("GET /speakers", requireAuth(c.Speakers.ListSpeakers))
	mux.HandleFunc("POST /speakers", requireAuth(c.Speakers.CreateSpeaker))
	mux.HandleFunc("GET /speakers/{speakerID}", requireAuth(c.Speakers.GetSpeaker))
	mux.HandleFunc("PATCH /speakers/{speakerID}", requireAuth(c.Speakers.UpdateSpeaker))

	// Proposals
	mux.HandleFunc("GET /proposals", requireAuth(c.Proposals.ListProposals))
	mux.HandleFunc("PATCH /proposals/{proposalID}/status", requireAuth(c.Proposals.UpdateProposalStatus))
	mux.HandleFunc("POST /proposals/{proposalID}/accept", requireAuth(c.Proposals.AcceptProposal))
	mux.HandleFunc("POST /proposals/{proposalID}/reject", requireAuth(c.Proposals.RejectProposal))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.Logging(logger)(middleware.CORS(allowedOrigins)(mux))
}
