package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/controllers"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/middleware"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

// Controllers bundles the route handlers for NewRouter.
type Controllers struct {
	Event        *controllers.EventController
	Connect      *controllers.ConnectController
	Availability *controllers.AvailabilityController
	Profile      *controllers.ProfileController
	AI           *controllers.AIController
}

// NewRouter initializes the HTTP router with all application routes. Every
// route except /health and /swagger/ requires a Bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Events
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events", auth(c.Event.ListEvents))
	mux.HandleFunc("GET /events/mine", auth(c.Event.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))

	// Membership
	mux.HandleFunc("GET /events/{eventID}/members", auth(c.Event.ListMembers))
	mux.HandleFunc("POST /events/{eventID}/invites", auth(c.Event.InviteUsers))
	mux.HandleFunc("POST /events/{eventID}/respond", auth(c.Event.RespondInvitation))
	mux.HandleFunc("PATCH /events/{eventID}/members/{userID}", auth(c.Event.ChangeMemberRole))
	mux.HandleFunc("DELETE /events/{eventID}/members/{userID}", auth(c.Event.RemoveMember))

	// Announcements
	mux.HandleFunc("POST /events/{eventID}/announcements", auth(c.Event.CreateAnnouncement))
	mux.HandleFunc("GET /events/{eventID}/announcements", auth(c.Event.ListAnnouncements))

	// Matching
	mux.HandleFunc("GET /connect/matches", auth(c.Connect.ListMatches))
	mux.HandleFunc("GET /events/{eventID}/candidates", auth(c.Connect.ListEventCandidates))

	// Current user
	mux.HandleFunc("GET /me/events", auth(c.Event.ListBookings))
	mux.HandleFunc("POST /availability", auth(c.Availability.SetAvailability))
	mux.HandleFunc("GET /availability", auth(c.Availability.GetAvailability))
	mux.HandleFunc("DELETE /availability", auth(c.Availability.ClearAvailability))
	mux.HandleFunc("GET /profiles/me", auth(c.Profile.GetProfile))
	mux.HandleFunc("PUT /profiles/me", auth(c.Profile.UpsertProfile))

	// Drafting assists
	mux.HandleFunc("POST /ai/fill", auth(c.AI.FillEvent))
	mux.HandleFunc("POST /ai/title", auth(c.AI.GenerateTitle))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
