package controllers

import (
	"log/slog"
	"net/http"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/helpers"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

// ConnectController serves the availability-matching reads.
type ConnectController struct {
	Logger  *slog.Logger
	Service domain.MatchService
}

func NewConnectController(logger *slog.Logger, svc domain.MatchService) *ConnectController {
	return &ConnectController{
		Logger:  logger,
		Service: svc,
	}
}

// ListMatchesSuccessResponse is the success response envelope for GET /connect/matches (200).
type ListMatchesSuccessResponse struct {
	Data  []*domain.Match   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListMatches godoc
// @Summary List availability matches
// @Description Returns every (available user, upcoming event) pair where the user's window strictly contains the event window and the user is not already attached to the event. Computed fresh on each call.
// @Tags connect
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMatchesSuccessResponse "data is an array of matches"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /connect/matches [get]
func (c *ConnectController) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := c.Service.ListMatches(r.Context())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if matches == nil {
		matches = []*domain.Match{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, matches)
}

// ListEventCandidatesSuccessResponse is the success response envelope for GET /events/{eventID}/candidates (200).
type ListEventCandidatesSuccessResponse struct {
	Data  []*domain.EventCandidate `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ListEventCandidates godoc
// @Summary List invitable users for an event
// @Description Returns available users whose window covers the current time (an open-ended end counts), excluding current members, with straight-line distance when both sides have coordinates.
// @Tags connect
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListEventCandidatesSuccessResponse "data is an array of candidates"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/candidates [get]
func (c *ConnectController) ListEventCandidates(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	candidates, err := c.Service.ListEventCandidates(r.Context(), eventID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if candidates == nil {
		candidates = []*domain.EventCandidate{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, candidates)
}
