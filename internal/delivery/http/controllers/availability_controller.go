package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/helpers"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/middleware"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

// AvailabilityController handles the current user's availability window.
type AvailabilityController struct {
	Logger  *slog.Logger
	Service domain.AvailabilityService
}

func NewAvailabilityController(logger *slog.Logger, svc domain.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{
		Logger:  logger,
		Service: svc,
	}
}

// SetAvailabilityRequest is the request body for POST /availability.
type SetAvailabilityRequest struct {
	StartAt   time.Time  `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
}

// Validate implements Validator.
func (s SetAvailabilityRequest) Validate() []string {
	var errs []string
	if s.StartAt.IsZero() {
		errs = append(errs, "start_at is required")
	}
	if s.EndAt != nil && !s.EndAt.After(s.StartAt) {
		errs = append(errs, "end_at must be after start_at")
	}
	return append(errs, validateCoordinates(s.Latitude, s.Longitude)...)
}

// SetAvailabilitySuccessResponse is the success response envelope for POST /availability (200).
type SetAvailabilitySuccessResponse struct {
	Data  *domain.UserAvailability `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// SetAvailability godoc
// @Summary Declare availability
// @Description Marks the authenticated user available for a window. Omitting end_at gives a two hour window from start_at. Replaces any previous declaration.
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SetAvailabilityRequest true "Availability window"
// @Success 200 {object} controllers.SetAvailabilitySuccessResponse "data contains the stored availability"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /availability [post]
func (c *AvailabilityController) SetAvailability(w http.ResponseWriter, r *http.Request) {
	var req SetAvailabilityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var endAt time.Time
	if req.EndAt != nil {
		endAt = *req.EndAt
	}
	availability, err := c.Service.SetAvailable(r.Context(), userID, req.StartAt, endAt, req.Latitude, req.Longitude)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, availability)
}

// GetAvailabilitySuccessResponse is the success response envelope for GET /availability (200).
type GetAvailabilitySuccessResponse struct {
	Data  *domain.UserAvailability `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// GetAvailability godoc
// @Summary Get the current availability declaration
// @Description Returns the authenticated user's availability row, 404 when none is set.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.GetAvailabilitySuccessResponse "data contains the availability"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /availability [get]
func (c *AvailabilityController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	availability, err := c.Service.GetStatus(r.Context(), userID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, availability)
}

// ClearAvailability godoc
// @Summary Clear the availability declaration
// @Description Removes the authenticated user's availability row. Clearing when nothing is set still succeeds.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /availability [delete]
func (c *AvailabilityController) ClearAvailability(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.ClearStatus(r.Context(), userID); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "cleared"})
}
