package controllers

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/helpers"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/middleware"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// ProfileController handles the current user's profile.
type ProfileController struct {
	Logger  *slog.Logger
	Service domain.ProfileService
}

func NewProfileController(logger *slog.Logger, svc domain.ProfileService) *ProfileController {
	return &ProfileController{
		Logger:  logger,
		Service: svc,
	}
}

// GetProfileSuccessResponse is the success response envelope for GET /profiles/me (200).
type GetProfileSuccessResponse struct {
	Data  *domain.UserProfile `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// GetProfile godoc
// @Summary Get the current user's profile
// @Description Returns the authenticated user's profile row, 404 when none exists yet.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.GetProfileSuccessResponse "data contains the profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/me [get]
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	profile, err := c.Service.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}

// UpsertProfileRequest is the request body for PUT /profiles/me.
type UpsertProfileRequest struct {
	Nickname  *string `json:"nickname"`
	AvatarURL *string `json:"avatar_url"`
	Email     *string `json:"email"`
}

// Validate implements Validator.
func (u UpsertProfileRequest) Validate() []string {
	var errs []string
	if u.Nickname != nil && strings.TrimSpace(*u.Nickname) == "" {
		errs = append(errs, "nickname cannot be empty")
	}
	if u.Email != nil && !emailRegex.MatchString(strings.TrimSpace(*u.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// UpsertProfileSuccessResponse is the success response envelope for PUT /profiles/me (200).
type UpsertProfileSuccessResponse struct {
	Data  *domain.UserProfile `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// UpsertProfile godoc
// @Summary Create or update the current user's profile
// @Description Stores nickname, avatar, and notification email for the authenticated user.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpsertProfileRequest true "Profile fields"
// @Success 200 {object} controllers.UpsertProfileSuccessResponse "data contains the stored profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/me [put]
func (c *ProfileController) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var req UpsertProfileRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	profile := &domain.UserProfile{
		ID:        userID,
		Nickname:  req.Nickname,
		AvatarURL: req.AvatarURL,
		Email:     req.Email,
		UpdatedAt: time.Now(),
	}
	if err := c.Service.UpsertProfile(r.Context(), profile); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, profile)
}
