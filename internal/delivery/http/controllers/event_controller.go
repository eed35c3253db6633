package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/helpers"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/delivery/http/middleware"
	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

// respondError maps a service error to the API envelope, logging only the
// errors that surface as 500.
func respondError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, code := helpers.MapDomainError(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, err.Error())
}

// validateCoordinates checks the both-or-neither rule and bounds for an
// optional lat/lng pair.
func validateCoordinates(lat, lng *float64) []string {
	var errs []string
	if (lat == nil) != (lng == nil) {
		errs = append(errs, "latitude and longitude must be set together")
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		errs = append(errs, "latitude must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		errs = append(errs, "longitude must be between -180 and 180")
	}
	return errs
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	Status      string     `json:"status"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Icon        string     `json:"icon"`
	Tags        []string   `json:"tags"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.StartAt == nil {
		errs = append(errs, "start_at is required")
	}
	if c.StartAt != nil && c.EndAt != nil && !c.EndAt.After(*c.StartAt) {
		errs = append(errs, "end_at must be after start_at")
	}
	if c.Status != "" && c.Status != string(domain.EventStatusOpen) && c.Status != string(domain.EventStatusApproval) {
		errs = append(errs, "status must be open or approval")
	}
	return append(errs, validateCoordinates(c.Latitude, c.Longitude)...)
}

// EventWithTags is an event together with its tag list.
type EventWithTags struct {
	Event *domain.Event `json:"event"`
	Tags  []string      `json:"tags"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventController handles event lifecycle, membership, and announcement routes.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Pins a new event on the map. start_at is required; end_at may be omitted while the plan is still loose. When icon is empty the server picks one from the event name. The authenticated user becomes the organizer.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	status := domain.EventStatus(req.Status)
	if status == "" {
		status = domain.EventStatusOpen
	}
	now := time.Now()
	event := domain.NewEvent(strings.TrimSpace(req.Name), userID, status, req.StartAt, req.EndAt, now, now)
	event.Description = req.Description
	event.Location = req.Location
	event.Latitude = req.Latitude
	event.Longitude = req.Longitude
	event.Icon = req.Icon

	if err := c.Service.CreateEvent(r.Context(), event, req.Tags); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEventsResponse is the data payload for GET /events (200).
type ListEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListEvents godoc
// @Summary List upcoming events
// @Description Returns events that have not ended yet, soonest first. Use page and page_size query params.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListUpcomingEvents(r.Context())
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	page, meta := helpers.Window(events, helpers.ParsePagination(r))
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: page, Pagination: meta})
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  EventWithTags     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event with its tags.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains event and tags"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, tags, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventWithTags{Event: event, Tags: tags})
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All
// fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	Status      *string    `json:"status"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Icon        *string    `json:"icon"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.Status != nil && *u.Status != string(domain.EventStatusOpen) && *u.Status != string(domain.EventStatusApproval) {
		errs = append(errs, "status must be open or approval")
	}
	if u.Latitude != nil && (*u.Latitude < -90 || *u.Latitude > 90) {
		errs = append(errs, "latitude must be between -90 and 90")
	}
	if u.Longitude != nil && (*u.Longitude < -180 || *u.Longitude > 180) {
		errs = append(errs, "longitude must be between -180 and 180")
	}
	return errs
}

// UpdateEventSuccessResponse is the success response envelope for PATCH /events/{eventID} (200).
type UpdateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially updates an event. Only the organizer can update. The merged start/end window must stay valid.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UpdateEventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	upd := domain.EventUpdate{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Icon:        req.Icon,
	}
	if req.Status != nil {
		status := domain.EventStatus(*req.Status)
		upd.Status = &status
	}

	event, err := c.Service.UpdateEvent(r.Context(), eventID, userID, upd)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// StatusResponse is the data payload for operations that return only a status string.
type StatusResponse struct {
	Status string `json:"status"`
}

// StatusSuccessResponse is the success response envelope for status-only operations.
type StatusSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event and its memberships, tags, and announcements. Only the organizer can delete.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, userID); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// ListMyEventsSuccessResponse is the success response envelope for GET /events/mine (200).
type ListMyEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListMyEvents godoc
// @Summary List events created by the current user
// @Description Returns events where the authenticated user is the creator, soonest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyEventsSuccessResponse "data is an array of events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/mine [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListOrganizerEvents(r.Context(), userID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListMembersSuccessResponse is the success response envelope for GET /events/{eventID}/members (200).
type ListMembersSuccessResponse struct {
	Data  []*domain.EventMemberWithProfile `json:"data"`
	Error *helpers.APIError                `json:"error"`
}

// ListMembers godoc
// @Summary List members of an event
// @Description Returns the event's memberships with nickname and avatar where a profile exists.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListMembersSuccessResponse "data is an array of members"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/members [get]
func (c *EventController) ListMembers(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	members, err := c.Service.ListMembers(r.Context(), eventID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if members == nil {
		members = []*domain.EventMemberWithProfile{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, members)
}

// InviteUsersRequest is the request body for POST /events/{eventID}/invites.
type InviteUsersRequest struct {
	UserIDs []string `json:"user_ids"`
}

// Validate implements Validator.
func (i InviteUsersRequest) Validate() []string {
	if len(i.UserIDs) == 0 {
		return []string{"user_ids is required"}
	}
	for _, id := range i.UserIDs {
		if strings.TrimSpace(id) == "" {
			return []string{"user_ids cannot contain empty entries"}
		}
	}
	return nil
}

// InviteUsersResponse is the data payload for POST /events/{eventID}/invites (200).
type InviteUsersResponse struct {
	Invited int      `json:"invited"`
	Failed  []string `json:"failed"`
}

// InviteUsersSuccessResponse is the success response envelope for POST /events/{eventID}/invites (200).
type InviteUsersSuccessResponse struct {
	Data  InviteUsersResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// InviteUsers godoc
// @Summary Invite users to an event
// @Description Adds invited memberships for the given users and emails those whose profile carries an address. Only the organizer or a cohost can invite. Users who are already members land in failed.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body InviteUsersRequest true "User IDs to invite"
// @Success 200 {object} controllers.InviteUsersSuccessResponse "data contains invited count and failed list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer or cohost)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invites [post]
func (c *EventController) InviteUsers(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req InviteUsersRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invited, failed, err := c.Service.InviteUsers(r.Context(), eventID, callerID, req.UserIDs)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if failed == nil {
		failed = []string{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InviteUsersResponse{Invited: invited, Failed: failed})
}

// RespondInvitationRequest is the request body for POST /events/{eventID}/respond.
type RespondInvitationRequest struct {
	Accept *bool `json:"accept"`
}

// Validate implements Validator.
func (i RespondInvitationRequest) Validate() []string {
	if i.Accept == nil {
		return []string{"accept is required"}
	}
	return nil
}

// RespondInvitation godoc
// @Summary Respond to an event invitation
// @Description Accepting turns the invited membership into participant; declining removes it. 404 when the caller has no membership, 400 when the membership is not an invitation.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body RespondInvitationRequest true "Accept or decline"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (membership is not an invitation)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no invitation)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/respond [post]
func (c *EventController) RespondInvitation(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req RespondInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RespondToInvitation(r.Context(), eventID, userID, *req.Accept); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	status := "declined"
	if *req.Accept {
		status = "accepted"
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: status})
}

// ChangeMemberRoleRequest is the request body for PATCH /events/{eventID}/members/{userID}.
type ChangeMemberRoleRequest struct {
	Role string `json:"role"`
}

// Validate implements Validator.
func (c ChangeMemberRoleRequest) Validate() []string {
	role := domain.MemberRole(c.Role)
	if !role.Valid() || role == domain.RoleInvited {
		return []string{"role must be organizer, cohost, or participant"}
	}
	return nil
}

// ChangeMemberRole godoc
// @Summary Change a member's role
// @Description Sets the target member's role. Only the event creator can change roles; invited cannot be assigned this way.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path string true "Target user ID"
// @Param body body ChangeMemberRoleRequest true "New role"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not creator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/members/{userID} [patch]
func (c *EventController) ChangeMemberRole(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	targetID := r.PathValue("userID")
	if eventID == "" || targetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or userID")
		return
	}
	var req ChangeMemberRoleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.ChangeMemberRole(r.Context(), eventID, targetID, callerID, domain.MemberRole(req.Role)); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "updated"})
}

// RemoveMember godoc
// @Summary Remove a member from an event
// @Description Removes the target membership. The creator can remove anyone but themselves; members can remove themselves (leave).
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path string true "Target user ID"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (cannot remove the creator)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/members/{userID} [delete]
func (c *EventController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	targetID := r.PathValue("userID")
	if eventID == "" || targetID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or userID")
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RemoveMember(r.Context(), eventID, targetID, callerID); err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "removed"})
}

// ListBookingsSuccessResponse is the success response envelope for GET /me/events (200).
type ListBookingsSuccessResponse struct {
	Data  []*domain.MembershipWithEvent `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// ListBookings godoc
// @Summary List the current user's event memberships
// @Description Returns every event the authenticated user belongs to, with their role on each.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListBookingsSuccessResponse "data is an array of memberships with events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/events [get]
func (c *EventController) ListBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	memberships, err := c.Service.ListUserEvents(r.Context(), userID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if memberships == nil {
		memberships = []*domain.MembershipWithEvent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, memberships)
}

// CreateAnnouncementRequest is the request body for POST /events/{eventID}/announcements.
type CreateAnnouncementRequest struct {
	Comment string `json:"comment"`
}

// Validate implements Validator.
func (a CreateAnnouncementRequest) Validate() []string {
	if strings.TrimSpace(a.Comment) == "" {
		return []string{"comment is required"}
	}
	return nil
}

// CreateAnnouncementSuccessResponse is the success response envelope for POST /events/{eventID}/announcements (201).
type CreateAnnouncementSuccessResponse struct {
	Data  *domain.Announcement `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// CreateAnnouncement godoc
// @Summary Post an announcement to an event
// @Description Adds a comment to the event feed. The caller must be the creator or a member.
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body CreateAnnouncementRequest true "Announcement comment"
// @Success 201 {object} controllers.CreateAnnouncementSuccessResponse "data contains the announcement"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not a member)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/announcements [post]
func (c *EventController) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req CreateAnnouncementRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	announcement, err := c.Service.CreateAnnouncement(r.Context(), eventID, userID, req.Comment)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, announcement)
}

// ListAnnouncementsSuccessResponse is the success response envelope for GET /events/{eventID}/announcements (200).
type ListAnnouncementsSuccessResponse struct {
	Data  []*domain.Announcement `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ListAnnouncements godoc
// @Summary List announcements for an event
// @Description Returns the event's announcements, newest first.
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListAnnouncementsSuccessResponse "data is an array of announcements"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/announcements [get]
func (c *EventController) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	announcements, err := c.Service.ListAnnouncements(r.Context(), eventID)
	if err != nil {
		respondError(c.Logger, w, r, err)
		return
	}
	if announcements == nil {
		announcements = []*domain.Announcement{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, announcements)
}
