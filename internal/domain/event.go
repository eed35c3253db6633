package domain

import (
	"context"
	"time"
)

// EventStatus controls how users join an event.
type EventStatus string

const (
	// EventStatusOpen lets anyone join without approval.
	EventStatusOpen EventStatus = "open"
	// EventStatusApproval requires organizer approval to join.
	EventStatusApproval EventStatus = "approval"
)

// Event represents a meetup pinned on the map.
// StartAt is required on create; EndAt may be unset while the organizer is
// still drafting, and such events are skipped by availability matching.
// swagger:model Event
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Location    *string     `json:"location"`
	StartAt     *time.Time  `json:"start_at"`
	EndAt       *time.Time  `json:"end_at"`
	Status      EventStatus `json:"status"`
	Latitude    *float64    `json:"latitude"`
	Longitude   *float64    `json:"longitude"`
	Icon        string      `json:"icon"`
	CreatedBy   string      `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name, createdBy string, status EventStatus, startAt, endAt *time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		CreatedBy: createdBy,
		Status:    status,
		StartAt:   startAt,
		EndAt:     endAt,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// HasWindow reports whether the event carries both timestamps required for matching.
func (e *Event) HasWindow() bool {
	return e != nil && e.StartAt != nil && e.EndAt != nil
}

// EventUpdate holds the optional fields of a partial event update.
// Nil fields are left unchanged.
type EventUpdate struct {
	Name        *string
	Description *string
	Location    *string
	StartAt     *time.Time
	EndAt       *time.Time
	Status      *EventStatus
	Latitude    *float64
	Longitude   *float64
	Icon        *string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListUpcoming returns events with start_at >= ref, ordered by start_at ascending.
	ListUpcoming(ctx context.Context, ref time.Time) ([]*Event, error)
	ListByCreator(ctx context.Context, userID string) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventTagRepository defines storage operations for event tags.
type EventTagRepository interface {
	// Add inserts the given tags for the event, ignoring duplicates. Returns the number inserted.
	Add(ctx context.Context, eventID string, tags []string) (int, error)
	ListByEventID(ctx context.Context, eventID string) ([]string, error)
}

// EventService defines event lifecycle and membership operations exposed to controllers.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event, tags []string) error
	GetEvent(ctx context.Context, eventID string) (*Event, []string, error)
	ListUpcomingEvents(ctx context.Context) ([]*Event, error)
	ListOrganizerEvents(ctx context.Context, userID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID, callerID string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, callerID string) error

	ListMembers(ctx context.Context, eventID string) ([]*EventMemberWithProfile, error)
	// InviteUsers inserts invited memberships for the given users.
	// Returns the number invited and the IDs that could not be invited.
	InviteUsers(ctx context.Context, eventID, callerID string, userIDs []string) (invited int, failed []string, err error)
	RespondToInvitation(ctx context.Context, eventID, userID string, accept bool) error
	ChangeMemberRole(ctx context.Context, eventID, targetUserID, callerID string, role MemberRole) error
	RemoveMember(ctx context.Context, eventID, targetUserID, callerID string) error
	ListUserEvents(ctx context.Context, userID string) ([]*MembershipWithEvent, error)

	CreateAnnouncement(ctx context.Context, eventID, userID, comment string) (*Announcement, error)
	ListAnnouncements(ctx context.Context, eventID string) ([]*Announcement, error)
}
