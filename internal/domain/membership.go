package domain

import (
	"context"
	"time"
)

// MemberRole is the role a user holds on an event.
type MemberRole string

const (
	RoleOrganizer   MemberRole = "organizer"
	RoleParticipant MemberRole = "participant"
	RoleInvited     MemberRole = "invited"
	RoleCohost      MemberRole = "cohost"
)

// matchExcludedRoles is the explicit set of roles that exclude a user from
// availability matching for an event. A role outside this set does NOT
// exclude; any new role introduced upstream must be added here deliberately.
var matchExcludedRoles = map[MemberRole]struct{}{
	RoleOrganizer:   {},
	RoleParticipant: {},
	RoleInvited:     {},
	RoleCohost:      {},
}

// ExcludesFromMatching reports whether a membership with this role removes the
// (user, event) pair from availability match output.
func (r MemberRole) ExcludesFromMatching() bool {
	_, ok := matchExcludedRoles[r]
	return ok
}

// Valid reports whether the role is one of the known membership roles.
func (r MemberRole) Valid() bool {
	switch r {
	case RoleOrganizer, RoleParticipant, RoleInvited, RoleCohost:
		return true
	}
	return false
}

// EventMember represents a user's association with an event.
// swagger:model EventMember
type EventMember struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	UserID    string     `json:"user_id"`
	Role      MemberRole `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// EventMemberWithProfile bundles a membership with display fields from the
// member's profile. Nickname and AvatarURL are nil when no profile row exists.
type EventMemberWithProfile struct {
	Member    *EventMember `json:"member"`
	Nickname  *string      `json:"nickname"`
	AvatarURL *string      `json:"avatar_url"`
}

// MembershipWithEvent bundles a membership with its event, for booking lists.
type MembershipWithEvent struct {
	Member *EventMember `json:"member"`
	Event  *Event       `json:"event"`
}

// EventMemberRepository defines storage operations for event memberships.
type EventMemberRepository interface {
	// Insert adds a membership row. Returns ErrAlreadyMember on a (event, user) conflict.
	Insert(ctx context.Context, m *EventMember) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventMember, error)
	ListByEventID(ctx context.Context, eventID string) ([]*EventMember, error)
	// ListByEventIDs returns memberships for any of the given events in one query.
	ListByEventIDs(ctx context.Context, eventIDs []string) ([]*EventMember, error)
	ListByUserID(ctx context.Context, userID string) ([]*EventMember, error)
	UpdateRole(ctx context.Context, eventID, userID string, role MemberRole) error
	Delete(ctx context.Context, eventID, userID string) error
}
