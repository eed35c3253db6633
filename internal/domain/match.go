package domain

import "context"

// Match is a (user, event) pair where the user's availability window strictly
// contains the event window and the user holds no excluding membership.
type Match struct {
	User  *MatchCandidate `json:"user"`
	Event *Event          `json:"event"`
}

// MatchCandidate is the user half of a match: the availability row enriched
// with profile decoration.
type MatchCandidate struct {
	Availability *UserAvailability `json:"availability"`
	Nickname     *string           `json:"nickname"`
	AvatarURL    *string           `json:"avatar_url"`
}

// EventCandidate is an available user eligible to be invited to one specific
// event, with straight-line distance to the event when both sides have
// coordinates.
type EventCandidate struct {
	UserID         string   `json:"user_id"`
	Nickname       *string  `json:"nickname"`
	AvatarURL      *string  `json:"avatar_url"`
	DistanceMeters *float64 `json:"distance_meters"`
}

// MatchService computes availability matches from point-in-time snapshots.
// Implementations must be pure: no caching, no mutation of inputs, identical
// snapshots yield identical ordered output.
type MatchService interface {
	// ListMatches returns all candidate (user, event) pairs, ordered by the
	// availability x event cross product (outer loop availabilities, inner
	// loop events). Fails as a whole if any source read fails.
	ListMatches(ctx context.Context) ([]*Match, error)
	// ListEventCandidates lists invitable users for one event: available users
	// whose window covers the current instant (a missing end is open-ended),
	// excluding current members.
	ListEventCandidates(ctx context.Context, eventID string) ([]*EventCandidate, error)
}
