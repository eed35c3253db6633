package domain

import (
	"context"
	"time"
)

// UserAvailability is a user's declared free window ("I'm available now-ish,
// invite me to something"). One row per user. Rows missing either timestamp
// are excluded from matching but kept in storage as-is.
// swagger:model UserAvailability
type UserAvailability struct {
	UserID    string     `json:"user_id"`
	Status    string     `json:"status"`
	StartAt   *time.Time `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// StatusAvailable is the only status value currently written by the app.
const StatusAvailable = "available"

// HasWindow reports whether the availability carries both timestamps required for matching.
func (a *UserAvailability) HasWindow() bool {
	return a != nil && a.StartAt != nil && a.EndAt != nil
}

// AvailabilityRepository defines storage operations for availability windows.
type AvailabilityRepository interface {
	// Upsert inserts or replaces the user's availability row.
	Upsert(ctx context.Context, a *UserAvailability) error
	GetByUserID(ctx context.Context, userID string) (*UserAvailability, error)
	// ListActive returns availability rows with end_at >= ref.
	ListActive(ctx context.Context, ref time.Time) ([]*UserAvailability, error)
	Delete(ctx context.Context, userID string) error
}

// AvailabilityService defines user-facing availability operations.
type AvailabilityService interface {
	// SetAvailable marks the user available for the given window. A zero endAt
	// defaults to startAt plus two hours, matching the mobile client.
	SetAvailable(ctx context.Context, userID string, startAt, endAt time.Time, lat, lng *float64) (*UserAvailability, error)
	GetStatus(ctx context.Context, userID string) (*UserAvailability, error)
	ClearStatus(ctx context.Context, userID string) error
}
