package domain

import (
	"context"
	"time"
)

// Announcement is a short message an event member posts to the event feed.
// swagger:model Announcement
type Announcement struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// AnnouncementRepository defines storage operations for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *Announcement) error
	ListByEventID(ctx context.Context, eventID string) ([]*Announcement, error)
}
