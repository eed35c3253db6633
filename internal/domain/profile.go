package domain

import (
	"context"
	"time"
)

// UserProfile holds display fields for a user. The ID equals the auth user ID.
// Profiles are optional everywhere: a missing row means null decoration, never
// an exclusion.
// swagger:model UserProfile
type UserProfile struct {
	ID        string    `json:"id"`
	Nickname  *string   `json:"nickname"`
	AvatarURL *string   `json:"avatar_url"`
	Email     *string   `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserProfileRepository defines storage operations for user profiles.
type UserProfileRepository interface {
	Upsert(ctx context.Context, p *UserProfile) error
	GetByID(ctx context.Context, id string) (*UserProfile, error)
	ListAll(ctx context.Context) ([]*UserProfile, error)
	ListByIDs(ctx context.Context, ids []string) ([]*UserProfile, error)
}

// ProfileService defines profile read/write operations for the current user.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	UpsertProfile(ctx context.Context, p *UserProfile) error
}
