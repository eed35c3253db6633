package postgres

import (
	"context"
	"database/sql"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

type announcementRepository struct {
	DB *sql.DB
}

func NewAnnouncementRepository(db *sql.DB) domain.AnnouncementRepository {
	return &announcementRepository{
		DB: db,
	}
}

func (r *announcementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	query := `
		INSERT INTO announcements (event_id, user_id, comment, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, a.EventID, a.UserID, a.Comment, a.CreatedAt).Scan(&a.ID)
}

func (r *announcementRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Announcement, error) {
	query := `
		SELECT id, event_id, user_id, comment, created_at
		FROM announcements
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	anns := make([]*domain.Announcement, 0)
	for rows.Next() {
		a := &domain.Announcement{}
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &a.Comment, &a.CreatedAt); err != nil {
			return nil, err
		}
		anns = append(anns, a)
	}
	return anns, rows.Err()
}
