package postgres

import (
	"context"
	"database/sql"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

type eventTagRepository struct {
	DB *sql.DB
}

func NewEventTagRepository(db *sql.DB) domain.EventTagRepository {
	return &eventTagRepository{
		DB: db,
	}
}

func (r *eventTagRepository) Add(ctx context.Context, eventID string, tags []string) (int, error) {
	if len(tags) == 0 {
		return 0, nil
	}
	query := `
		INSERT INTO event_tags (event_id, tag)
		VALUES ($1, $2)
		ON CONFLICT (event_id, tag) DO NOTHING
	`
	added := 0
	for _, tag := range tags {
		result, err := r.DB.ExecContext(ctx, query, eventID, tag)
		if err != nil {
			return added, err
		}
		if rows, _ := result.RowsAffected(); rows > 0 {
			added++
		}
	}
	return added, nil
}

func (r *eventTagRepository) ListByEventID(ctx context.Context, eventID string) ([]string, error) {
	query := `
		SELECT tag FROM event_tags
		WHERE event_id = $1
		ORDER BY tag ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tags := make([]string, 0)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
