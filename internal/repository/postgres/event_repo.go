package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

const eventColumns = "id, name, description, location, start_at, end_at, status, latitude, longitude, icon, created_by, created_at, updated_at"

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, locNull sql.NullString
	var startNull, endNull sql.NullTime
	var latNull, lngNull sql.NullFloat64
	err := row.Scan(
		&e.ID, &e.Name, &descNull, &locNull, &startNull, &endNull, &e.Status,
		&latNull, &lngNull, &e.Icon, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if locNull.Valid {
		e.Location = &locNull.String
	}
	if startNull.Valid {
		e.StartAt = &startNull.Time
	}
	if endNull.Valid {
		e.EndAt = &endNull.Time
	}
	if latNull.Valid {
		e.Latitude = &latNull.Float64
	}
	if lngNull.Valid {
		e.Longitude = &lngNull.Float64
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, location, start_at, end_at, status, latitude, longitude, icon, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.Location, e.StartAt, e.EndAt, e.Status,
		e.Latitude, e.Longitude, e.Icon, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, ref time.Time) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE start_at IS NULL OR end_at IS NULL OR end_at >= $1
		ORDER BY start_at ASC NULLS LAST, id ASC
	`, eventColumns)
	return r.queryEvents(ctx, query, ref)
}

func (r *eventRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE created_by = $1
		ORDER BY created_at DESC
	`, eventColumns)
	return r.queryEvents(ctx, query, userID)
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *upd.Name)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *upd.Location)
		n++
	}
	if upd.StartAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_at = $%d", n))
		args = append(args, *upd.StartAt)
		n++
	}
	if upd.EndAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_at = $%d", n))
		args = append(args, *upd.EndAt)
		n++
	}
	if upd.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", n))
		args = append(args, string(*upd.Status))
		n++
	}
	if upd.Latitude != nil {
		setClauses = append(setClauses, fmt.Sprintf("latitude = $%d", n))
		args = append(args, *upd.Latitude)
		n++
	}
	if upd.Longitude != nil {
		setClauses = append(setClauses, fmt.Sprintf("longitude = $%d", n))
		args = append(args, *upd.Longitude)
		n++
	}
	if upd.Icon != nil {
		setClauses = append(setClauses, fmt.Sprintf("icon = $%d", n))
		args = append(args, *upd.Icon)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, eventID)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
