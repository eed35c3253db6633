package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

type availabilityRepository struct {
	DB *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) domain.AvailabilityRepository {
	return &availabilityRepository{
		DB: db,
	}
}

func scanAvailability(row rowScanner) (*domain.UserAvailability, error) {
	a := &domain.UserAvailability{}
	var startNull, endNull sql.NullTime
	var latNull, lngNull sql.NullFloat64
	err := row.Scan(&a.UserID, &a.Status, &startNull, &endNull, &latNull, &lngNull, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if startNull.Valid {
		a.StartAt = &startNull.Time
	}
	if endNull.Valid {
		a.EndAt = &endNull.Time
	}
	if latNull.Valid {
		a.Latitude = &latNull.Float64
	}
	if lngNull.Valid {
		a.Longitude = &lngNull.Float64
	}
	return a, nil
}

func (r *availabilityRepository) Upsert(ctx context.Context, a *domain.UserAvailability) error {
	query := `
		INSERT INTO user_statuses (user_id, status, start_at, end_at, latitude, longitude, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			status = EXCLUDED.status,
			start_at = EXCLUDED.start_at,
			end_at = EXCLUDED.end_at,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, a.UserID, a.Status, a.StartAt, a.EndAt, a.Latitude, a.Longitude, a.UpdatedAt)
	return err
}

func (r *availabilityRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserAvailability, error) {
	query := `
		SELECT user_id, status, start_at, end_at, latitude, longitude, updated_at
		FROM user_statuses
		WHERE user_id = $1
	`
	a, err := scanAvailability(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *availabilityRepository) ListActive(ctx context.Context, ref time.Time) ([]*domain.UserAvailability, error) {
	query := `
		SELECT user_id, status, start_at, end_at, latitude, longitude, updated_at
		FROM user_statuses
		WHERE end_at IS NULL OR end_at >= $1
		ORDER BY updated_at ASC, user_id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, ref)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	avails := make([]*domain.UserAvailability, 0)
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, err
		}
		avails = append(avails, a)
	}
	return avails, rows.Err()
}

func (r *availabilityRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM user_statuses WHERE user_id = $1`
	result, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
