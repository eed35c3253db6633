package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

type eventMemberRepository struct {
	DB *sql.DB
}

func NewEventMemberRepository(db *sql.DB) domain.EventMemberRepository {
	return &eventMemberRepository{
		DB: db,
	}
}

func (r *eventMemberRepository) Insert(ctx context.Context, m *domain.EventMember) error {
	query := `
		INSERT INTO event_members (event_id, user_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, m.EventID, m.UserID, m.Role, m.CreatedAt, m.UpdatedAt).Scan(&m.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *eventMemberRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventMember, error) {
	query := `
		SELECT id, event_id, user_id, role, created_at, updated_at
		FROM event_members
		WHERE event_id = $1 AND user_id = $2
	`
	m := &domain.EventMember{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(
		&m.ID, &m.EventID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *eventMemberRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventMember, error) {
	query := `
		SELECT id, event_id, user_id, role, created_at, updated_at
		FROM event_members
		WHERE event_id = $1
		ORDER BY created_at ASC, id ASC
	`
	return r.queryMembers(ctx, query, eventID)
}

func (r *eventMemberRepository) ListByEventIDs(ctx context.Context, eventIDs []string) ([]*domain.EventMember, error) {
	if len(eventIDs) == 0 {
		return []*domain.EventMember{}, nil
	}
	query := `
		SELECT id, event_id, user_id, role, created_at, updated_at
		FROM event_members
		WHERE event_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`
	return r.queryMembers(ctx, query, pq.Array(eventIDs))
}

func (r *eventMemberRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EventMember, error) {
	query := `
		SELECT id, event_id, user_id, role, created_at, updated_at
		FROM event_members
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.queryMembers(ctx, query, userID)
}

func (r *eventMemberRepository) queryMembers(ctx context.Context, query string, args ...any) ([]*domain.EventMember, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make([]*domain.EventMember, 0)
	for rows.Next() {
		m := &domain.EventMember{}
		if err := rows.Scan(&m.ID, &m.EventID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *eventMemberRepository) UpdateRole(ctx context.Context, eventID, userID string, role domain.MemberRole) error {
	query := `
		UPDATE event_members
		SET role = $1, updated_at = NOW()
		WHERE event_id = $2 AND user_id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, role, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventMemberRepository) Delete(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM event_members WHERE event_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
