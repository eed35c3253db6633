package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

type userProfileRepository struct {
	DB *sql.DB
}

func NewUserProfileRepository(db *sql.DB) domain.UserProfileRepository {
	return &userProfileRepository{
		DB: db,
	}
}

func scanProfile(row rowScanner) (*domain.UserProfile, error) {
	p := &domain.UserProfile{}
	var nickNull, avatarNull, emailNull sql.NullString
	err := row.Scan(&p.ID, &nickNull, &avatarNull, &emailNull, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if nickNull.Valid {
		p.Nickname = &nickNull.String
	}
	if avatarNull.Valid {
		p.AvatarURL = &avatarNull.String
	}
	if emailNull.Valid {
		p.Email = &emailNull.String
	}
	return p, nil
}

func (r *userProfileRepository) Upsert(ctx context.Context, p *domain.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, nickname, avatar_url, email, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			nickname = EXCLUDED.nickname,
			avatar_url = EXCLUDED.avatar_url,
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.Nickname, p.AvatarURL, p.Email, p.UpdatedAt)
	return err
}

func (r *userProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	query := `
		SELECT id, nickname, avatar_url, email, updated_at
		FROM user_profiles
		WHERE id = $1
	`
	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *userProfileRepository) ListAll(ctx context.Context) ([]*domain.UserProfile, error) {
	query := `
		SELECT id, nickname, avatar_url, email, updated_at
		FROM user_profiles
		ORDER BY id ASC
	`
	return r.queryProfiles(ctx, query)
}

func (r *userProfileRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.UserProfile, error) {
	if len(ids) == 0 {
		return []*domain.UserProfile{}, nil
	}
	query := `
		SELECT id, nickname, avatar_url, email, updated_at
		FROM user_profiles
		WHERE id = ANY($1)
		ORDER BY id ASC
	`
	return r.queryProfiles(ctx, query, pq.Array(ids))
}

func (r *userProfileRepository) queryProfiles(ctx context.Context, query string, args ...any) ([]*domain.UserProfile, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	profiles := make([]*domain.UserProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
