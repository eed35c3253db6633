package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

type profileService struct {
	profileRepo    domain.UserProfileRepository
	contextTimeout time.Duration
}

func NewProfileService(profileRepo domain.UserProfileRepository, timeout time.Duration) domain.ProfileService {
	return &profileService{profileRepo: profileRepo, contextTimeout: timeout}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *profileService) UpsertProfile(ctx context.Context, p *domain.UserProfile) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if p == nil || p.ID == "" {
		return domain.ErrInvalidInput
	}
	p.UpdatedAt = time.Now()
	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
