package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

// defaultAvailabilityWindow is used when the client omits an end time.
const defaultAvailabilityWindow = 2 * time.Hour

type availabilityService struct {
	availabilityRepo domain.AvailabilityRepository
	changes          domain.ChangePublisher
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewAvailabilityService(
	availabilityRepo domain.AvailabilityRepository,
	changes domain.ChangePublisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AvailabilityService {
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		changes:          changes,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *availabilityService) publish(ctx context.Context, ct domain.ChangeType, row any) {
	if s.changes == nil {
		return
	}
	if err := s.changes.Publish(ctx, domain.ChangeEvent{Table: "user_statuses", ChangeType: ct, Row: row}); err != nil {
		s.logger.WarnContext(ctx, "change publish failed", "table", "user_statuses", "err", err)
	}
}

func (s *availabilityService) SetAvailable(ctx context.Context, userID string, startAt, endAt time.Time, lat, lng *float64) (*domain.UserAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" || startAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if endAt.IsZero() {
		endAt = startAt.Add(defaultAvailabilityWindow)
	}
	if !endAt.After(startAt) {
		return nil, domain.ErrInvalidInput
	}
	if (lat == nil) != (lng == nil) {
		return nil, domain.ErrInvalidInput
	}

	avail := &domain.UserAvailability{
		UserID:    userID,
		Status:    domain.StatusAvailable,
		StartAt:   &startAt,
		EndAt:     &endAt,
		Latitude:  lat,
		Longitude: lng,
		UpdatedAt: time.Now(),
	}
	if err := s.availabilityRepo.Upsert(ctx, avail); err != nil {
		return nil, fmt.Errorf("upsert availability: %w", err)
	}
	s.publish(ctx, domain.ChangeUpdate, avail)
	return avail, nil
}

func (s *availabilityService) GetStatus(ctx context.Context, userID string) (*domain.UserAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	avail, err := s.availabilityRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get availability: %w", err)
	}
	return avail, nil
}

func (s *availabilityService) ClearStatus(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.availabilityRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Clearing an absent status is a no-op.
			return nil
		}
		return fmt.Errorf("delete availability: %w", err)
	}
	s.publish(ctx, domain.ChangeDelete, map[string]string{"user_id": userID})
	return nil
}
