package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

type matchService struct {
	eventRepo      domain.EventRepository
	availRepo      domain.AvailabilityRepository
	profileRepo    domain.UserProfileRepository
	memberRepo     domain.EventMemberRepository
	now            func() time.Time
	contextTimeout time.Duration
}

// NewMatchService creates a MatchService over the given repositories.
// now is the clock used for snapshot cutoffs; pass time.Now in production.
func NewMatchService(
	eventRepo domain.EventRepository,
	availRepo domain.AvailabilityRepository,
	profileRepo domain.UserProfileRepository,
	memberRepo domain.EventMemberRepository,
	now func() time.Time,
	timeout time.Duration,
) domain.MatchService {
	if now == nil {
		now = time.Now
	}
	return &matchService{
		eventRepo:      eventRepo,
		availRepo:      availRepo,
		profileRepo:    profileRepo,
		memberRepo:     memberRepo,
		now:            now,
		contextTimeout: timeout,
	}
}

// windowContains reports whether the availability window strictly contains the
// event window: starts strictly before and ends strictly after. Both sides
// must carry both timestamps; callers filter those out first.
func windowContains(avail *domain.UserAvailability, event *domain.Event) bool {
	return avail.StartAt.Before(*event.StartAt) && avail.EndAt.After(*event.EndAt)
}

// coversAt reports whether the availability window covers the instant ref:
// started at or before ref and not yet ended. A nil end is open-ended.
func coversAt(avail *domain.UserAvailability, ref time.Time) bool {
	if avail.StartAt == nil || avail.StartAt.After(ref) {
		return false
	}
	return avail.EndAt == nil || !avail.EndAt.Before(ref)
}

// memberKey identifies a (event, user) pair in the exclusion index.
type memberKey struct {
	eventID string
	userID  string
}

// buildExclusionIndex collects the (event, user) pairs whose membership role
// excludes them from matching. Roles outside the explicit exclusion set are
// deliberately ignored.
func buildExclusionIndex(members []*domain.EventMember) map[memberKey]struct{} {
	idx := make(map[memberKey]struct{}, len(members))
	for _, m := range members {
		if m.Role.ExcludesFromMatching() {
			idx[memberKey{eventID: m.EventID, userID: m.UserID}] = struct{}{}
		}
	}
	return idx
}

func (s *matchService) ListMatches(ctx context.Context) ([]*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ref := s.now()

	events, err := s.eventRepo.ListUpcoming(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	avails, err := s.availRepo.ListActive(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list active availabilities: %w", err)
	}
	profiles, err := s.profileRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	// Rows missing either timestamp never match; drop them up front.
	retainedEvents := events[:0:0]
	for _, e := range events {
		if e.HasWindow() {
			retainedEvents = append(retainedEvents, e)
		}
	}
	retainedAvails := avails[:0:0]
	for _, a := range avails {
		if a.HasWindow() {
			retainedAvails = append(retainedAvails, a)
		}
	}

	eventIDs := make([]string, 0, len(retainedEvents))
	for _, e := range retainedEvents {
		eventIDs = append(eventIDs, e.ID)
	}
	var members []*domain.EventMember
	if len(eventIDs) > 0 {
		members, err = s.memberRepo.ListByEventIDs(ctx, eventIDs)
		if err != nil {
			return nil, fmt.Errorf("list memberships: %w", err)
		}
	}

	excluded := buildExclusionIndex(members)
	profileByID := make(map[string]*domain.UserProfile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}

	// Nested-loop join over the cross product. Output order is the iteration
	// order: outer availabilities, inner events.
	matches := make([]*domain.Match, 0)
	for _, avail := range retainedAvails {
		for _, event := range retainedEvents {
			if !windowContains(avail, event) {
				continue
			}
			if _, skip := excluded[memberKey{eventID: event.ID, userID: avail.UserID}]; skip {
				continue
			}
			cand := &domain.MatchCandidate{Availability: avail}
			if p, ok := profileByID[avail.UserID]; ok {
				cand.Nickname = p.Nickname
				cand.AvatarURL = p.AvatarURL
			}
			matches = append(matches, &domain.Match{User: cand, Event: event})
		}
	}
	return matches, nil
}

func (s *matchService) ListEventCandidates(ctx context.Context, eventID string) ([]*domain.EventCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	ref := s.now()
	avails, err := s.availRepo.ListActive(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list active availabilities: %w", err)
	}
	members, err := s.memberRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	excluded := buildExclusionIndex(members)

	eligible := make([]*domain.UserAvailability, 0, len(avails))
	userIDs := make([]string, 0, len(avails))
	for _, a := range avails {
		if !coversAt(a, ref) {
			continue
		}
		if _, skip := excluded[memberKey{eventID: event.ID, userID: a.UserID}]; skip {
			continue
		}
		eligible = append(eligible, a)
		userIDs = append(userIDs, a.UserID)
	}
	if len(eligible) == 0 {
		return []*domain.EventCandidate{}, nil
	}

	profiles, err := s.profileRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	profileByID := make(map[string]*domain.UserProfile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}

	candidates := make([]*domain.EventCandidate, 0, len(eligible))
	for _, a := range eligible {
		c := &domain.EventCandidate{UserID: a.UserID}
		if p, ok := profileByID[a.UserID]; ok {
			c.Nickname = p.Nickname
			c.AvatarURL = p.AvatarURL
		}
		if event.Latitude != nil && event.Longitude != nil && a.Latitude != nil && a.Longitude != nil {
			d := DistanceMeters(*a.Latitude, *a.Longitude, *event.Latitude, *event.Longitude)
			c.DistanceMeters = &d
		}
		candidates = append(candidates, c)
	}

	// Nearest first; candidates without coordinates sort last, then by user ID
	// for a stable order.
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].DistanceMeters, candidates[j].DistanceMeters
		switch {
		case di != nil && dj != nil && *di != *dj:
			return *di < *dj
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		}
		return candidates[i].UserID < candidates[j].UserID
	})
	return candidates, nil
}
