package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

type eventService struct {
	eventRepo        domain.EventRepository
	memberRepo       domain.EventMemberRepository
	profileRepo      domain.UserProfileRepository
	tagRepo          domain.EventTagRepository
	announcementRepo domain.AnnouncementRepository
	emailService     domain.EmailService
	changes          domain.ChangePublisher
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	memberRepo domain.EventMemberRepository,
	profileRepo domain.UserProfileRepository,
	tagRepo domain.EventTagRepository,
	announcementRepo domain.AnnouncementRepository,
	emailService domain.EmailService,
	changes domain.ChangePublisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		memberRepo:       memberRepo,
		profileRepo:      profileRepo,
		tagRepo:          tagRepo,
		announcementRepo: announcementRepo,
		emailService:     emailService,
		changes:          changes,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

// publish fans a row change out to subscribers. Fan-out is best-effort; a
// failed publish is logged and never fails the write that triggered it.
func (s *eventService) publish(ctx context.Context, table string, ct domain.ChangeType, row any) {
	if s.changes == nil {
		return
	}
	if err := s.changes.Publish(ctx, domain.ChangeEvent{Table: table, ChangeType: ct, Row: row}); err != nil {
		s.logger.WarnContext(ctx, "change publish failed", "table", table, "err", err)
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event, tags []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Name == "" || event.CreatedBy == "" || event.StartAt == nil {
		return domain.ErrInvalidInput
	}
	if event.EndAt != nil && !event.EndAt.After(*event.StartAt) {
		return domain.ErrInvalidInput
	}
	if event.Status == "" {
		event.Status = domain.EventStatusOpen
	}
	if event.Icon == "" {
		event.Icon = PickIconName(event.Name)
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	// The creator is the organizer; the membership row also removes them from
	// availability matching for their own event.
	organizer := &domain.EventMember{
		EventID:   event.ID,
		UserID:    event.CreatedBy,
		Role:      domain.RoleOrganizer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.memberRepo.Insert(ctx, organizer); err != nil && !errors.Is(err, domain.ErrAlreadyMember) {
		return fmt.Errorf("add organizer membership: %w", err)
	}

	if len(tags) > 0 {
		if _, err := s.tagRepo.Add(ctx, event.ID, normalizeTags(tags)); err != nil {
			return fmt.Errorf("add event tags: %w", err)
		}
	}

	s.publish(ctx, "events", domain.ChangeInsert, event)
	return nil
}

// normalizeTags trims and dedupes tags, dropping empties, preserving order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	tags, err := s.tagRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list event tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return event, tags, nil
}

func (s *eventService) ListUpcomingEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListUpcoming(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) ListOrganizerEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list organizer events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, callerID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.CreatedBy != callerID {
		return nil, domain.ErrForbidden
	}

	// Validate the merged window when the update leaves both bounds set.
	newStart := event.StartAt
	if upd.StartAt != nil {
		newStart = upd.StartAt
	}
	newEnd := event.EndAt
	if upd.EndAt != nil {
		newEnd = upd.EndAt
	}
	if newStart != nil && newEnd != nil && !newEnd.After(*newStart) {
		return nil, domain.ErrInvalidInput
	}
	if upd.Status != nil && *upd.Status != domain.EventStatusOpen && *upd.Status != domain.EventStatusApproval {
		return nil, domain.ErrInvalidInput
	}

	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.publish(ctx, "events", domain.ChangeUpdate, updated)
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.CreatedBy != callerID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.publish(ctx, "events", domain.ChangeDelete, map[string]string{"id": eventID})
	return nil
}

func (s *eventService) ListMembers(ctx context.Context, eventID string) ([]*domain.EventMemberWithProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	members, err := s.memberRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if len(members) == 0 {
		return []*domain.EventMemberWithProfile{}, nil
	}

	userIDs := make([]string, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	profiles, err := s.profileRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	profileByID := make(map[string]*domain.UserProfile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}

	out := make([]*domain.EventMemberWithProfile, 0, len(members))
	for _, m := range members {
		mp := &domain.EventMemberWithProfile{Member: m}
		if p, ok := profileByID[m.UserID]; ok {
			mp.Nickname = p.Nickname
			mp.AvatarURL = p.AvatarURL
		}
		out = append(out, mp)
	}
	return out, nil
}

// isEventHost reports whether the caller may manage members for the event.
func (s *eventService) isEventHost(ctx context.Context, event *domain.Event, callerID string) (bool, error) {
	if event.CreatedBy == callerID {
		return true, nil
	}
	m, err := s.memberRepo.GetByEventAndUser(ctx, event.ID, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get membership: %w", err)
	}
	return m.Role == domain.RoleOrganizer || m.Role == domain.RoleCohost, nil
}

func (s *eventService) InviteUsers(ctx context.Context, eventID, callerID string, userIDs []string) (int, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil, domain.ErrNotFound
		}
		return 0, nil, fmt.Errorf("get event: %w", err)
	}
	host, err := s.isEventHost(ctx, event, callerID)
	if err != nil {
		return 0, nil, err
	}
	if !host {
		return 0, nil, domain.ErrForbidden
	}

	inviterName := callerID
	if p, err := s.profileRepo.GetByID(ctx, callerID); err == nil && p.Nickname != nil && *p.Nickname != "" {
		inviterName = *p.Nickname
	}

	invited := 0
	var failed []string
	for _, userID := range userIDs {
		userID = strings.TrimSpace(userID)
		if userID == "" {
			continue
		}
		now := time.Now()
		member := &domain.EventMember{
			EventID:   eventID,
			UserID:    userID,
			Role:      domain.RoleInvited,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.memberRepo.Insert(ctx, member); err != nil {
			failed = append(failed, userID)
			continue
		}
		invited++
		s.publish(ctx, "event_members", domain.ChangeInsert, member)
		s.notifyInvitee(ctx, event, userID, inviterName)
	}
	return invited, failed, nil
}

// notifyInvitee sends the invite email when the invited user has an email on
// file. Email failures are logged, never propagated: the invite row is the
// source of truth.
func (s *eventService) notifyInvitee(ctx context.Context, event *domain.Event, userID, inviterName string) {
	if s.emailService == nil {
		return
	}
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil || profile.Email == nil || *profile.Email == "" {
		return
	}
	nickname := ""
	if profile.Nickname != nil {
		nickname = *profile.Nickname
	}
	when := ""
	if event.StartAt != nil {
		when = event.StartAt.Format("2006/01/02 15:04")
	}
	where := ""
	if event.Location != nil {
		where = *event.Location
	}
	data := &domain.EventInviteEmailData{
		Email:       *profile.Email,
		Nickname:    nickname,
		EventName:   event.Name,
		EventWhen:   when,
		EventWhere:  where,
		InviterName: inviterName,
	}
	if err := s.emailService.SendEventInvite(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "invite email failed", "event_id", event.ID, "user_id", userID, "err", err)
	}
}

func (s *eventService) RespondToInvitation(ctx context.Context, eventID, userID string, accept bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	member, err := s.memberRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotMember
		}
		return fmt.Errorf("get membership: %w", err)
	}
	if member.Role != domain.RoleInvited {
		return domain.ErrInvalidInput
	}

	if accept {
		if err := s.memberRepo.UpdateRole(ctx, eventID, userID, domain.RoleParticipant); err != nil {
			return fmt.Errorf("accept invitation: %w", err)
		}
		member.Role = domain.RoleParticipant
		s.publish(ctx, "event_members", domain.ChangeUpdate, member)
		return nil
	}
	if err := s.memberRepo.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("decline invitation: %w", err)
	}
	s.publish(ctx, "event_members", domain.ChangeDelete, map[string]string{"event_id": eventID, "user_id": userID})
	return nil
}

func (s *eventService) ChangeMemberRole(ctx context.Context, eventID, targetUserID, callerID string, role domain.MemberRole) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !role.Valid() || role == domain.RoleInvited {
		return domain.ErrInvalidInput
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.CreatedBy != callerID {
		return domain.ErrForbidden
	}
	if err := s.memberRepo.UpdateRole(ctx, eventID, targetUserID, role); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotMember
		}
		return fmt.Errorf("update member role: %w", err)
	}
	s.publish(ctx, "event_members", domain.ChangeUpdate, map[string]string{
		"event_id": eventID, "user_id": targetUserID, "role": string(role),
	})
	return nil
}

func (s *eventService) RemoveMember(ctx context.Context, eventID, targetUserID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.CreatedBy != callerID && targetUserID != callerID {
		return domain.ErrForbidden
	}
	if targetUserID == event.CreatedBy {
		return domain.ErrInvalidInput
	}
	if err := s.memberRepo.Delete(ctx, eventID, targetUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotMember
		}
		return fmt.Errorf("remove member: %w", err)
	}
	s.publish(ctx, "event_members", domain.ChangeDelete, map[string]string{"event_id": eventID, "user_id": targetUserID})
	return nil
}

func (s *eventService) ListUserEvents(ctx context.Context, userID string) ([]*domain.MembershipWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	memberships, err := s.memberRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if len(memberships) == 0 {
		return []*domain.MembershipWithEvent{}, nil
	}

	// Fetch events one by one. N+1, but booking lists are small.
	eventsByID := make(map[string]*domain.Event)
	out := make([]*domain.MembershipWithEvent, 0, len(memberships))
	for _, m := range memberships {
		ev, ok := eventsByID[m.EventID]
		if !ok {
			ev, err = s.eventRepo.GetByID(ctx, m.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Event deleted but membership remains; skip the entry.
					continue
				}
				return nil, fmt.Errorf("get event: %w", err)
			}
			eventsByID[m.EventID] = ev
		}
		out = append(out, &domain.MembershipWithEvent{Member: m, Event: ev})
	}
	return out, nil
}

func (s *eventService) CreateAnnouncement(ctx context.Context, eventID, userID, comment string) (*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, domain.ErrInvalidInput
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.CreatedBy != userID {
		if _, err := s.memberRepo.GetByEventAndUser(ctx, eventID, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrForbidden
			}
			return nil, fmt.Errorf("get membership: %w", err)
		}
	}

	ann := &domain.Announcement{
		EventID:   eventID,
		UserID:    userID,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.announcementRepo.Create(ctx, ann); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	s.publish(ctx, "announcements", domain.ChangeInsert, ann)
	return ann, nil
}

func (s *eventService) ListAnnouncements(ctx context.Context, eventID string) ([]*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	anns, err := s.announcementRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	if anns == nil {
		anns = []*domain.Announcement{}
	}
	return anns, nil
}
