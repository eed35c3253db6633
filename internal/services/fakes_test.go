package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"
)

// In-memory repository fakes shared by the service tests.

type fakeEventRepo struct {
	byID    map[string]*domain.Event
	nextID  int
	err     error // if set, every method returns this error
	listErr error // if set, ListUpcoming returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) add(e *domain.Event) *domain.Event {
	if e.ID == "" {
		e.ID = fmt.Sprintf("ev-%d", f.nextID)
		f.nextID++
	}
	f.byID[e.ID] = e
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.add(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, ref time.Time) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.StartAt != nil && !e.StartAt.Before(ref) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartAt.Equal(*out[j].StartAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartAt.Before(*out[j].StartAt)
	})
	return out, nil
}

func (f *fakeEventRepo) ListByCreator(ctx context.Context, userID string) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.CreatedBy == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		e.Name = *upd.Name
	}
	if upd.Description != nil {
		e.Description = upd.Description
	}
	if upd.Location != nil {
		e.Location = upd.Location
	}
	if upd.StartAt != nil {
		e.StartAt = upd.StartAt
	}
	if upd.EndAt != nil {
		e.EndAt = upd.EndAt
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	if upd.Latitude != nil {
		e.Latitude = upd.Latitude
	}
	if upd.Longitude != nil {
		e.Longitude = upd.Longitude
	}
	if upd.Icon != nil {
		e.Icon = *upd.Icon
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeAvailabilityRepo struct {
	byUserID map[string]*domain.UserAvailability
	order    []string // insertion order, preserved by ListActive
	err      error
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{byUserID: make(map[string]*domain.UserAvailability)}
}

func (f *fakeAvailabilityRepo) Upsert(ctx context.Context, a *domain.UserAvailability) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byUserID[a.UserID]; !ok {
		f.order = append(f.order, a.UserID)
	}
	f.byUserID[a.UserID] = a
	return nil
}

func (f *fakeAvailabilityRepo) GetByUserID(ctx context.Context, userID string) (*domain.UserAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	if a, ok := f.byUserID[userID]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAvailabilityRepo) ListActive(ctx context.Context, ref time.Time) ([]*domain.UserAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.UserAvailability
	for _, id := range f.order {
		a := f.byUserID[id]
		if a.EndAt == nil || !a.EndAt.Before(ref) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) Delete(ctx context.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byUserID[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byUserID, userID)
	for i, id := range f.order {
		if id == userID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeProfileRepo struct {
	byID map[string]*domain.UserProfile
	err  error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byID: make(map[string]*domain.UserProfile)}
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	if f.err != nil {
		return f.err
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) ListAll(ctx context.Context) ([]*domain.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.UserProfile, 0, len(f.byID))
	for _, p := range f.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProfileRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.UserProfile
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeMemberRepo struct {
	members []*domain.EventMember
	nextID  int
	err     error
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{nextID: 1}
}

func (f *fakeMemberRepo) Insert(ctx context.Context, m *domain.EventMember) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.members {
		if existing.EventID == m.EventID && existing.UserID == m.UserID {
			return domain.ErrAlreadyMember
		}
	}
	m.ID = fmt.Sprintf("mem-%d", f.nextID)
	f.nextID++
	f.members = append(f.members, m)
	return nil
}

func (f *fakeMemberRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.members {
		if m.EventID == eventID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMemberRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.EventMember
	for _, m := range f.members {
		if m.EventID == eventID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) ListByEventIDs(ctx context.Context, eventIDs []string) ([]*domain.EventMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		want[id] = struct{}{}
	}
	var out []*domain.EventMember
	for _, m := range f.members {
		if _, ok := want[m.EventID]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.EventMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.EventMember
	for _, m := range f.members {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) UpdateRole(ctx context.Context, eventID, userID string, role domain.MemberRole) error {
	if f.err != nil {
		return f.err
	}
	for _, m := range f.members {
		if m.EventID == eventID && m.UserID == userID {
			m.Role = role
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeMemberRepo) Delete(ctx context.Context, eventID, userID string) error {
	if f.err != nil {
		return f.err
	}
	for i, m := range f.members {
		if m.EventID == eventID && m.UserID == userID {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeTagRepo struct {
	byEventID map[string][]string
	err       error
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{byEventID: make(map[string][]string)}
}

func (f *fakeTagRepo) Add(ctx context.Context, eventID string, tags []string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	existing := make(map[string]struct{})
	for _, t := range f.byEventID[eventID] {
		existing[t] = struct{}{}
	}
	added := 0
	for _, t := range tags {
		if _, ok := existing[t]; ok {
			continue
		}
		f.byEventID[eventID] = append(f.byEventID[eventID], t)
		existing[t] = struct{}{}
		added++
	}
	return added, nil
}

func (f *fakeTagRepo) ListByEventID(ctx context.Context, eventID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byEventID[eventID], nil
}

type fakeAnnouncementRepo struct {
	byEventID map[string][]*domain.Announcement
	nextID    int
	err       error
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{byEventID: make(map[string][]*domain.Announcement), nextID: 1}
}

func (f *fakeAnnouncementRepo) Create(ctx context.Context, a *domain.Announcement) error {
	if f.err != nil {
		return f.err
	}
	a.ID = fmt.Sprintf("ann-%d", f.nextID)
	f.nextID++
	f.byEventID[a.EventID] = append(f.byEventID[a.EventID], a)
	return nil
}

func (f *fakeAnnouncementRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Announcement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byEventID[eventID], nil
}

// fakeEmailService records invite emails instead of sending them.
type fakeEmailService struct {
	sent []*domain.EventInviteEmailData
	err  error
}

func (f *fakeEmailService) SendEventInvite(ctx context.Context, data *domain.EventInviteEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeChangePublisher records published change events.
type fakeChangePublisher struct {
	events []domain.ChangeEvent
	err    error
}

func (f *fakeChangePublisher) Publish(ctx context.Context, ev domain.ChangeEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}
