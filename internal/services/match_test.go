package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return &parsed
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

type matchFixture struct {
	events   *fakeEventRepo
	avails   *fakeAvailabilityRepo
	profiles *fakeProfileRepo
	members  *fakeMemberRepo
	svc      domain.MatchService
}

func newMatchFixture(t *testing.T, now string) *matchFixture {
	t.Helper()
	ref := *ts(t, now)
	f := &matchFixture{
		events:   newFakeEventRepo(),
		avails:   newFakeAvailabilityRepo(),
		profiles: newFakeProfileRepo(),
		members:  newFakeMemberRepo(),
	}
	f.svc = NewMatchService(f.events, f.avails, f.profiles, f.members, func() time.Time { return ref }, 5*time.Second)
	return f
}

func (f *matchFixture) addEvent(id, name string, start, end *time.Time) *domain.Event {
	e := &domain.Event{ID: id, Name: name, StartAt: start, EndAt: end, Status: domain.EventStatusOpen, CreatedBy: "organizer-1"}
	f.events.add(e)
	return e
}

func (f *matchFixture) addAvailability(userID string, start, end *time.Time) *domain.UserAvailability {
	a := &domain.UserAvailability{UserID: userID, Status: domain.StatusAvailable, StartAt: start, EndAt: end}
	_ = f.avails.Upsert(context.Background(), a)
	return a
}

func TestMatchService_ContainmentBoundaries(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		availStart string
		availEnd   string
		wantMatch  bool
	}{
		{name: "equal start fails strict containment", availStart: "2025-01-10T10:00:00Z", availEnd: "2025-01-10T12:00:00Z", wantMatch: false},
		{name: "equal end fails strict containment", availStart: "2025-01-10T09:00:00Z", availEnd: "2025-01-10T11:00:00Z", wantMatch: false},
		{name: "strictly wider window matches", availStart: "2025-01-10T09:59:00Z", availEnd: "2025-01-10T12:01:00Z", wantMatch: true},
		{name: "window inside event fails", availStart: "2025-01-10T10:15:00Z", availEnd: "2025-01-10T10:45:00Z", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(t, "2025-01-10T08:00:00Z")
			f.addEvent("ev-1", "Board games", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T11:00:00Z"))
			f.addAvailability("u1", ts(t, tt.availStart), ts(t, tt.availEnd))

			matches, err := f.svc.ListMatches(ctx)
			require.NoError(t, err)
			if tt.wantMatch {
				require.Len(t, matches, 1)
				assert.Equal(t, "u1", matches[0].User.Availability.UserID)
				assert.Equal(t, "ev-1", matches[0].Event.ID)
			} else {
				assert.Empty(t, matches)
			}
		})
	}
}

func TestMatchService_MembershipExclusion(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		role      domain.MemberRole
		wantMatch bool
	}{
		{name: "participant excluded", role: domain.RoleParticipant, wantMatch: false},
		{name: "organizer excluded", role: domain.RoleOrganizer, wantMatch: false},
		{name: "invited excluded", role: domain.RoleInvited, wantMatch: false},
		{name: "cohost excluded", role: domain.RoleCohost, wantMatch: false},
		// The exclusion set is an explicit enumeration. An unknown role does
		// not exclude; this pins the documented behavior.
		{name: "unlisted role still matches", role: domain.MemberRole("waitlisted"), wantMatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(t, "2025-01-10T08:00:00Z")
			f.addEvent("ev-1", "Karaoke", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T11:00:00Z"))
			f.addAvailability("u1", ts(t, "2025-01-10T09:00:00Z"), ts(t, "2025-01-10T13:00:00Z"))
			require.NoError(t, f.members.Insert(ctx, &domain.EventMember{EventID: "ev-1", UserID: "u1", Role: tt.role}))

			matches, err := f.svc.ListMatches(ctx)
			require.NoError(t, err)
			if tt.wantMatch {
				require.Len(t, matches, 1)
			} else {
				assert.Empty(t, matches)
			}
		})
	}
}

func TestMatchService_MissingTimestampsExcluded(t *testing.T) {
	ctx := context.Background()
	f := newMatchFixture(t, "2025-01-10T08:00:00Z")

	// Event without end_at can never match, regardless of the window offered.
	f.addEvent("ev-open-ended", "Draft event", ts(t, "2025-01-10T10:00:00Z"), nil)
	f.addAvailability("u1", ts(t, "2025-01-01T00:00:00Z"), ts(t, "2025-12-31T00:00:00Z"))

	matches, err := f.svc.ListMatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)

	// Availability without start_at is likewise dropped, not an error.
	f.addEvent("ev-2", "Real event", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T11:00:00Z"))
	f.addAvailability("u2", nil, ts(t, "2025-12-31T00:00:00Z"))

	matches, err = f.svc.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "u1", matches[0].User.Availability.UserID)
	assert.Equal(t, "ev-2", matches[0].Event.ID)
}

func TestMatchService_ProfileDecorationIndependence(t *testing.T) {
	ctx := context.Background()
	f := newMatchFixture(t, "2025-01-10T08:00:00Z")
	f.addEvent("ev-1", "Coffee", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T11:00:00Z"))
	f.addAvailability("u1", ts(t, "2025-01-10T09:00:00Z"), ts(t, "2025-01-10T13:00:00Z"))
	require.NoError(t, f.profiles.Upsert(ctx, &domain.UserProfile{ID: "u1", Nickname: strPtr("Alice"), AvatarURL: strPtr("https://img.example/a.png")}))

	matches, err := f.svc.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.NotNil(t, matches[0].User.Nickname)
	assert.Equal(t, "Alice", *matches[0].User.Nickname)

	// Removing the profile only nulls the decoration; the pair still matches.
	delete(f.profiles.byID, "u1")
	matches, err = f.svc.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Nil(t, matches[0].User.Nickname)
	assert.Nil(t, matches[0].User.AvatarURL)
}

func TestMatchService_OutputOrderAndPurity(t *testing.T) {
	ctx := context.Background()
	f := newMatchFixture(t, "2025-01-10T08:00:00Z")
	f.addEvent("ev-1", "Morning", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T11:00:00Z"))
	f.addEvent("ev-2", "Noon", ts(t, "2025-01-10T12:00:00Z"), ts(t, "2025-01-10T13:00:00Z"))
	f.addAvailability("u1", ts(t, "2025-01-10T09:00:00Z"), ts(t, "2025-01-10T14:00:00Z"))
	f.addAvailability("u2", ts(t, "2025-01-10T09:30:00Z"), ts(t, "2025-01-10T14:30:00Z"))

	first, err := f.svc.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, first, 4)

	// Outer loop availabilities, inner loop events.
	var got [][2]string
	for _, m := range first {
		got = append(got, [2]string{m.User.Availability.UserID, m.Event.ID})
	}
	assert.Equal(t, [][2]string{
		{"u1", "ev-1"}, {"u1", "ev-2"},
		{"u2", "ev-1"}, {"u2", "ev-2"},
	}, got)

	// Identical snapshots yield identical, order-preserving output.
	second, err := f.svc.ListMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMatchService_EndToEndScenario(t *testing.T) {
	ctx := context.Background()
	f := newMatchFixture(t, "2025-01-10T08:00:00Z")
	f.addEvent("E1", "Meetup", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T12:00:00Z"))
	f.addAvailability("u1", ts(t, "2025-01-10T09:00:00Z"), ts(t, "2025-01-10T13:00:00Z"))
	f.addAvailability("u2", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T11:30:00Z"))
	require.NoError(t, f.profiles.Upsert(ctx, &domain.UserProfile{ID: "u1", Nickname: strPtr("Alice")}))

	matches, err := f.svc.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "u1", matches[0].User.Availability.UserID)
	require.NotNil(t, matches[0].User.Nickname)
	assert.Equal(t, "Alice", *matches[0].User.Nickname)
	assert.Equal(t, "E1", matches[0].Event.ID)
}

func TestMatchService_FetchFailureFailsWhole(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	t.Run("availability fetch fails", func(t *testing.T) {
		f := newMatchFixture(t, "2025-01-10T08:00:00Z")
		f.addEvent("ev-1", "Meetup", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T12:00:00Z"))
		f.avails.err = dbErr
		matches, err := f.svc.ListMatches(ctx)
		require.ErrorIs(t, err, dbErr)
		assert.Nil(t, matches)
	})

	t.Run("event fetch fails", func(t *testing.T) {
		f := newMatchFixture(t, "2025-01-10T08:00:00Z")
		f.events.listErr = dbErr
		matches, err := f.svc.ListMatches(ctx)
		require.ErrorIs(t, err, dbErr)
		assert.Nil(t, matches)
	})

	t.Run("profile fetch fails", func(t *testing.T) {
		f := newMatchFixture(t, "2025-01-10T08:00:00Z")
		f.addEvent("ev-1", "Meetup", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T12:00:00Z"))
		f.addAvailability("u1", ts(t, "2025-01-10T09:00:00Z"), ts(t, "2025-01-10T13:00:00Z"))
		f.profiles.err = dbErr
		matches, err := f.svc.ListMatches(ctx)
		require.ErrorIs(t, err, dbErr)
		assert.Nil(t, matches)
	})

	t.Run("membership fetch fails", func(t *testing.T) {
		f := newMatchFixture(t, "2025-01-10T08:00:00Z")
		f.addEvent("ev-1", "Meetup", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T12:00:00Z"))
		f.addAvailability("u1", ts(t, "2025-01-10T09:00:00Z"), ts(t, "2025-01-10T13:00:00Z"))
		f.members.err = dbErr
		matches, err := f.svc.ListMatches(ctx)
		require.ErrorIs(t, err, dbErr)
		assert.Nil(t, matches)
	})
}

func TestMatchService_ListEventCandidates(t *testing.T) {
	ctx := context.Background()
	f := newMatchFixture(t, "2025-01-10T08:00:00Z")
	event := f.addEvent("ev-1", "Shibuya meetup", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T11:00:00Z"))
	event.Latitude = f64Ptr(35.6595)
	event.Longitude = f64Ptr(139.7005)

	// u-near is available right now but only until 09:00, well before the
	// event starts. Candidacy asks "who is free at this moment", not whose
	// window contains the event, so they still qualify.
	near := f.addAvailability("u-near", ts(t, "2025-01-10T07:30:00Z"), ts(t, "2025-01-10T09:00:00Z"))
	near.Latitude = f64Ptr(35.6600)
	near.Longitude = f64Ptr(139.7010)
	far := f.addAvailability("u-far", ts(t, "2025-01-10T07:00:00Z"), nil)
	far.Latitude = f64Ptr(35.7138)
	far.Longitude = f64Ptr(139.7765)
	f.addAvailability("u-nocoords", ts(t, "2025-01-10T06:00:00Z"), ts(t, "2025-01-10T12:00:00Z"))
	f.addAvailability("u-member", ts(t, "2025-01-10T07:00:00Z"), ts(t, "2025-01-10T13:00:00Z"))
	f.addAvailability("u-later", ts(t, "2025-01-10T10:30:00Z"), ts(t, "2025-01-10T13:00:00Z"))
	require.NoError(t, f.members.Insert(ctx, &domain.EventMember{EventID: "ev-1", UserID: "u-member", Role: domain.RoleParticipant}))
	require.NoError(t, f.profiles.Upsert(ctx, &domain.UserProfile{ID: "u-near", Nickname: strPtr("Near")}))

	candidates, err := f.svc.ListEventCandidates(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	// Nearest first, coordinate-less candidates last.
	assert.Equal(t, "u-near", candidates[0].UserID)
	require.NotNil(t, candidates[0].Nickname)
	assert.Equal(t, "Near", *candidates[0].Nickname)
	require.NotNil(t, candidates[0].DistanceMeters)
	assert.Less(t, *candidates[0].DistanceMeters, 200.0)
	assert.Equal(t, "u-far", candidates[1].UserID)
	assert.Equal(t, "u-nocoords", candidates[2].UserID)
	assert.Nil(t, candidates[2].DistanceMeters)
}

func TestMatchService_CandidateWindowCoversNow(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		availStart    string
		availEnd      string
		wantCandidate bool
	}{
		{name: "covers now, ends before the event", availStart: "2025-01-10T07:30:00Z", availEnd: "2025-01-10T09:00:00Z", wantCandidate: true},
		{name: "starts exactly now", availStart: "2025-01-10T08:00:00Z", availEnd: "2025-01-10T09:00:00Z", wantCandidate: true},
		{name: "ends exactly now", availStart: "2025-01-10T07:00:00Z", availEnd: "2025-01-10T08:00:00Z", wantCandidate: true},
		{name: "open-ended end covers now", availStart: "2025-01-10T07:00:00Z", availEnd: "", wantCandidate: true},
		{name: "not yet started", availStart: "2025-01-10T10:30:00Z", availEnd: "2025-01-10T13:00:00Z", wantCandidate: false},
		{name: "already over", availStart: "2025-01-10T06:00:00Z", availEnd: "2025-01-10T07:00:00Z", wantCandidate: false},
		{name: "missing start never qualifies", availStart: "", availEnd: "2025-01-10T13:00:00Z", wantCandidate: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(t, "2025-01-10T08:00:00Z")
			f.addEvent("ev-1", "Board games", ts(t, "2025-01-10T10:00:00Z"), ts(t, "2025-01-10T11:00:00Z"))
			var start, end *time.Time
			if tt.availStart != "" {
				start = ts(t, tt.availStart)
			}
			if tt.availEnd != "" {
				end = ts(t, tt.availEnd)
			}
			f.addAvailability("u1", start, end)

			candidates, err := f.svc.ListEventCandidates(ctx, "ev-1")
			require.NoError(t, err)
			if tt.wantCandidate {
				require.Len(t, candidates, 1)
				assert.Equal(t, "u1", candidates[0].UserID)
			} else {
				assert.Empty(t, candidates)
			}
		})
	}
}

func TestMatchService_ListEventCandidatesNotFound(t *testing.T) {
	f := newMatchFixture(t, "2025-01-10T08:00:00Z")
	_, err := f.svc.ListEventCandidates(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
