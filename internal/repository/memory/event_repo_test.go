package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"communityhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func eventIDs(events []*domain.Event) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func TestEventRepository_SeededWithFixtures(t *testing.T) {
	repo := NewEventRepository(Options{})

	events, err := repo.GetEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []string{"3", "2", "1"}, eventIDs(events))

	first, err := repo.GetEvent(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, first.AttendeeCount)
	assert.Equal(t, 45, *first.AttendeeCount)
	assert.Equal(t, "https://lu.ma/event123", first.Link(domain.LinkTypeRegistration))
}

func TestEventRepository_CreateEvent(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(Options{NewID: func() string { return "ev-new" }})

	before, err := repo.GetEvents(ctx)
	require.NoError(t, err)

	dto := domain.CreateEventDTO{Title: "Meetup #4", Date: "2024-05-16", Time: "19:00", Format: domain.EventFormatHybrid}
	created, err := repo.CreateEvent(ctx, dto)
	require.NoError(t, err)

	want := &domain.Event{
		ID:     "ev-new",
		Title:  "Meetup #4",
		Date:   "2024-05-16",
		Time:   "19:00",
		Format: domain.EventFormatHybrid,
		Status: domain.EventStatusDraft,
		Links:  []domain.EventLink{},
		Agenda: []domain.AgendaItem{},
	}
	assert.Equal(t, want, created)

	after, err := repo.GetEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)

	got, err := repo.GetEvent(ctx, "ev-new")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEventRepository_UpdateEvent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		patch   domain.EventPatch
		check   func(t *testing.T, before, after *domain.Event)
		wantErr error
	}{
		{
			name:  "single field merge leaves the rest untouched",
			id:    "1",
			patch: domain.EventPatch{Description: ptr("updated")},
			check: func(t *testing.T, before, after *domain.Event) {
				assert.Equal(t, "updated", after.Description)
				before.Description = "updated"
				assert.Equal(t, before, after)
			},
		},
		{
			name:  "empty links clears the collection",
			id:    "1",
			patch: domain.EventPatch{Links: &[]domain.EventLink{}},
			check: func(t *testing.T, before, after *domain.Event) {
				assert.Empty(t, after.Links)
				assert.Equal(t, before.Agenda, after.Agenda)
			},
		},
		{
			name:  "agenda replaced in full",
			id:    "2",
			patch: domain.EventPatch{Agenda: &[]domain.AgendaItem{{ID: "x", Title: "Talk", SpeakerName: "Guest"}}},
			check: func(t *testing.T, before, after *domain.Event) {
				assert.Equal(t, []domain.AgendaItem{{ID: "x", Title: "Talk", SpeakerName: "Guest"}}, after.Agenda)
				assert.Equal(t, before.Links, after.Links)
			},
		},
		{
			name:    "missing id",
			id:      "missing",
			patch:   domain.EventPatch{Title: ptr("x")},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewEventRepository(Options{})
			before, err := repo.GetEvent(ctx, tt.id)
			require.NoError(t, err)

			updated, err := repo.UpdateEvent(ctx, tt.id, tt.patch)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)

			after, err := repo.GetEvent(ctx, tt.id)
			require.NoError(t, err)
			assert.Equal(t, updated, after)
			tt.check(t, before, after)
		})
	}
}

func TestEventRepository_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(Options{})

	require.NoError(t, repo.DeleteEvent(ctx, "2"))

	got, err := repo.GetEvent(ctx, "2")
	require.NoError(t, err)
	assert.Nil(t, got)

	events, err := repo.GetEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	err = repo.DeleteEvent(ctx, "2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEventRepository_ListingsDisagreeOnFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeEventRepository()
	repo.GivenEvents(
		&domain.Event{ID: "a", Date: "2024-01-10", Status: domain.EventStatusDraft},
		&domain.Event{ID: "b", Date: "2024-03-10", Status: domain.EventStatusPublished},
		&domain.Event{ID: "c", Date: "2024-02-10", Status: domain.EventStatusPublished},
	)

	all, err := repo.GetEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, eventIDs(all))

	published, err := repo.GetPublishedEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, eventIDs(published))
}

func TestEventRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(Options{})

	got, err := repo.GetEvent(ctx, "1")
	require.NoError(t, err)
	got.Title = "mutated"
	got.Links[0].URL = "https://evil.example"

	again, err := repo.GetEvent(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "AI Dev Peru Meetup #1", again.Title)
	assert.Equal(t, "https://lu.ma/event123", again.Links[0].URL)
}

func TestEventRepository_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeEventRepository()
	repo.GivenEvents(&domain.Event{ID: "e1", Title: "orig", Location: "Lima", Date: "2024-01-01"})

	stale, err := repo.GetEvent(ctx, "e1")
	require.NoError(t, err)

	// Two writers patch from the same stale snapshot; the second one wins entirely.
	_, err = repo.UpdateEvent(ctx, "e1", domain.EventPatch{Title: ptr("first"), Location: ptr("Cusco")})
	require.NoError(t, err)
	_, err = repo.UpdateEvent(ctx, "e1", domain.EventPatch{Title: ptr("second"), Location: ptr(stale.Location)})
	require.NoError(t, err)

	got, err := repo.GetEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)
	assert.Equal(t, "Lima", got.Location)
}

func TestEventRepository_LatencyHonoursContext(t *testing.T) {
	repo := NewEventRepository(Options{Latency: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetEvents(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
