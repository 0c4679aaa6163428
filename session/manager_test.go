package session

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/attendly/attendly-go/kv"
	"github.com/attendly/attendly-go/token"
)

func newTestManager(hook RefreshHook) (*Manager, kv.Store, token.Store) {
	store := kv.NewMemory()
	tokens := token.NewMemoryStore()
	return NewManager(store, tokens, hook), store, tokens
}

func futureEndDate() string {
	return time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
}

func TestSetSelectedEventPastEndDateInactive(t *testing.T) {
	m, _, _ := newTestManager(nil)

	m.SetSelectedEvent(context.Background(), &Event{
		ID:      "e1",
		Name:    "Old Meetup",
		EndDate: "2020-01-01T00:00:00Z",
	})

	st := m.State()
	require.NotNil(t, st.SelectedEvent)
	require.False(t, st.EventActive)
}

func TestSetSelectedEventFutureEndDateActive(t *testing.T) {
	m, _, _ := newTestManager(nil)

	m.SetSelectedEvent(context.Background(), &Event{ID: "e2", Name: "Mixer", EndDate: futureEndDate()})

	require.True(t, m.State().EventActive)
}

func TestSetSelectedEventUnparseableEndDateFailsClosed(t *testing.T) {
	m, _, _ := newTestManager(nil)

	m.SetSelectedEvent(context.Background(), &Event{ID: "e3", Name: "Mystery", EndDate: "whenever"})

	require.False(t, m.State().EventActive)
}

func TestSetSelectedEventFiresRefreshHookWhenActive(t *testing.T) {
	fired := make(chan string, 1)
	m, _, _ := newTestManager(func(eventID string) { fired <- eventID })

	m.SetSelectedEvent(context.Background(), &Event{ID: "e4", Name: "Mixer", EndDate: futureEndDate()})

	select {
	case id := <-fired:
		require.Equal(t, "e4", id)
	case <-time.After(time.Second):
		t.Fatal("refresh hook not fired for active event")
	}
}

func TestSetSelectedEventInactiveDoesNotFireHook(t *testing.T) {
	fired := make(chan string, 1)
	m, _, _ := newTestManager(func(eventID string) { fired <- eventID })

	m.SetSelectedEvent(context.Background(), &Event{ID: "e5", EndDate: "2020-01-01T00:00:00Z"})

	select {
	case <-fired:
		t.Fatal("refresh hook fired for inactive event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSetSelectedEventPersistsSubset(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newTestManager(nil)

	m.SetSelectedEvent(ctx, &Event{
		ID:               "e6",
		Name:             "GopherCon Mixer",
		Code:             "XK42",
		PhotoURL:         "https://cdn.example.com/e6.png",
		ParticipantCount: 37,
		EndDate:          futureEndDate(),
	})

	expect := map[string]string{
		keyEventName:         "GopherCon Mixer",
		keyEventCode:         "XK42",
		keyEventPhotoURL:     "https://cdn.example.com/e6.png",
		keyEventParticipants: "37",
		keyEventActive:       "true",
	}
	for key, want := range expect {
		val, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok, "key %s", key)
		require.Equal(t, want, val)
	}

	m.SetSelectedEvent(ctx, nil)

	st := m.State()
	require.Nil(t, st.SelectedEvent)
	require.False(t, st.EventActive)

	_, ok, err := store.Get(ctx, keyEventName)
	require.NoError(t, err)
	require.False(t, ok, "clearing the selection removes the persisted subset")
}

func TestLoadRestoresAndRevalidates(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()

	// Simulate a previous run that persisted an active event which has
	// since expired.
	require.NoError(t, store.Set(ctx, keyRole, string(RoleOrganizer)))
	require.NoError(t, store.Set(ctx, keyEventID, "e7"))
	require.NoError(t, store.Set(ctx, keyEventName, "Expired Mixer"))
	require.NoError(t, store.Set(ctx, keyEventCode, "ZZ99"))
	require.NoError(t, store.Set(ctx, keyEventParticipants, "12"))
	require.NoError(t, store.Set(ctx, keyEventEndDate, "2020-01-01T00:00:00Z"))
	require.NoError(t, store.Set(ctx, keyEventActive, "true"))

	m := NewManager(store, token.NewMemoryStore(), nil)
	m.Load(ctx)

	st := m.State()
	require.Equal(t, RoleOrganizer, st.Role)
	require.NotNil(t, st.SelectedEvent)
	require.Equal(t, "Expired Mixer", st.SelectedEvent.Name)
	require.Equal(t, 12, st.SelectedEvent.ParticipantCount)
	require.False(t, st.EventActive, "expiry while the app was closed is caught on load")

	val, ok, err := store.Get(ctx, keyEventActive)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, strconv.FormatBool(false), val, "the corrected flag is persisted back")
}

func TestLoadIgnoresCorruptState(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, keyRole, "superuser"))
	require.NoError(t, store.Set(ctx, keyEventName, "Mixer"))
	require.NoError(t, store.Set(ctx, keyEventParticipants, "many"))

	m := NewManager(store, token.NewMemoryStore(), nil)
	m.Load(ctx)

	st := m.State()
	require.Equal(t, RoleAttendee, st.Role, "unknown role falls back to the default")
	require.Zero(t, st.SelectedEvent.ParticipantCount, "unparseable count treated as absent")
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	m, store, tokens := newTestManager(nil)

	require.NoError(t, tokens.Set(ctx, token.AccessTokenKey, "tok-1"))
	m.SetAuthenticated(true, &User{ID: "u1", FullName: "Alice"})
	m.SetRole(ctx, RoleOrganizer)
	m.SetSelectedEvent(ctx, &Event{ID: "e8", Name: "Mixer", EndDate: futureEndDate()})

	require.NoError(t, m.Logout(ctx))

	st := m.State()
	require.False(t, st.Authenticated)
	require.Nil(t, st.User)
	require.Nil(t, st.SelectedEvent)
	require.False(t, st.EventActive)
	require.Equal(t, RoleAttendee, st.Role)
	require.Equal(t, ScreenAuth, st.Screen())

	for _, key := range persistedKeys {
		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		require.False(t, ok, "key %s survived logout", key)
	}

	_, ok, err := tokens.Get(ctx, token.AccessTokenKey)
	require.NoError(t, err)
	require.False(t, ok, "token survived logout")
}

func TestScreenDecisionTable(t *testing.T) {
	cases := []struct {
		name  string
		state State
		want  Screen
	}{
		{"signed out", State{}, ScreenAuth},
		{"first login", State{Authenticated: true, User: &User{FirstLogin: true}}, ScreenOnboarding},
		{"attendee", State{Authenticated: true, Role: RoleAttendee, User: &User{}}, ScreenAttendeeHome},
		{"organizer", State{Authenticated: true, Role: RoleOrganizer, User: &User{}}, ScreenOrganizerHome},
		{"authenticated, no user record", State{Authenticated: true, Role: RoleAttendee}, ScreenAttendeeHome},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.state.Screen())
		})
	}
}

func TestStateSnapshotIsACopy(t *testing.T) {
	m, _, _ := newTestManager(nil)
	m.SetSelectedEvent(context.Background(), &Event{ID: "e9", Name: "Mixer", EndDate: futureEndDate()})

	snap := m.State()
	snap.SelectedEvent.Name = "mutated"

	require.Equal(t, "Mixer", m.State().SelectedEvent.Name)
}
