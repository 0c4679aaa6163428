package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/attendly/attendly-go/kv"
	"github.com/attendly/attendly-go/token"
)

// Persisted key names. The subset is deliberately small: enough to render
// the selected-event card on relaunch before any network call completes.
const (
	keyRole              = "session_role"
	keyEventName         = "selected_event_name"
	keyEventPhotoURL     = "selected_event_photo_url"
	keyEventParticipants = "selected_event_participants"
	keyEventCode         = "selected_event_code"
	keyEventEndDate      = "selected_event_end_date"
	keyEventActive       = "selected_event_active"
	keyEventID           = "selected_event_id"
)

var persistedKeys = []string{
	keyRole,
	keyEventName,
	keyEventPhotoURL,
	keyEventParticipants,
	keyEventCode,
	keyEventEndDate,
	keyEventActive,
	keyEventID,
}

// RefreshHook is fired (on its own goroutine, fire-and-forget) when a
// selected event turns out to be active, so the client can prefetch
// recommendations without blocking the mutation.
type RefreshHook func(eventID string)

// Manager is the mutex-guarded holder of session state. Construct one per
// client; there is no package-level instance.
type Manager struct {
	mu      sync.Mutex
	kv      kv.Store
	tokens  token.Store
	refresh RefreshHook

	now func() time.Time

	state State
}

// NewManager creates a manager persisting through store and clearing
// tokens on logout. hook may be nil.
func NewManager(store kv.Store, tokens token.Store, hook RefreshHook) *Manager {
	return &Manager{
		kv:      store,
		tokens:  tokens,
		refresh: hook,
		now:     time.Now,
		state:   State{Role: RoleAttendee},
	}
}

// Load reconstructs role, the selected-event subset, and the active flag
// from the kv store, then re-validates the flag against the current time —
// an event that expired while the app was closed comes back inactive.
// Persisted state that cannot be read or parsed is treated as absent.
func (m *Manager) Load(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if role, ok := m.get(ctx, keyRole); ok {
		switch Role(role) {
		case RoleAttendee, RoleOrganizer:
			m.state.Role = Role(role)
		}
	}

	name, hasName := m.get(ctx, keyEventName)
	code, hasCode := m.get(ctx, keyEventCode)
	if !hasName && !hasCode {
		m.state.SelectedEvent = nil
		m.state.EventActive = false
		return
	}

	ev := &Event{Name: name, Code: code}
	if id, ok := m.get(ctx, keyEventID); ok {
		ev.ID = id
	}
	if photo, ok := m.get(ctx, keyEventPhotoURL); ok {
		ev.PhotoURL = photo
	}
	if raw, ok := m.get(ctx, keyEventParticipants); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			ev.ParticipantCount = n
		}
	}
	if end, ok := m.get(ctx, keyEventEndDate); ok {
		ev.EndDate = end
	}

	m.state.SelectedEvent = ev
	m.state.EventActive = eventActive(ev, m.now())
	m.set(ctx, keyEventActive, strconv.FormatBool(m.state.EventActive))
}

// SetAuthenticated flips the signed-in flag and, when a user record is
// supplied, stores it. Passing nil keeps any existing user.
func (m *Manager) SetAuthenticated(authenticated bool, user *User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Authenticated = authenticated
	if user != nil {
		u := *user
		m.state.User = &u
	}
	if !authenticated {
		m.state.User = nil
	}
}

// SetRole records the session role and persists it.
func (m *Manager) SetRole(ctx context.Context, role Role) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Role = role
	m.set(ctx, keyRole, string(role))
}

// SetSelectedEvent replaces the selected event. In one critical section it
// persists (or clears) the display subset, recomputes the active flag from
// the end date, and — when the event is active — fires the refresh hook on
// its own goroutine. Readers never see the new event with the old flag.
func (m *Manager) SetSelectedEvent(ctx context.Context, ev *Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev == nil {
		m.state.SelectedEvent = nil
		m.state.EventActive = false
		m.delete(ctx,
			keyEventName, keyEventPhotoURL, keyEventParticipants,
			keyEventCode, keyEventEndDate, keyEventActive, keyEventID,
		)
		return
	}

	copied := *ev
	m.state.SelectedEvent = &copied
	m.state.EventActive = eventActive(&copied, m.now())

	m.set(ctx, keyEventID, copied.ID)
	m.set(ctx, keyEventName, copied.Name)
	m.set(ctx, keyEventPhotoURL, copied.PhotoURL)
	m.set(ctx, keyEventParticipants, strconv.Itoa(copied.ParticipantCount))
	m.set(ctx, keyEventCode, copied.Code)
	m.set(ctx, keyEventEndDate, copied.EndDate)
	m.set(ctx, keyEventActive, strconv.FormatBool(m.state.EventActive))

	if m.state.EventActive && m.refresh != nil {
		go m.refresh(copied.ID)
	}
}

// Logout clears authentication, user, role (back to the default), selected
// event, every persisted key, and the token store.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = State{Role: RoleAttendee}

	if err := m.kv.Delete(ctx, persistedKeys...); err != nil {
		return err
	}
	return m.tokens.Clear(ctx, token.AccessTokenKey)
}

// State returns a snapshot. Pointers are copies; mutating them does not
// touch the manager.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := m.state
	if m.state.User != nil {
		u := *m.state.User
		snap.User = &u
	}
	if m.state.SelectedEvent != nil {
		ev := *m.state.SelectedEvent
		snap.SelectedEvent = &ev
	}
	return snap
}

// Screen resolves the current navigation target.
func (m *Manager) Screen() Screen {
	return m.State().Screen()
}

// Persistence is best-effort: a failed write costs a cold start later, it
// never fails the mutation.
func (m *Manager) set(ctx context.Context, key, value string) {
	_ = m.kv.Set(ctx, key, value)
}

func (m *Manager) get(ctx context.Context, key string) (string, bool) {
	val, ok, err := m.kv.Get(ctx, key)
	if err != nil {
		return "", false
	}
	return val, ok
}

func (m *Manager) delete(ctx context.Context, keys ...string) {
	_ = m.kv.Delete(ctx, keys...)
}
