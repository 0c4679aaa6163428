package session

import "github.com/attendly/attendly-go/rest"

// Role is the user's mode for the current session.
type Role string

const (
	// RoleAttendee is the default role.
	RoleAttendee Role = "attendee"
	// RoleOrganizer is the event-creator role.
	RoleOrganizer Role = "organizer"
)

// Screen is the navigation target derived from session state. It is a
// routing hint for the embedding UI, resolved by a fixed decision table.
type Screen string

const (
	// ScreenAuth is shown when no one is signed in.
	ScreenAuth Screen = "auth"
	// ScreenOnboarding is shown on a user's first login.
	ScreenOnboarding Screen = "onboarding"
	// ScreenAttendeeHome is the signed-in attendee landing screen.
	ScreenAttendeeHome Screen = "attendee_home"
	// ScreenOrganizerHome is the signed-in organizer landing screen.
	ScreenOrganizerHome Screen = "organizer_home"
)

// User is the backend's user record as the client sees it.
type User struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	FullName   string          `json:"full_name"`
	AvatarURL  string          `json:"avatar_url,omitempty"`
	FirstLogin bool            `json:"first_login"`
	CreatedAt  *rest.Timestamp `json:"created_at,omitempty"`
}

// Event is the backend's event record as the client sees it. EndDate stays
// a raw string; the activity check parses it under the prioritized layout
// list and fails closed when nothing matches.
type Event struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Code             string          `json:"code"`
	PhotoURL         string          `json:"photo_url,omitempty"`
	ParticipantCount int             `json:"participant_count"`
	EndDate          string          `json:"end_date"`
	CreatedAt        *rest.Timestamp `json:"created_at,omitempty"`
}

// State is a point-in-time snapshot of the session. EventActive is derived:
// it is recomputed synchronously on every SelectedEvent change.
type State struct {
	Authenticated bool
	Role          Role
	User          *User
	SelectedEvent *Event
	EventActive   bool
}

// Screen resolves the navigation target:
//
//	not authenticated        → auth
//	first login              → onboarding
//	role organizer           → organizer home
//	otherwise                → attendee home
func (s State) Screen() Screen {
	if !s.Authenticated {
		return ScreenAuth
	}
	if s.User != nil && s.User.FirstLogin {
		return ScreenOnboarding
	}
	if s.Role == RoleOrganizer {
		return ScreenOrganizerHome
	}
	return ScreenAttendeeHome
}
