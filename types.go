package attendly

import "github.com/attendly/attendly-go/session"

// Aliases for the session package's value types, so SDK users work with
// attendly.User and attendly.Event throughout.
type (
	// User is the backend's user record.
	User = session.User
	// Event is the backend's event record.
	Event = session.Event
	// Role is the session role.
	Role = session.Role
	// Screen is the navigation target.
	Screen = session.Screen
	// State is a session snapshot.
	State = session.State
)

// Re-exported session constants.
const (
	RoleAttendee        = session.RoleAttendee
	RoleOrganizer       = session.RoleOrganizer
	ScreenAuth          = session.ScreenAuth
	ScreenOnboarding    = session.ScreenOnboarding
	ScreenAttendeeHome  = session.ScreenAttendeeHome
	ScreenOrganizerHome = session.ScreenOrganizerHome
)

// Recommendation is one attendee-matching suggestion for the selected
// event, ordered by descending score server-side.
type Recommendation struct {
	UserID          string   `json:"user_id"`
	FullName        string   `json:"full_name"`
	AvatarURL       string   `json:"avatar_url,omitempty"`
	Headline        string   `json:"headline,omitempty"`
	Score           float64  `json:"score"`
	SharedInterests []string `json:"shared_interests,omitempty"`
}

// Attendee is one participant of an event.
type Attendee struct {
	UserID    string `json:"user_id"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Headline  string `json:"headline,omitempty"`
}

// RegisterParams creates a new account.
type RegisterParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// CreateEventParams creates a new event. EndDate is an ISO-8601 string,
// matching what the backend stores and echoes back.
type CreateEventParams struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	EndDate     string `json:"end_date"`
	Capacity    int    `json:"capacity,omitempty"`
}

// ProfileParams updates the signed-in user's profile.
type ProfileParams struct {
	FullName  string   `json:"full_name,omitempty"`
	Headline  string   `json:"headline,omitempty"`
	AvatarURL string   `json:"avatar_url,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// authPayload is the envelope data of login and register responses.
type authPayload struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}
