package attendly

import (
	"context"

	"github.com/google/uuid"

	"github.com/attendly/attendly-go/rest"
)

// idempotencyKeyHeader lets the backend deduplicate retried event
// creations.
const idempotencyKeyHeader = "X-Idempotency-Key"

// CreateEvent creates an event owned by the signed-in user and selects it.
func (c *Client) CreateEvent(ctx context.Context, params CreateEventParams) (*Event, error) {
	ev, err := invokeRequired[Event](ctx, c, "create_event", rest.Endpoint{
		Path:    "/events",
		Method:  rest.MethodPost,
		Headers: map[string]string{idempotencyKeyHeader: uuid.NewString()},
		Body:    params,
	}, true)
	if err != nil {
		return nil, err
	}

	c.session.SetSelectedEvent(ctx, ev)
	return ev, nil
}

// JoinEvent joins the event identified by its share code and selects it.
func (c *Client) JoinEvent(ctx context.Context, code string) (*Event, error) {
	ev, err := invokeRequired[Event](ctx, c, "join_event", rest.Endpoint{
		Path:   "/events/join",
		Method: rest.MethodPost,
		Body:   map[string]string{"code": code},
	}, true)
	if err != nil {
		return nil, err
	}

	c.session.SetSelectedEvent(ctx, ev)
	return ev, nil
}

// GetEvent fetches one event by ID without selecting it.
func (c *Client) GetEvent(ctx context.Context, eventID string) (*Event, error) {
	return invokeRequired[Event](ctx, c, "get_event", rest.Endpoint{
		Path:   "/events/" + eventID,
		Method: rest.MethodGet,
	}, true)
}

// LeaveEvent leaves the event and clears the selection when it was the
// selected one.
func (c *Client) LeaveEvent(ctx context.Context, eventID string) error {
	_, err := invoke[struct{}](ctx, c, "leave_event", rest.Endpoint{
		Path:   "/events/" + eventID + "/leave",
		Method: rest.MethodPost,
	}, true)
	if err != nil {
		return err
	}

	if st := c.session.State(); st.SelectedEvent != nil && st.SelectedEvent.ID == eventID {
		c.session.SetSelectedEvent(ctx, nil)
	}
	return nil
}

// ListAttendees fetches the participants of an event.
func (c *Client) ListAttendees(ctx context.Context, eventID string) ([]Attendee, error) {
	attendees, err := invokeRequired[[]Attendee](ctx, c, "list_attendees", rest.Endpoint{
		Path:   "/events/" + eventID + "/attendees",
		Method: rest.MethodGet,
	}, true)
	if err != nil {
		return nil, err
	}
	return *attendees, nil
}

// EventImage loads an event's photo through the de-duplicating image
// cache.
func (c *Client) EventImage(ctx context.Context, url string) ([]byte, error) {
	return c.images.Load(ctx, url)
}
