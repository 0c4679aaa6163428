package attendly

import (
	"context"
	"errors"

	"github.com/attendly/attendly-go/rest"
)

// Me fetches the signed-in user's record and refreshes the session's copy.
func (c *Client) Me(ctx context.Context) (*User, error) {
	user, err := invokeRequired[User](ctx, c, "me", rest.Endpoint{
		Path:   "/me",
		Method: rest.MethodGet,
	}, true)
	if err != nil {
		return nil, err
	}

	c.session.SetAuthenticated(true, user)
	return user, nil
}

// UpdateProfile updates the signed-in user's profile and refreshes the
// session's copy.
func (c *Client) UpdateProfile(ctx context.Context, params ProfileParams) (*User, error) {
	user, err := invokeRequired[User](ctx, c, "update_profile", rest.Endpoint{
		Path:   "/me",
		Method: rest.MethodPatch,
		Body:   params,
	}, true)
	if err != nil {
		return nil, err
	}

	c.session.SetAuthenticated(true, user)
	return user, nil
}

// CompleteOnboarding submits the onboarding questionnaire answers and
// clears the first-login flag server-side; the refreshed user record is
// adopted into the session so Screen() stops routing to onboarding.
func (c *Client) CompleteOnboarding(ctx context.Context, answers map[string]string) (*User, error) {
	user, err := invokeRequired[User](ctx, c, "complete_onboarding", rest.Endpoint{
		Path:   "/me/onboarding",
		Method: rest.MethodPost,
		Body:   map[string]any{"answers": answers},
	}, true)
	if err != nil {
		return nil, err
	}

	c.session.SetAuthenticated(true, user)
	return user, nil
}

// UploadProfileImage stores the image under the configured bucket keyed by
// user ID and returns its public URL. Requires Storage configuration.
func (c *Client) UploadProfileImage(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	if c.storage == nil {
		return "", errors.New("object storage is not configured")
	}

	key := userID + "/avatar"
	if err := c.storage.Upload(ctx, c.cfg.Storage.Bucket, key, data, contentType); err != nil {
		return "", err
	}
	return c.storage.PublicURL(c.cfg.Storage.Bucket, key), nil
}

// ProfileImage loads an avatar through the de-duplicating image cache.
func (c *Client) ProfileImage(ctx context.Context, url string) ([]byte, error) {
	return c.images.Load(ctx, url)
}

// SetRole records whether this session acts as attendee or organizer.
func (c *Client) SetRole(ctx context.Context, role Role) {
	c.session.SetRole(ctx, role)
}
