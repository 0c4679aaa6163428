package attendly

import (
	"context"

	"github.com/attendly/attendly-go/rest"
	"github.com/attendly/attendly-go/token"
)

// Register creates an account, stores the issued bearer token, and marks
// the session authenticated with the new user record.
func (c *Client) Register(ctx context.Context, params RegisterParams) (*User, error) {
	payload, err := invokeRequired[authPayload](ctx, c, "register", rest.Endpoint{
		Path:   "/auth/register",
		Method: rest.MethodPost,
		Body:   params,
	}, false)
	if err != nil {
		return nil, err
	}

	return c.adoptAuth(ctx, payload)
}

// Login authenticates with email and password, stores the issued bearer
// token, and marks the session authenticated.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	payload, err := invokeRequired[authPayload](ctx, c, "login", rest.Endpoint{
		Path:   "/auth/login",
		Method: rest.MethodPost,
		Body: map[string]string{
			"email":    email,
			"password": password,
		},
	}, false)
	if err != nil {
		return nil, err
	}

	return c.adoptAuth(ctx, payload)
}

// Logout tells the backend to revoke the session, best-effort, then clears
// local state: token, session, persisted subset, and the recommendation
// cache. A failed revoke call never blocks the local logout.
func (c *Client) Logout(ctx context.Context) error {
	if _, err := invoke[struct{}](ctx, c, "logout", rest.Endpoint{
		Path:   "/auth/logout",
		Method: rest.MethodPost,
	}, true); err != nil {
		c.logger.Debug().Err(err).Msg("backend logout failed; clearing local state anyway")
	}

	if err := c.recommendations.Clear(ctx); err != nil {
		c.logger.Debug().Err(err).Msg("clearing recommendation cache failed")
	}
	c.images.Clear()

	return c.session.Logout(ctx)
}

// adoptAuth persists the token and flips the session to authenticated.
func (c *Client) adoptAuth(ctx context.Context, payload *authPayload) (*User, error) {
	if err := c.tokens.Set(ctx, token.AccessTokenKey, payload.Token); err != nil {
		// Without a stored token every subsequent call would 401; this
		// failure is not recoverable locally.
		return nil, err
	}

	user := payload.User
	c.session.SetAuthenticated(true, &user)
	return &user, nil
}
