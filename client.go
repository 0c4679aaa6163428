package attendly

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/attendly/attendly-go/cache"
	"github.com/attendly/attendly-go/kv"
	"github.com/attendly/attendly-go/rest"
	"github.com/attendly/attendly-go/session"
	"github.com/attendly/attendly-go/storage"
	"github.com/attendly/attendly-go/token"
)

// Client is the typed API client for the event-networking backend. It owns
// the bearer token, the session state, and the caches; construct it via
// [Builder.Build] and share one instance per process.
type Client struct {
	cfg       Config
	builder   *rest.RequestBuilder
	transport rest.Transport
	tokens    token.Store
	kv        kv.Store

	session         *session.Manager
	recommendations *cache.TTL[[]Recommendation]
	images          *cache.Images
	storage         *storage.Client

	logger  zerolog.Logger
	metrics *Metrics
	audit   *auditDispatcher
}

// Session exposes the session state manager.
func (c *Client) Session() *session.Manager {
	return c.session
}

// Metrics returns a snapshot of the client's counters.
func (c *Client) Metrics() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// AuditDropped reports how many audit events were discarded.
func (c *Client) AuditDropped() uint64 {
	return c.audit.Dropped()
}

// Close drains the audit dispatcher. The Client is unusable afterwards.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.audit.Close()
}

// Restore rebuilds state after process start: reloads the persisted
// session subset (re-validating the selected event's active flag) and,
// when a usable token is stored, marks the session authenticated so the
// UI can route past the auth screen. The user record is refreshed lazily
// by the first Me call.
func (c *Client) Restore(ctx context.Context) {
	c.session.Load(ctx)

	tok, ok, err := c.tokens.Get(ctx, token.AccessTokenKey)
	if err != nil || !ok {
		return
	}
	if token.Expired(tok, time.Now()) {
		// Provably stale; drop it so the next call doesn't carry it.
		if err := c.tokens.Clear(ctx, token.AccessTokenKey); err != nil {
			c.logger.Debug().Err(err).Msg("clearing expired token failed")
		}
		return
	}
	c.session.SetAuthenticated(true, nil)
}

// invoke runs one API call end to end: ambient token lookup, request
// construction, transport, envelope decoding, and the bookkeeping around
// them (metrics, audit, 401 token clearing). It is a package function
// because methods cannot carry type parameters.
func invoke[T any](ctx context.Context, c *Client, op string, ep rest.Endpoint, authed bool) (*T, error) {
	ep.Headers = contextHeaders(ctx, ep.Headers)

	var bearer string
	if authed {
		tok, ok, err := c.tokens.Get(ctx, token.AccessTokenKey)
		if err != nil {
			c.logger.Debug().Err(err).Str("operation", op).Msg("token lookup failed")
		}
		if ok {
			if token.Expired(tok, time.Now()) {
				if err := c.tokens.Clear(ctx, token.AccessTokenKey); err != nil {
					c.logger.Debug().Err(err).Msg("clearing expired token failed")
				}
			} else {
				bearer = tok
			}
		}
	}

	req, err := c.builder.Build(ctx, ep, bearer)
	if err != nil {
		return nil, err
	}

	c.metrics.Inc(MetricRequests)
	start := time.Now()

	resp, err := c.transport.Do(req)
	duration := time.Since(start)

	event := AuditEvent{
		Timestamp: start,
		Operation: op,
		Method:    string(ep.Method),
		Path:      ep.Path,
		Duration:  duration,
		RequestID: req.Header.Get(rest.RequestIDHeader),
	}

	if err != nil {
		c.metrics.Inc(MetricRequestFailures)
		event.Error = err.Error()
		c.audit.Emit(ctx, event)
		return nil, err
	}

	event.Status = resp.Status
	data, err := rest.Decode[T](resp.Status, resp.Body)
	if err != nil {
		c.metrics.Inc(MetricRequestFailures)
		if errors.Is(err, rest.ErrUnauthorized) {
			c.metrics.Inc(MetricUnauthorized)
			// The backend rejected the token; drop it so the caller's
			// re-authentication starts clean.
			if clearErr := c.tokens.Clear(ctx, token.AccessTokenKey); clearErr != nil {
				c.logger.Debug().Err(clearErr).Msg("clearing rejected token failed")
			}
		}
		event.Error = err.Error()
		c.audit.Emit(ctx, event)
		return nil, err
	}

	event.Success = true
	c.audit.Emit(ctx, event)
	c.logger.Debug().
		Str("operation", op).
		Str("method", string(ep.Method)).
		Str("path", ep.Path).
		Int("status", resp.Status).
		Dur("duration", duration).
		Msg("api call")

	return data, nil
}

// invokeRequired is [invoke] for operations that cannot proceed without a
// payload.
func invokeRequired[T any](ctx context.Context, c *Client, op string, ep rest.Endpoint, authed bool) (*T, error) {
	data, err := invoke[T](ctx, c, op, ep, authed)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, rest.ErrNoData
	}
	return data, nil
}

// contextHeaders merges the context's correlation headers into the
// endpoint's header map without mutating the caller's map.
func contextHeaders(ctx context.Context, headers map[string]string) map[string]string {
	requestID := requestIDFromContext(ctx)
	deviceID := deviceIDFromContext(ctx)
	if requestID == "" && deviceID == "" {
		return headers
	}

	merged := make(map[string]string, len(headers)+2)
	for k, v := range headers {
		merged[k] = v
	}
	if requestID != "" {
		merged[rest.RequestIDHeader] = requestID
	}
	if deviceID != "" {
		merged["X-Device-ID"] = deviceID
	}
	return merged
}

// fetchImage is the image cache's loader: a plain GET outside the envelope
// protocol, since image URLs point at public object storage.
func (c *Client) fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rest.ErrInvalidURL, err)
	}

	resp, err := c.transport.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, fmt.Errorf("image fetch failed (status %d)", resp.Status)
	}
	return resp.Body, nil
}

// refreshRecommendations is the session manager's refresh hook: when a
// selected event turns out active, warm the recommendation cache in the
// background. Failures only cost a later cold fetch.
func (c *Client) refreshRecommendations(eventID string) {
	if _, err := c.Recommendations(context.Background(), eventID, true); err != nil {
		c.logger.Debug().Err(err).Str("event_id", eventID).Msg("background recommendation refresh failed")
	}
}
