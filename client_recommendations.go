package attendly

import (
	"context"

	"github.com/attendly/attendly-go/rest"
)

// Recommendations returns attendee-matching suggestions for the event,
// served from the TTL cache when fresh and scoped to the same event.
// forceRefresh bypasses the cache read (the write still happens, so the
// refreshed list is what later reads see).
func (c *Client) Recommendations(ctx context.Context, eventID string, forceRefresh bool) ([]Recommendation, error) {
	if !forceRefresh {
		if items, ok := c.recommendations.Get(ctx, eventID); ok {
			c.metrics.Inc(MetricRecommendationCacheHits)
			return items, nil
		}
		c.metrics.Inc(MetricRecommendationCacheMisses)
	}

	recs, err := invokeRequired[[]Recommendation](ctx, c, "recommendations", rest.Endpoint{
		Path:   "/events/" + eventID + "/recommendations",
		Method: rest.MethodGet,
	}, true)
	if err != nil {
		return nil, err
	}

	if err := c.recommendations.Put(ctx, *recs, eventID); err != nil {
		// Cache writes are a continuity optimization; the fetched data is
		// still good.
		c.logger.Debug().Err(err).Str("event_id", eventID).Msg("recommendation cache write failed")
	}

	return *recs, nil
}

// InvalidateRecommendations drops the cached list, forcing the next read
// to hit the backend.
func (c *Client) InvalidateRecommendations(ctx context.Context) error {
	return c.recommendations.Clear(ctx)
}
