package attendly

import "context"

type requestIDContextKey struct{}
type deviceIDContextKey struct{}

// WithRequestID attaches a correlation ID to ctx. It is sent as
// X-Request-ID and echoed in audit events; without one the request builder
// generates a fresh UUID per call.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// WithDeviceID attaches the installing device's identifier to ctx. It is
// sent as X-Device-ID so the backend can correlate sessions across
// reinstalls.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDContextKey{}, deviceID)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

func deviceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(deviceIDContextKey{}).(string)
	return id
}
