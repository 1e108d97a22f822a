package contextutil

import "context"

// RequestIDHeader is read from and echoed back on every HTTP exchange.
const RequestIDHeader = "X-Request-ID"

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// RequestIDKey is the gin.Context key holding the request id.
func RequestIDKey() string {
	return string(requestIDKey)
}
