package tracking

import "context"

type requestMetaKey struct{}

// RequestMeta holds the client metadata read from request headers.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}
