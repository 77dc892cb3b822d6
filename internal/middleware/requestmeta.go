package middleware

import (
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/link-tracker/internal/tracking"
)

// RequestMeta is a middleware that adds client IP, user-agent, and referrer to the request context.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := tracking.RequestMeta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
		}

		newCtx := tracking.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

// clientIP returns X-Forwarded-For verbatim, proxy chain included, or the peer
// address without its port. Repeated header lines are joined with ", ". The
// header is trusted unconditionally and can be spoofed by any client not behind
// a proxy that overwrites it.
func clientIP(ctx huma.Context) string {
	if xff := forwardedFor(ctx); xff != "" {
		return xff
	}

	addr := ctx.RemoteAddr()

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}

func forwardedFor(ctx huma.Context) string {
	var values []string

	ctx.EachHeader(func(name, value string) {
		if strings.EqualFold(name, "X-Forwarded-For") {
			values = append(values, value)
		}
	})

	return strings.Join(values, ", ")
}
