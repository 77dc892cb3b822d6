package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"

	feedHealthy   = "healthy"
	feedUnhealthy = "unhealthy"
	feedDisabled  = "disabled"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler handles health check operations.
type Handler struct {
	clickFeed Checker
}

// NewHandler creates a new health handler. A nil checker reports the click feed as disabled.
func NewHandler(clickFeed Checker) *Handler {
	return &Handler{clickFeed: clickFeed}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status    string `doc:"Overall status"                      enum:"ok,degraded"                json:"status"`
		ClickFeed string `doc:"Connectivity of the click feed Redis" enum:"healthy,unhealthy,disabled" json:"clickFeed"`
	}
}

// Check reports liveness and click feed connectivity. The webhook is not probed.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = statusOK

	switch {
	case h.clickFeed == nil:
		resp.Body.ClickFeed = feedDisabled
	case h.clickFeed.Ping(ctx) != nil:
		resp.Body.ClickFeed = feedUnhealthy
		resp.Body.Status = statusDegraded
	default:
		resp.Body.ClickFeed = feedHealthy
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Check)
}
