package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/serroba/link-tracker/internal/messaging"
	"github.com/serroba/link-tracker/internal/tracking"
	"go.uber.org/zap"
)

// Notifier delivers a click notification. Implementations make a single attempt.
type Notifier interface {
	Notify(ctx context.Context, event *tracking.ClickEvent) error
}

// TrackHandler records a click, notifies the webhook and redirects the visitor.
type TrackHandler struct {
	destinationURL string
	location       *time.Location
	notifier       Notifier
	publishClick   messaging.Publish[tracking.ClickEvent]
	logger         *zap.Logger
	now            func() time.Time
}

// NewTrackHandler creates a track handler. destinationURL is fixed for the
// lifetime of the handler and never derived from the request.
func NewTrackHandler(
	destinationURL string,
	location *time.Location,
	notifier Notifier,
	publishClick messaging.Publish[tracking.ClickEvent],
	logger *zap.Logger,
) *TrackHandler {
	return &TrackHandler{
		destinationURL: destinationURL,
		location:       location,
		notifier:       notifier,
		publishClick:   publishClick,
		logger:         logger,
		now:            time.Now,
	}
}

// WithClock overrides the time source.
func (h *TrackHandler) WithClock(now func() time.Time) *TrackHandler {
	h.now = now

	return h
}

// Track handles GET /track. It always answers with a redirect to the
// destination URL; notification and publish failures are only logged.
func (h *TrackHandler) Track(ctx context.Context, req *TrackRequest) (*RedirectResponse, error) {
	event := tracking.NewClickEvent(
		tracking.RequestMetaFromContext(ctx),
		tracking.UTM{
			Source:   req.UTMSource,
			Medium:   req.UTMMedium,
			Campaign: req.UTMCampaign,
			Content:  req.UTMContent,
		},
		h.now(),
		h.location,
	)

	h.logger.Info("link clicked", event.LogFields()...)

	// A visitor hanging up must not abort the webhook call.
	notifyCtx := context.WithoutCancel(ctx)

	if err := h.notifier.Notify(notifyCtx, event); err != nil {
		h.logger.Error("webhook notification failed",
			zap.String("client_ip", event.ClientIP),
			zap.Error(err),
		)
	} else {
		h.logger.Info("webhook notified", zap.String("client_ip", event.ClientIP))
	}

	if err := h.publishClick(notifyCtx, event); err != nil {
		h.logger.Error("failed to publish click event",
			zap.String("client_ip", event.ClientIP),
			zap.Error(err),
		)
	}

	return &RedirectResponse{
		Status:   http.StatusFound,
		Location: h.destinationURL,
	}, nil
}
