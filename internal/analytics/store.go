package analytics

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/link-tracker/internal/messaging"
	"github.com/serroba/link-tracker/internal/tracking"
	"go.uber.org/zap"
)

// Sink receives click events read from the feed.
type Sink interface {
	SaveClick(ctx context.Context, event *tracking.ClickEvent) error
}

// NewClickConsumer wires a sink to the click feed.
func NewClickConsumer(subscriber message.Subscriber, sink Sink, logger *zap.Logger) *messaging.Consumer[tracking.ClickEvent] {
	return messaging.NewConsumer[tracking.ClickEvent](subscriber, TopicLinkClicked, sink.SaveClick, logger)
}
