package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/link-tracker/internal/messaging"
	"github.com/serroba/link-tracker/internal/tracking"
)

// TopicLinkClicked carries one tracking.ClickEvent per visit to the tracking link.
const TopicLinkClicked = "link.clicked"

// NewClickPublisher returns a publish function for the click feed.
func NewClickPublisher(publisher message.Publisher) messaging.Publish[tracking.ClickEvent] {
	return messaging.NewPublishFunc[tracking.ClickEvent](publisher, TopicLinkClicked)
}
