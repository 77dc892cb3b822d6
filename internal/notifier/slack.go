package notifier

import (
	"github.com/serroba/link-tracker/internal/tracking"
)

const (
	summaryText = "🛒 *Someone clicked your product link!*"
	headerText  = "🛒 Product Link Clicked!"
)

// Text is a Slack text composition object.
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Block is a Slack layout block. Header blocks carry Text, section blocks carry Fields.
type Block struct {
	Type   string `json:"type"`
	Text   *Text  `json:"text,omitempty"`
	Fields []Text `json:"fields,omitempty"`
}

// Message is the webhook payload.
type Message struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks"`
}

// BuildMessage renders a click as a Slack message: a header block followed by a
// section listing the fixed fields and whichever UTM parameters are present.
func BuildMessage(event *tracking.ClickEvent) *Message {
	fields := []Text{
		field("Time", event.Timestamp),
		field("IP Address", event.ClientIP),
		field("Referrer", event.Referrer),
		field("Device/Browser", event.DisplayUserAgent()),
	}

	utm := []struct {
		label string
		value string
	}{
		{"UTM Source", event.UTMSource},
		{"UTM Medium", event.UTMMedium},
		{"UTM Campaign", event.UTMCampaign},
		{"UTM Content", event.UTMContent},
	}

	for _, u := range utm {
		if u.value != "" {
			fields = append(fields, field(u.label, u.value))
		}
	}

	return &Message{
		Text: summaryText,
		Blocks: []Block{
			{Type: "header", Text: &Text{Type: "plain_text", Text: headerText}},
			{Type: "section", Fields: fields},
		},
	}
}

func field(label, value string) Text {
	return Text{Type: "mrkdwn", Text: "*" + label + ":*\n" + value}
}
