package tracking

import (
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultUserAgent is recorded when the request carries no User-Agent header.
	DefaultUserAgent = "Unknown"
	// DefaultReferrer is recorded when the request carries no Referer header.
	DefaultReferrer = "Direct"
	// DisplayLimit caps the user agent shown in logs and notifications.
	DisplayLimit = 80
	// TimestampLayout renders timestamps like an en-US locale string.
	TimestampLayout = "1/2/2006, 3:04:05 PM"
)

// UTM holds the optional campaign-tagging query parameters.
type UTM struct {
	Source   string
	Medium   string
	Campaign string
	Content  string
}

// ClickEvent describes a single visit to the tracking link.
type ClickEvent struct {
	Timestamp   string `json:"timestamp"`
	ClientIP    string `json:"client_ip"`
	UserAgent   string `json:"user_agent"`
	Referrer    string `json:"referrer"`
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	UTMContent  string `json:"utm_content,omitempty"`
}

// NewClickEvent builds a ClickEvent, applying defaults for missing headers.
func NewClickEvent(meta RequestMeta, utm UTM, at time.Time, loc *time.Location) *ClickEvent {
	userAgent := meta.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	referrer := meta.Referrer
	if referrer == "" {
		referrer = DefaultReferrer
	}

	return &ClickEvent{
		Timestamp:   FormatTimestamp(at, loc),
		ClientIP:    meta.ClientIP,
		UserAgent:   userAgent,
		Referrer:    referrer,
		UTMSource:   utm.Source,
		UTMMedium:   utm.Medium,
		UTMCampaign: utm.Campaign,
		UTMContent:  utm.Content,
	}
}

// DisplayUserAgent returns the user agent cut to DisplayLimit characters.
func (e *ClickEvent) DisplayUserAgent() string {
	return Truncate(e.UserAgent, DisplayLimit)
}

// LogFields returns the zap fields describing the click.
func (e *ClickEvent) LogFields() []zap.Field {
	fields := []zap.Field{
		zap.String("timestamp", e.Timestamp),
		zap.String("client_ip", e.ClientIP),
		zap.String("referrer", e.Referrer),
		zap.String("user_agent", e.DisplayUserAgent()),
	}

	optional := []struct {
		key   string
		value string
	}{
		{"utm_source", e.UTMSource},
		{"utm_medium", e.UTMMedium},
		{"utm_campaign", e.UTMCampaign},
		{"utm_content", e.UTMContent},
	}

	for _, f := range optional {
		if f.value != "" {
			fields = append(fields, zap.String(f.key, f.value))
		}
	}

	return fields
}

// FormatTimestamp renders t in loc using TimestampLayout.
// A nil location falls back to the process local zone.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	return t.In(loc).Format(TimestampLayout)
}

// Truncate returns s cut to at most limit runes.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	if len(s) <= limit {
		return s
	}

	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
