package container

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ErrInvalidOptions is wrapped by every configuration validation failure.
var ErrInvalidOptions = errors.New("invalid options")

// Options is the process-wide configuration, fixed before the listener starts.
type Options struct {
	Port           int    `default:"3000"             help:"Port to listen on"                                     short:"p"`
	DestinationURL string `help:"URL visitors are redirected to"                                         short:"d"`
	WebhookURL     string `help:"Incoming webhook URL that receives click notifications"                 short:"w"`
	NotifyTimeout  int    `default:"10"               help:"Webhook timeout in seconds, 0 waits indefinitely"`
	TimeZone       string `default:"America/New_York" help:"Time zone used for click timestamps"`
	LogFormat      string `default:"console"          help:"Log format: console or json"`
	RedisAddr      string `help:"Redis address for the click feed, empty disables it"                     short:"r"`
}

// Validate checks the options and returns an error wrapping ErrInvalidOptions.
func (o *Options) Validate() error {
	if o.Port <= 0 || o.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidOptions, o.Port)
	}

	if err := validateAbsoluteURL("destination-url", o.DestinationURL); err != nil {
		return err
	}

	if err := validateAbsoluteURL("webhook-url", o.WebhookURL); err != nil {
		return err
	}

	if o.NotifyTimeout < 0 {
		return fmt.Errorf("%w: notify-timeout must not be negative", ErrInvalidOptions)
	}

	if _, err := o.Location(); err != nil {
		return err
	}

	if o.LogFormat != "console" && o.LogFormat != "json" {
		return fmt.Errorf("%w: log-format must be console or json, got %q", ErrInvalidOptions, o.LogFormat)
	}

	return nil
}

// Location loads the configured time zone.
func (o *Options) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(o.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: time-zone: %w", ErrInvalidOptions, err)
	}

	return loc, nil
}

// Timeout returns the webhook timeout. Zero means no timeout.
func (o *Options) Timeout() time.Duration {
	return time.Duration(o.NotifyTimeout) * time.Second
}

// ClickFeedEnabled reports whether clicks are published to Redis.
func (o *Options) ClickFeedEnabled() bool {
	return o.RedisAddr != ""
}

func validateAbsoluteURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidOptions, name)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidOptions, name, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute http(s) URL, got %q", ErrInvalidOptions, name, raw)
	}

	return nil
}
