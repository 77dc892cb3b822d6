package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/serroba/link-tracker/internal/tracking"
)

// maxDrainBytes bounds how much of a response body is read before the connection is released.
const maxDrainBytes = 64 << 10

// ErrUnexpectedStatus is wrapped by StatusError when the webhook rejects a notification.
var ErrUnexpectedStatus = errors.New("unexpected webhook status")

// StatusError reports a non-2xx webhook response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Webhook posts click notifications to a single incoming-webhook URL.
type Webhook struct {
	client *http.Client
	url    string
}

// NewWebhook creates a webhook notifier. A zero timeout leaves the client unbounded.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// NewWebhookWithClient creates a webhook notifier using the given HTTP client.
func NewWebhookWithClient(url string, client *http.Client) *Webhook {
	return &Webhook{
		client: client,
		url:    url,
	}
}

// Notify sends exactly one POST describing the click. Transport failures and
// non-2xx responses are returned as errors; nothing is retried.
func (w *Webhook) Notify(ctx context.Context, event *tracking.ClickEvent) error {
	payload, err := Encode(BuildMessage(event))
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	return nil
}

// Encode marshals a message without HTML escaping, so '<', '>' and '&' in
// user-supplied values reach the webhook unchanged.
func Encode(msg *Message) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(msg); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Shutdown releases idle connections held by the client.
func (w *Webhook) Shutdown() error {
	w.client.CloseIdleConnections()

	return nil
}
