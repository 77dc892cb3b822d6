package handlers

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

var statusPage = template.Must(template.New("status").Parse(`
    <h2>Link Tracker is running ✅</h2>
    <p>Your tracking URL: <a href="/track">{{.TrackURL}}</a></p>
    <p>With UTMs: <code>{{.TrackURL}}?utm_source=instagram&utm_medium=social&utm_campaign=launch</code></p>
`))

// StatusHandler serves the informational page on GET /.
type StatusHandler struct {
	body []byte
}

// NewStatusHandler renders the status page once for the given listen port.
func NewStatusHandler(port int) (*StatusHandler, error) {
	var buf bytes.Buffer

	data := struct{ TrackURL string }{
		TrackURL: fmt.Sprintf("http://localhost:%d/track", port),
	}

	if err := statusPage.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render status page: %w", err)
	}

	return &StatusHandler{body: buf.Bytes()}, nil
}

// Status handles GET / with the pre-rendered page.
func (h *StatusHandler) Status(_ context.Context, _ *struct{}) (*StatusResponse, error) {
	return &StatusResponse{
		ContentType: "text/html; charset=utf-8",
		Body:        h.body,
	}, nil
}
