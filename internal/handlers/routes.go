package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the tracking link and the status page.
func RegisterRoutes(api huma.API, trackHandler *TrackHandler, statusHandler *StatusHandler) {
	// GET /track - Record click and redirect to destination
	huma.Register(api, huma.Operation{
		OperationID:   "track-click",
		Method:        http.MethodGet,
		Path:          "/track",
		Summary:       "Track click",
		Description:   "Records the click, notifies the webhook and redirects to the destination URL.",
		Tags:          []string{"Tracking"},
		DefaultStatus: http.StatusFound,
	}, trackHandler.Track)

	// GET / - Status page
	huma.Register(api, huma.Operation{
		OperationID: "status-page",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Status page",
		Tags:        []string{"Status"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Informational HTML page",
				Content: map[string]*huma.MediaType{
					"text/html": {},
				},
			},
		},
	}, statusHandler.Status)
}
