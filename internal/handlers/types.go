package handlers

// TrackRequest is the request for the tracking link. All parameters are optional.
type TrackRequest struct {
	UTMSource   string `doc:"Campaign source"   example:"instagram" query:"utm_source"`
	UTMMedium   string `doc:"Campaign medium"   example:"social"    query:"utm_medium"`
	UTMCampaign string `doc:"Campaign name"     example:"launch"    query:"utm_campaign"`
	UTMContent  string `doc:"Campaign content"  example:"story"     query:"utm_content"`
}

// RedirectResponse is an empty-bodied redirect.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The destination URL" header:"Location"`
}

// StatusResponse is the HTML status page.
type StatusResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
