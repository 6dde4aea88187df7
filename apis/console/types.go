package console

import "github.com/redhat-appstudio/workshop-console/pkg/display"

// FetchRequest is the body accepted by POST /api/v1/fetch.
type FetchRequest struct {
	// Path is the endpoint on the watched application (e.g., "/api/info")
	Path string `json:"path"`
}

// RegionResponse is one display region and what it currently shows.
type RegionResponse struct {
	ID      string          `json:"id"`
	Content display.Content `json:"content"`
}

// RegionsResponse lists every display region.
type RegionsResponse struct {
	Regions []RegionResponse `json:"regions"`
}

// PresetsResponse lists the quick-test paths.
type PresetsResponse struct {
	Presets []string `json:"presets"`
}
