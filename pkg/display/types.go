package display

import (
	"context"
	"time"
)

// Region ids used by the console.
const (
	// RegionAPIResponse shows the outcome of the last endpoint test
	RegionAPIResponse = "api-response"

	// RegionServerTime shows the live clock
	RegionServerTime = "server-time"
)

const (
	// LoadingText is shown while a fetch is in flight
	LoadingText = "Loading..."

	// ErrorPrefix starts every error message written to a region
	ErrorPrefix = "Error: "
)

// Kind tells renderers how to style a region's text.
type Kind string

const (
	KindText    Kind = "text"
	KindLoading Kind = "loading"
	KindError   Kind = "error"
)

// Content is what a region currently shows.
type Content struct {
	Kind      Kind      `json:"kind"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

func Text(text string) Content {
	return Content{Kind: KindText, Text: text}
}

func Loading() Content {
	return Content{Kind: KindLoading, Text: LoadingText}
}

// Error formats err the way error regions display it.
func Error(err error) Content {
	return Content{Kind: KindError, Text: ErrorPrefix + err.Error()}
}

// Region is a display area whose content is replaced on every render.
type Region interface {
	Render(c Content)
}

// Page resolves region ids. A missing region is reported through ok, never an error.
type Page interface {
	Lookup(id string) (Region, bool)
}

// Sink receives a copy of every render, e.g. to echo it to a terminal or mirror it to Redis.
type Sink interface {
	Publish(ctx context.Context, id string, c Content) error
}
