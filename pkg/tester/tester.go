package tester

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/redhat-appstudio/workshop-console/pkg/display"
	"github.com/redhat-appstudio/workshop-console/pkg/fetch"
	"github.com/redhat-appstudio/workshop-console/pkg/logger"
)

// ErrRegionMissing is returned when the page has no API-response region.
var ErrRegionMissing = errors.New("api response region not found")

// Fetcher returns the JSON body found at path.
type Fetcher interface {
	GetJSON(ctx context.Context, path string) ([]byte, error)
}

// Outcome describes one completed fetch.
type Outcome struct {
	RequestID string          `json:"request_id"`
	Sequence  uint64          `json:"sequence"`
	Path      string          `json:"path"`
	Content   display.Content `json:"content"`
	Duration  string          `json:"duration"`

	// Stale is set when a newer fetch was issued before this one completed
	// and the result was therefore not rendered.
	Stale bool `json:"stale"`
}

// Failed reports whether the fetch ended in an error message.
func (o Outcome) Failed() bool {
	return o.Content.Kind == display.KindError
}

// Options tune a Tester.
type Options struct {
	// RegionID is the region results are written to
	RegionID string

	// DiscardStale keeps a slow response from overwriting a newer one.
	// When false the last response to complete wins.
	DiscardStale bool
}

// Tester fetches arbitrary paths on demand and displays the pretty-printed
// JSON, or an error message, in a single display region.
type Tester struct {
	fetcher Fetcher
	page    display.Page
	opts    Options
	seq     atomic.Uint64

	// mu orders issuing a request against rendering a result, so a stale
	// response can never be rendered after a newer request was issued.
	mu sync.Mutex
}

// New creates an endpoint tester rendering into opts.RegionID of page,
// defaulting to the API-response region. A nil fetcher is allowed; every
// fetch then renders an error.
func New(fetcher Fetcher, page display.Page, opts Options) *Tester {
	if opts.RegionID == "" {
		opts.RegionID = display.RegionAPIResponse
	}
	return &Tester{
		fetcher: fetcher,
		page:    page,
		opts:    opts,
	}
}

// Fetch runs one endpoint test and renders its result into the API-response
// region.
//
// The test process:
// 1. Looks up the API-response region
// 2. Issues a new request id and sequence number and renders "Loading..."
// 3. Performs the GET and pretty-prints the JSON body
// 4. Renders the JSON, or "Error: <description>" when the request or parsing failed
//
// Issuing (step 2) and rendering (step 4) each happen under the tester's lock.
// With DiscardStale set, a result whose sequence is older than the latest
// issued request is not rendered and the Outcome is marked Stale.
//
// Parameters:
//   - ctx: Context for the HTTP request
//   - path: Path on the watched application (e.g., "/api/info")
//
// Returns the Outcome of the test. The error is non-nil only when the page has
// no API-response region; fetch failures are rendered and reported through the
// Outcome instead.
func (t *Tester) Fetch(ctx context.Context, path string) (Outcome, error) {
	region, ok := t.page.Lookup(t.opts.RegionID)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrRegionMissing, t.opts.RegionID)
	}

	outcome := Outcome{
		RequestID: uuid.NewString(),
		Path:      path,
	}
	t.mu.Lock()
	outcome.Sequence = t.seq.Add(1)
	region.Render(display.Loading())
	t.mu.Unlock()
	logger.Debugf("Fetching %s (request %s, seq %d)", path, outcome.RequestID, outcome.Sequence)

	start := time.Now()
	outcome.Content = t.load(ctx, path)
	outcome.Duration = time.Since(start).String()

	t.mu.Lock()
	if t.opts.DiscardStale && t.seq.Load() != outcome.Sequence {
		outcome.Stale = true
		t.mu.Unlock()
		logger.Debugf("Discarding stale response for %s (seq %d)", path, outcome.Sequence)
		return outcome, nil
	}
	region.Render(outcome.Content)
	t.mu.Unlock()

	if outcome.Failed() {
		logger.Warnf("Endpoint test of %s failed: %s", path, outcome.Content.Text)
	} else {
		logger.Infof("Endpoint test of %s succeeded in %s", path, outcome.Duration)
	}
	return outcome, nil
}

// LastSequence is the sequence number of the most recently issued fetch.
func (t *Tester) LastSequence() uint64 {
	return t.seq.Load()
}

func (t *Tester) load(ctx context.Context, path string) display.Content {
	if t.fetcher == nil {
		return display.Error(errors.New("no fetcher configured"))
	}

	body, err := t.fetcher.GetJSON(ctx, path)
	if err != nil {
		return display.Error(err)
	}

	pretty, err := fetch.Pretty(body)
	if err != nil {
		return display.Error(err)
	}
	return display.Text(pretty)
}
