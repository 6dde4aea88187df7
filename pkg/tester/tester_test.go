package tester

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-appstudio/workshop-console/pkg/display"
	"github.com/redhat-appstudio/workshop-console/pkg/fetch"
)

// gatedFetcher returns canned bodies; paths listed in gates block until released.
type gatedFetcher struct {
	bodies  map[string]string
	gates   map[string]chan struct{}
	entered chan string
}

func (g *gatedFetcher) GetJSON(ctx context.Context, path string) ([]byte, error) {
	if gate, ok := g.gates[path]; ok {
		if g.entered != nil {
			g.entered <- path
		}
		<-gate
	}
	body, ok := g.bodies[path]
	if !ok {
		return nil, errors.New("no fixture for " + path)
	}
	return []byte(body), nil
}

type recordingSink struct {
	mu       sync.Mutex
	contents []display.Content
}

func (r *recordingSink) Publish(_ context.Context, _ string, c display.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contents = append(r.contents, c)
	return nil
}

func (r *recordingSink) kinds() []display.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]display.Kind, 0, len(r.contents))
	for _, c := range r.contents {
		kinds = append(kinds, c.Kind)
	}
	return kinds
}

// pausingPage holds the render of any content containing hold until release
// is closed, leaving room for another fetch to run in between.
type pausingPage struct {
	*display.Board
	hold    string
	paused  chan struct{}
	release chan struct{}
}

func (p *pausingPage) Lookup(id string) (display.Region, bool) {
	region, ok := p.Board.Lookup(id)
	if !ok {
		return nil, false
	}
	return &pausingRegion{Region: region, page: p}, true
}

type pausingRegion struct {
	display.Region
	page *pausingPage
}

func (r *pausingRegion) Render(c display.Content) {
	if strings.Contains(c.Text, r.page.hold) {
		close(r.page.paused)
		<-r.page.release
	}
	r.Region.Render(c)
}

func waitOutcome(t *testing.T, ch <-chan Outcome, what string) Outcome {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(2 * time.Second):
		t.Fatalf("%s fetch did not complete", what)
		return Outcome{}
	}
}

func newWorkshopApp(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/info", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"app":"Cloud Workshop","environment":"dev","port":8080}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<h1>404</h1>"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestTester_Fetch_ValidJSON(t *testing.T) {
	server := newWorkshopApp(t)
	board := display.NewBoard(display.RegionAPIResponse)
	sink := &recordingSink{}
	board.AddSink(sink)

	tr := New(fetch.NewClient(fetch.Config{BaseURL: server.URL}), board, Options{DiscardStale: true})
	outcome, err := tr.Fetch(context.Background(), "/api/info")
	require.NoError(t, err)

	expected := "{\n  \"app\": \"Cloud Workshop\",\n  \"environment\": \"dev\",\n  \"port\": 8080\n}"
	got, _ := board.Get(display.RegionAPIResponse)
	assert.Equal(t, display.KindText, got.Kind)
	assert.Equal(t, expected, got.Text)

	assert.Equal(t, "/api/info", outcome.Path)
	assert.Equal(t, uint64(1), outcome.Sequence)
	assert.NotEmpty(t, outcome.RequestID)
	assert.False(t, outcome.Stale)
	assert.False(t, outcome.Failed())
	assert.Equal(t, []display.Kind{display.KindLoading, display.KindText}, sink.kinds(), "loading placeholder shown first")
}

func TestTester_Fetch_Failures(t *testing.T) {
	server := newWorkshopApp(t)
	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name        string
		baseURL     string
		path        string
		errContains string
	}{
		{name: "invalid json", baseURL: server.URL, path: "/nonexistent", errContains: fetch.ErrJSONParse},
		{name: "network error", baseURL: closedURL, path: "/api/info", errContains: fetch.ErrHTTPRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := display.NewBoard(display.RegionAPIResponse)
			tr := New(fetch.NewClient(fetch.Config{BaseURL: tt.baseURL}), board, Options{})

			outcome, err := tr.Fetch(context.Background(), tt.path)
			require.NoError(t, err, "fetch failures are displayed, not returned")
			assert.True(t, outcome.Failed())

			got, _ := board.Get(display.RegionAPIResponse)
			assert.Equal(t, display.KindError, got.Kind)
			assert.Contains(t, got.Text, display.ErrorPrefix)
			assert.Contains(t, got.Text, tt.errContains)
		})
	}
}

func TestTester_Fetch_ErrorDescription(t *testing.T) {
	board := display.NewBoard(display.RegionAPIResponse)
	tr := New(&gatedFetcher{}, board, Options{})

	_, err := tr.Fetch(context.Background(), "/api/missing")
	require.NoError(t, err)

	got, _ := board.Get(display.RegionAPIResponse)
	assert.Equal(t, "Error: no fixture for /api/missing", got.Text)
}

func TestTester_Fetch_MissingRegion(t *testing.T) {
	board := display.NewBoard(display.RegionServerTime)
	tr := New(&gatedFetcher{}, board, Options{})

	_, err := tr.Fetch(context.Background(), "/api/info")
	assert.ErrorIs(t, err, ErrRegionMissing)
	assert.Equal(t, uint64(0), tr.LastSequence(), "no request is issued without a region")
}

func TestTester_Fetch_NilFetcher(t *testing.T) {
	board := display.NewBoard(display.RegionAPIResponse)
	tr := New(nil, board, Options{})

	outcome, err := tr.Fetch(context.Background(), "/api/info")
	require.NoError(t, err)
	assert.True(t, outcome.Failed())
}

// raceFetches issues /slow, waits until its request is in flight, then
// completes /fast before releasing /slow.
func raceFetches(t *testing.T, discardStale bool) (*display.Board, Outcome, Outcome) {
	t.Helper()
	gate := make(chan struct{})
	fetcher := &gatedFetcher{
		bodies:  map[string]string{"/slow": `{"which":"slow"}`, "/fast": `{"which":"fast"}`},
		gates:   map[string]chan struct{}{"/slow": gate},
		entered: make(chan string, 1),
	}
	board := display.NewBoard(display.RegionAPIResponse)
	tr := New(fetcher, board, Options{DiscardStale: discardStale})

	slowDone := make(chan Outcome, 1)
	go func() {
		outcome, err := tr.Fetch(context.Background(), "/slow")
		assert.NoError(t, err)
		slowDone <- outcome
	}()
	select {
	case <-fetcher.entered:
	case <-time.After(time.Second):
		t.Fatal("slow fetch never started")
	}

	fast, err := tr.Fetch(context.Background(), "/fast")
	require.NoError(t, err)

	close(gate)
	var slow Outcome
	select {
	case slow = <-slowDone:
	case <-time.After(time.Second):
		t.Fatal("slow fetch did not complete")
	}
	return board, slow, fast
}

func TestTester_Fetch_DiscardStale(t *testing.T) {
	board, slow, fast := raceFetches(t, true)

	assert.True(t, slow.Stale)
	assert.False(t, fast.Stale)
	assert.Equal(t, uint64(1), slow.Sequence)
	assert.Equal(t, uint64(2), fast.Sequence)

	got, _ := board.Get(display.RegionAPIResponse)
	assert.Equal(t, "{\n  \"which\": \"fast\"\n}", got.Text, "newest request wins")
}

func TestTester_Fetch_LastToCompleteWins(t *testing.T) {
	board, slow, _ := raceFetches(t, false)

	assert.False(t, slow.Stale)
	got, _ := board.Get(display.RegionAPIResponse)
	assert.Equal(t, "{\n  \"which\": \"slow\"\n}", got.Text, "slow response overwrites the newer one")
}

func TestTester_Fetch_NewerRequestOwnsRegion(t *testing.T) {
	fetcher := &gatedFetcher{
		bodies: map[string]string{"/slow": `{"which":"slow"}`, "/fast": `{"which":"fast"}`},
	}
	page := &pausingPage{
		Board:   display.NewBoard(display.RegionAPIResponse),
		hold:    "slow",
		paused:  make(chan struct{}),
		release: make(chan struct{}),
	}
	tr := New(fetcher, page, Options{DiscardStale: true})

	slowDone := make(chan Outcome, 1)
	go func() {
		outcome, err := tr.Fetch(context.Background(), "/slow")
		assert.NoError(t, err)
		slowDone <- outcome
	}()
	select {
	case <-page.paused:
	case <-time.After(time.Second):
		t.Fatal("slow result was never rendered")
	}

	// /slow already passed its stale check and is rendering; /fast is issued now.
	fastDone := make(chan Outcome, 1)
	go func() {
		outcome, err := tr.Fetch(context.Background(), "/fast")
		assert.NoError(t, err)
		fastDone <- outcome
	}()
	time.Sleep(50 * time.Millisecond)
	close(page.release)

	slow := waitOutcome(t, slowDone, "slow")
	fast := waitOutcome(t, fastDone, "fast")

	assert.Equal(t, uint64(1), slow.Sequence)
	assert.Equal(t, uint64(2), fast.Sequence)
	assert.False(t, fast.Stale)

	got, _ := page.Get(display.RegionAPIResponse)
	assert.Equal(t, "{\n  \"which\": \"fast\"\n}", got.Text, "latest issued request owns the region")
}
