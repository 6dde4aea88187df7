package display

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/redhat-appstudio/workshop-console/pkg/logger"
)

// DefaultSinkTimeout bounds how long a single sink publish may take.
const DefaultSinkTimeout = 3 * time.Second

// Board is an in-memory Page with a fixed set of regions. Renders are fanned
// out to every registered sink after the board itself has been updated.
// Renders of one region reach the sinks in the order they were applied to
// the board; different regions do not wait for each other.
type Board struct {
	mu       sync.RWMutex
	contents map[string]Content
	sinks    []Sink
	now      func() time.Time

	// order serializes update and fan-out per region. Read-only after NewBoard.
	order map[string]*sync.Mutex
}

// NewBoard creates a board holding exactly the given region ids.
func NewBoard(ids ...string) *Board {
	contents := make(map[string]Content, len(ids))
	order := make(map[string]*sync.Mutex, len(ids))
	for _, id := range ids {
		contents[id] = Content{Kind: KindText}
		order[id] = &sync.Mutex{}
	}
	return &Board{
		contents: contents,
		now:      time.Now,
		order:    order,
	}
}

// AddSink registers a sink for all later renders.
func (b *Board) AddSink(s Sink) {
	if s == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, s)
}

// Lookup implements Page.
func (b *Board) Lookup(id string) (Region, bool) {
	b.mu.RLock()
	_, ok := b.contents[id]
	b.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return &boardRegion{board: b, id: id}, true
}

// Get returns the current content of one region.
func (b *Board) Get(id string) (Content, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.contents[id]
	return c, ok
}

// Snapshot copies the content of every region.
func (b *Board) Snapshot() map[string]Content {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]Content, len(b.contents))
	for id, c := range b.contents {
		out[id] = c
	}
	return out
}

// IDs lists the board's regions in sorted order.
func (b *Board) IDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]string, 0, len(b.contents))
	for id := range b.contents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (b *Board) render(id string, c Content) {
	lock := b.order[id]
	lock.Lock()
	defer lock.Unlock()

	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = b.now().UTC()
	}

	b.mu.Lock()
	b.contents[id] = c
	sinks := append([]Sink(nil), b.sinks...)
	b.mu.Unlock()

	for _, s := range sinks {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultSinkTimeout)
		if err := s.Publish(ctx, id, c); err != nil {
			logger.Warn("Failed to publish region", zap.String("region", id), zap.Error(err))
		}
		cancel()
	}
}

type boardRegion struct {
	board *Board
	id    string
}

func (r *boardRegion) Render(c Content) {
	r.board.render(r.id, c)
}
