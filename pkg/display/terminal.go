package display

import (
	"context"
	"fmt"
	"io"
	"sync"
)

const (
	ansiReset = "\x1b[0m"
	ansiGray  = "\x1b[90m"
	ansiRed   = "\x1b[31m"
)

// TerminalSink echoes renders to a writer, one block per render.
// Loading placeholders are dimmed and errors are red unless colors are disabled.
type TerminalSink struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
	only  map[string]bool
}

// NewTerminalSink writes to w. When ids are given, only those regions are echoed.
func NewTerminalSink(w io.Writer, color bool, ids ...string) *TerminalSink {
	var only map[string]bool
	if len(ids) > 0 {
		only = make(map[string]bool, len(ids))
		for _, id := range ids {
			only[id] = true
		}
	}
	return &TerminalSink{w: w, color: color, only: only}
}

// Publish implements Sink.
func (t *TerminalSink) Publish(_ context.Context, id string, c Content) error {
	if t.only != nil && !t.only[id] {
		return nil
	}

	text := c.Text
	if t.color {
		switch c.Kind {
		case KindLoading:
			text = ansiGray + text + ansiReset
		case KindError:
			text = ansiRed + text + ansiReset
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintf(t.w, "[%s]\n%s\n", id, text)
	return err
}
