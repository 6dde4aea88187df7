package clock

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-appstudio/workshop-console/pkg/display"
)

var clockPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} UTC$`)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		t        time.Time
		expected string
	}{
		{
			name:     "zero padded fields",
			t:        time.Date(2026, 1, 2, 3, 4, 5, 999, time.UTC),
			expected: "2026-01-02 03:04:05 UTC",
		},
		{
			name:     "converted to UTC",
			t:        time.Date(2026, 10, 19, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*60*60)),
			expected: "2026-10-20 01:30:00 UTC",
		},
		{
			name:     "four digit year",
			t:        time.Date(999, 12, 31, 23, 59, 59, 0, time.UTC),
			expected: "0999-12-31 23:59:59 UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.t)
			assert.Equal(t, tt.expected, got)
			assert.Regexp(t, clockPattern, got)
		})
	}
}

func TestClock_Tick(t *testing.T) {
	board := display.NewBoard(display.RegionServerTime)
	c := New(board, display.RegionServerTime)
	c.now = func() time.Time { return time.Date(2026, 10, 19, 8, 0, 1, 0, time.UTC) }

	c.Tick()

	got, ok := board.Get(display.RegionServerTime)
	require.True(t, ok)
	assert.Equal(t, display.KindText, got.Kind)
	assert.Equal(t, "2026-10-19 08:00:01 UTC", got.Text)
}

func TestClock_TickWithinOneInterval(t *testing.T) {
	board := display.NewBoard(display.RegionServerTime)
	New(board, "").Tick()

	got, _ := board.Get(display.RegionServerTime)
	require.Regexp(t, clockPattern, got.Text)

	shown, err := time.Parse(Layout, got.Text)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), shown, time.Second)
}

func TestClock_TickWithoutRegion(t *testing.T) {
	board := display.NewBoard(display.RegionAPIResponse)
	c := New(board, display.RegionServerTime)

	assert.NotPanics(t, c.Tick)
	assert.NotPanics(t, (*Clock)(nil).Tick)
	assert.NotPanics(t, New(nil, "").Tick)

	got, _ := board.Get(display.RegionAPIResponse)
	assert.Empty(t, got.Text, "other regions are untouched")
}

func TestClock_Task(t *testing.T) {
	board := display.NewBoard(display.RegionServerTime)
	task := New(board, display.RegionServerTime).Task(time.Hour)
	assert.Equal(t, TaskID, task.ID)
	assert.True(t, task.RunAtStart)

	go task.Start()
	defer task.Stop()

	assert.Eventually(t, func() bool {
		got, _ := board.Get(display.RegionServerTime)
		return got.Text != ""
	}, time.Second, 5*time.Millisecond)
}
