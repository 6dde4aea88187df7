package clock

import (
	"context"
	"time"

	"github.com/redhat-appstudio/workshop-console/pkg/display"
	"github.com/redhat-appstudio/workshop-console/pkg/scheduler"
)

// TaskID identifies the clock's scheduled task.
const TaskID = "clock"

// Layout renders wall-clock time as "YYYY-MM-DD HH:MM:SS UTC".
const Layout = "2006-01-02 15:04:05 UTC"

// Format renders t in UTC using Layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Clock writes the current time into a display region.
type Clock struct {
	page     display.Page
	regionID string
	now      func() time.Time
}

// New creates a clock rendering into regionID of page.
func New(page display.Page, regionID string) *Clock {
	if regionID == "" {
		regionID = display.RegionServerTime
	}
	return &Clock{
		page:     page,
		regionID: regionID,
		now:      time.Now,
	}
}

// Tick renders the current time. It does nothing when the region is absent.
func (c *Clock) Tick() {
	if c == nil || c.page == nil {
		return
	}
	region, ok := c.page.Lookup(c.regionID)
	if !ok {
		return
	}
	region.Render(display.Text(Format(c.now())))
}

// Task wraps the clock in a scheduled task that also ticks immediately.
func (c *Clock) Task(interval time.Duration) *scheduler.Task {
	return scheduler.NewTask(TaskID, interval, true, func(context.Context) {
		c.Tick()
	})
}
