package health

import (
	"context"
	"time"

	"github.com/redhat-appstudio/workshop-console/pkg/logger"
	"github.com/redhat-appstudio/workshop-console/pkg/scheduler"
)

// Monitor polls the watched application's health endpoint and logs the result.
// It never writes to the display: failures are logged as warnings only.
type Monitor struct {
	client   *Client
	interval time.Duration
	task     *scheduler.Task
}

// NewMonitor creates a health monitor for the watched application.
// It wraps the getter in a health Client and registers Check as a scheduled
// task that runs once at start and then every interval.
//
// The function performs the following operations:
// 1. Sets up the default interval if not specified
// 2. Creates the health client for path (DefaultPath when empty)
// 3. Creates the scheduled task owning the monitor's lifecycle
//
// Parameters:
//   - getter: Decodes JSON from the watched application (usually a fetch.Client)
//   - path: Health-check path relative to the target base URL
//   - interval: Time between polls; non-positive means DefaultCheckInterval
//
// A nil getter is accepted; every poll then logs a warning.
func NewMonitor(getter Getter, path string, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}

	m := &Monitor{
		client:   NewClient(getter, path),
		interval: interval,
	}
	m.task = scheduler.NewTask(TaskID, interval, true, m.Check)
	return m
}

// Check performs a single poll. It logs the status summary on success and a
// warning on failure; it never returns an error or panics.
func (m *Monitor) Check(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("Health check failed: %v", r)
		}
	}()

	if m == nil {
		logger.Warnf("Health check failed: %s", ErrMissingClient)
		return
	}

	start := time.Now()
	status, err := m.client.GetStatus(ctx)
	if err != nil {
		logger.Warnf("Health check failed: %v", err)
		return
	}

	logger.Infof("%s", status.Summary())
	logger.Debugf("Health check of %s completed in %v", m.client.Path(), time.Since(start))
}

// Task exposes the monitor's scheduled task so it can be owned by a Scheduler.
func (m *Monitor) Task() *scheduler.Task {
	if m == nil {
		return nil
	}
	return m.task
}

// Interval returns the delay between polls.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Start begins health monitoring.
// It runs an initial check immediately, then continues checking at the
// configured interval. This method blocks until the monitor is stopped.
//
// The monitoring process:
// 1. Performs an immediate health check
// 2. Sets up a ticker for periodic checks
// 3. Continues monitoring until stopped
//
// When the monitor is owned by a Scheduler, the scheduler calls Start on the
// task instead.
func (m *Monitor) Start() {
	if m == nil || m.task == nil {
		return
	}
	logger.Infof("Starting health monitoring of %s - interval: %v", m.client.Path(), m.interval)
	m.task.Start()
	logger.Infof("Health monitoring stopped")
}

// Stop gracefully stops health monitoring.
// It cancels the task's context, which also aborts an in-flight poll.
// It is safe to call on a nil or never-started monitor.
func (m *Monitor) Stop() {
	if m != nil {
		m.task.Stop()
	}
}
