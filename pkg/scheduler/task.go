package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/redhat-appstudio/workshop-console/pkg/logger"
)

// DefaultInterval is used when a task is created with a non-positive interval.
const DefaultInterval = time.Second

// Task runs a function repeatedly on a fixed interval until it is stopped.
type Task struct {
	ID         string
	Interval   time.Duration
	RunAtStart bool
	Run        func(ctx context.Context)

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewTask creates a stopped task. Start must be called to run it.
//
// Parameters:
//   - id: Unique task name within a Scheduler (e.g., "clock")
//   - interval: Time between runs; non-positive means DefaultInterval
//   - runAtStart: Whether to run once as soon as Start is called
//   - run: The work to perform; its context is cancelled by Stop
func NewTask(id string, interval time.Duration, runAtStart bool, run func(ctx context.Context)) *Task {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Task{
		ID:         id,
		Interval:   interval,
		RunAtStart: runAtStart,
		Run:        run,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Start runs the task until it is stopped.
// It blocks until Stop is called, then closes Done.
//
// The run loop:
// 1. Runs the task once immediately when RunAtStart is set
// 2. Sets up a ticker for the configured interval
// 3. Runs the task on every tick, with a context cancelled by Stop
//
// A task can only be started once; later calls log a warning and return.
func (t *Task) Start() {
	if t == nil || t.Run == nil || t.ctx == nil {
		return
	}

	started := false
	t.once.Do(func() { started = true })
	if !started {
		logger.Warnf("Task %s already started", t.ID)
		return
	}
	defer close(t.done)

	logger.Debugf("Starting task %s - interval: %v", t.ID, t.Interval)

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	if t.RunAtStart {
		t.Run(t.ctx)
	}

	for {
		select {
		case <-ticker.C:
			t.Run(t.ctx)
		case <-t.ctx.Done():
			logger.Debugf("Task %s stopped", t.ID)
			return
		}
	}
}

// Stop cancels the task's context. It is safe on nil and never-started tasks.
func (t *Task) Stop() {
	if t != nil && t.cancel != nil {
		t.cancel()
	}
}

// Done is closed once a started task has returned from Start.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
