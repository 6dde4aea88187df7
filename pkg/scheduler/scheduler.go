package scheduler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/redhat-appstudio/workshop-console/pkg/logger"
)

// Scheduler owns a set of named tasks and starts and stops them together.
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[string]*Task
	running bool
	wg      sync.WaitGroup
}

func New() *Scheduler {
	return &Scheduler{tasks: make(map[string]*Task)}
}

// Add registers a task. Ids must be unique and tasks cannot be added after Start.
func (s *Scheduler) Add(t *Task) error {
	if t == nil {
		return fmt.Errorf("task is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running, cannot add task %s", t.ID)
	}
	if _, exists := s.tasks[t.ID]; exists {
		return fmt.Errorf("task %s already registered", t.ID)
	}
	s.tasks[t.ID] = t
	return nil
}

// Get returns a registered task by id.
func (s *Scheduler) Get(id string) (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	return t, ok
}

// IDs lists registered task ids in sorted order.
func (s *Scheduler) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Start launches every task on its own goroutine and returns immediately.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	for id, t := range s.tasks {
		logger.Infof("Starting scheduled task %s (interval: %v)", id, t.Interval)
		s.wg.Add(1)
		go func(t *Task) {
			defer s.wg.Done()
			t.Start()
		}(t)
	}
}

// Stop stops every task and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	for _, t := range s.tasks {
		t.Stop()
	}
	s.mu.Unlock()

	s.wg.Wait()
	logger.Infof("Scheduled tasks stopped")
}
