package services

import (
	"context"
	"sync"
	"time"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
	"github.com/BASILR00T/kawnhub-sub000/internal/core/ports/driving"
	"github.com/BASILR00T/kawnhub-sub000/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler runs background tasks. Currently that is the warm corpus
// refresh, which keeps the cache populated so interactive searches rarely
// pay for a store fetch. Task state and history are held in memory.
type Scheduler struct {
	corpus driving.CorpusService

	mu      sync.Mutex
	tasks   map[string]*domain.ScheduledTask
	history []domain.TaskResult
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	tick time.Duration
	now  func() time.Time
}

// NewScheduler creates a scheduler that refreshes corpus every interval.
// A zero interval registers no task.
func NewScheduler(corpus driving.CorpusService, interval time.Duration) *Scheduler {
	s := &Scheduler{
		corpus: corpus,
		tasks:  make(map[string]*domain.ScheduledTask),
		tick:   time.Minute,
		now:    time.Now,
	}
	if interval > 0 {
		s.tasks[domain.TaskIDCorpusRefresh] = &domain.ScheduledTask{
			ID:       domain.TaskIDCorpusRefresh,
			Name:     "Corpus Refresh",
			Interval: interval,
			Enabled:  true,
		}
		if interval < s.tick {
			s.tick = interval
		}
	}
	return s
}

// Start runs the scheduler loop in the background until Stop or ctx is done.
// Due tasks run immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx, stopCh)
	}()
	return nil
}

// Stop gracefully shuts down the scheduler and waits for running tasks.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// Tasks returns a copy of every registered task.
func (s *Scheduler) Tasks() []domain.ScheduledTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ScheduledTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, *t)
	}
	return out
}

// History returns recent task results, newest last.
func (s *Scheduler) History() []domain.TaskResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TaskResult, len(s.history))
	copy(out, s.history)
	return out
}

// run is the main scheduler loop.
func (s *Scheduler) run(ctx context.Context, stopCh <-chan struct{}) {
	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks executes tasks whose NextRun has passed.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	var due []string
	for id, task := range s.tasks {
		if task.Due(now) {
			due = append(due, id)
		}
	}
	s.mu.Unlock()

	for _, id := range due {
		s.runTask(ctx, id)
	}
}

// runTask executes a single task synchronously and records the outcome.
func (s *Scheduler) runTask(ctx context.Context, id string) {
	result := domain.TaskResult{
		TaskID:    id,
		StartedAt: s.now(),
	}

	var err error
	switch id {
	case domain.TaskIDCorpusRefresh:
		result.ItemsProcessed, err = s.runCorpusRefresh(ctx)
	default:
		logger.Warn("scheduler: unknown task ID: %s", id)
		return
	}

	result.EndedAt = s.now()
	if err != nil {
		result.Error = err.Error()
		logger.Error("scheduler: task %s failed: %v", id, err)
	} else {
		result.Success = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if task, ok := s.tasks[id]; ok {
		task.Record(result)
	}

	s.history = append(s.history, result)
	if extra := len(s.history) - domain.MaxTaskHistory; extra > 0 {
		s.history = append(s.history[:0:0], s.history[extra:]...)
	}
}

// runCorpusRefresh reloads the corpus and reports its size.
func (s *Scheduler) runCorpusRefresh(ctx context.Context) (int, error) {
	if s.corpus == nil {
		return 0, nil
	}
	if err := s.corpus.Refresh(ctx); err != nil {
		return 0, err
	}
	return s.corpus.Stats().TopicCount, nil
}
