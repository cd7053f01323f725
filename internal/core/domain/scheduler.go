package domain

import "time"

// MaxTaskHistory is the number of task results the scheduler retains.
const MaxTaskHistory = 100

// TaskIDCorpusRefresh identifies the warm corpus refresh.
const TaskIDCorpusRefresh = "corpus-refresh"

// ScheduledTask is a background job run every Interval.
type ScheduledTask struct {
	ID       string
	Name     string
	Interval time.Duration
	Enabled  bool

	LastRun     time.Time
	NextRun     time.Time
	LastSuccess time.Time
	// LastError is empty after a successful run.
	LastError string
}

// Due reports whether the task should run at now. A task that has never
// run is always due.
func (t *ScheduledTask) Due(now time.Time) bool {
	if !t.Enabled {
		return false
	}
	return t.NextRun.IsZero() || !t.NextRun.After(now)
}

// Record folds a finished run into the task and schedules the next one
// Interval after the run ended.
func (t *ScheduledTask) Record(r TaskResult) {
	t.LastRun = r.StartedAt
	t.NextRun = r.EndedAt.Add(t.Interval)
	if r.Success {
		t.LastError = ""
		t.LastSuccess = r.EndedAt
		return
	}
	t.LastError = r.Error
}

// TaskResult is the outcome of one run.
type TaskResult struct {
	TaskID    string
	StartedAt time.Time
	EndedAt   time.Time
	Success   bool
	Error     string

	// ItemsProcessed is the number of topics a refresh loaded.
	ItemsProcessed int
}

// Duration returns how long the run took.
func (r TaskResult) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
