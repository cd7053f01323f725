package driving

import (
	"context"

	"github.com/BASILR00T/kawnhub-sub000/internal/core/domain"
)

// Scheduler manages background tasks like warm corpus refresh.
type Scheduler interface {
	// Start begins running scheduled tasks.
	// Returns immediately; tasks run until Stop or context cancellation.
	Start(ctx context.Context) error

	// Stop gracefully stops all running tasks.
	Stop() error

	// Tasks returns the state of every registered task.
	Tasks() []domain.ScheduledTask

	// History returns recent task results, newest last.
	History() []domain.TaskResult
}
