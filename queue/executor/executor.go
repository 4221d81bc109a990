package executor

import (
	"context"
	"fmt"

	"github.com/caasmo/tablebook/db"
)

// JobHandler processes a specific type of job.
type JobHandler interface {
	Handle(ctx context.Context, job db.Job) error
}

// JobExecutor dispatches a claimed job to its handler.
type JobExecutor interface {
	Execute(ctx context.Context, job db.Job) error
}

// DefaultExecutor is the concrete JobExecutor: a registry from job type to
// handler.
type DefaultExecutor struct {
	registry map[string]JobHandler
}

// NewExecutor creates an executor with the given handlers.
func NewExecutor(handlers map[string]JobHandler) *DefaultExecutor {
	return &DefaultExecutor{registry: handlers}
}

// Execute implements the JobExecutor interface.
func (e *DefaultExecutor) Execute(ctx context.Context, job db.Job) error {
	handler, exists := e.registry[job.JobType]
	if !exists {
		return fmt.Errorf("no handler registered for job type: %s", job.JobType)
	}
	return handler.Handle(ctx, job)
}
