package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/caasmo/tablebook/db"
)

type handlerFunc func(ctx context.Context, job db.Job) error

func (f handlerFunc) Handle(ctx context.Context, job db.Job) error {
	return f(ctx, job)
}

func TestExecute_Dispatch(t *testing.T) {
	var handled string
	exec := NewExecutor(map[string]JobHandler{
		"job_a": handlerFunc(func(ctx context.Context, job db.Job) error {
			handled = job.JobType
			return nil
		}),
		"job_b": handlerFunc(func(ctx context.Context, job db.Job) error {
			return errors.New("boom")
		}),
	})

	if err := exec.Execute(context.Background(), db.Job{JobType: "job_a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled != "job_a" {
		t.Errorf("expected job_a to be handled, got %q", handled)
	}

	if err := exec.Execute(context.Background(), db.Job{JobType: "job_b"}); err == nil {
		t.Error("expected the handler error to surface")
	}
}

func TestExecute_UnknownType(t *testing.T) {
	exec := NewExecutor(map[string]JobHandler{})
	if err := exec.Execute(context.Background(), db.Job{JobType: "nope"}); err == nil {
		t.Error("expected an error for an unregistered job type")
	}
}
