package coordinator

import (
	"context"
	"log/slog"

	"github.com/jcmexdev/cart-sync/internal/coordinator/synclog"
)

// Step is a single unit of work of an operation. Compensate undoes the
// effects of a successful Execute.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator runs the steps of one operation in order.
type Orchestrator struct {
	id        string
	operation string
	orderID   string
	steps     []Step
	log       synclog.Repository // nil-safe
}

// NewOrchestrator builds an orchestrator for one operation run. repo may be
// nil, in which case transitions are not journaled.
func NewOrchestrator(id, operation, orderID string, steps []Step, repo synclog.Repository) *Orchestrator {
	return &Orchestrator{
		id:        id,
		operation: operation,
		orderID:   orderID,
		steps:     steps,
		log:       repo,
	}
}

// Start executes the steps sequentially. When a step fails, every step that
// already succeeded is compensated in reverse order and the step error is
// returned unchanged.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.record(ctx, synclog.StatusStarted, "", nil)

	var done []Step
	for _, step := range o.steps {
		slog.DebugContext(ctx, "executing step", "operation", o.operation, "step", step.Name())
		if err := step.Execute(ctx); err != nil {
			slog.WarnContext(ctx, "step failed, compensating",
				"operation", o.operation,
				"step", step.Name(),
				"error", err,
			)
			errs := []string{step.Name() + ": " + err.Error()}
			if len(done) > 0 {
				o.record(ctx, synclog.StatusCompensating, step.Name(), errs)
			}
			errs = append(errs, o.rollback(ctx, done)...)
			o.record(ctx, synclog.StatusFailed, step.Name(), errs)
			return err
		}
		done = append(done, step)
		o.record(ctx, synclog.StatusStepDone, step.Name(), nil)
	}

	o.record(ctx, synclog.StatusCompleted, "", nil)
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, steps []Step) []string {
	var errs []string
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate step",
				"operation", o.operation,
				"step", step.Name(),
				"error", err,
			)
			errs = append(errs, "compensation of "+step.Name()+": "+err.Error())
		}
	}
	return errs
}

func (o *Orchestrator) record(ctx context.Context, status synclog.Status, step string, errs []string) {
	if o.log == nil {
		return
	}
	entry := synclog.NewEntry(ctx, o.id, o.operation, o.orderID, status, step, errs)
	if err := o.log.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to journal sync transition",
			"operation", o.operation,
			"status", status,
			"error", err,
		)
	}
}
