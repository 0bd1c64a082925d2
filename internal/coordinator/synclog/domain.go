// Package synclog defines the journal of cart synchronization operations.
//
// Every operation the cart store runs against the remote backend appends one
// entry per transition. The journal answers "what happened to this order's
// cart and why" and links each entry to its distributed trace.
package synclog

import "time"

// Status is the lifecycle state of one synchronization operation.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompleted    Status = "COMPLETED"
	StatusCompensating Status = "COMPENSATING"
	StatusFailed       Status = "FAILED"
)

// Entry is a single row of the journal.
type Entry struct {
	// OperationID groups all transitions of one operation run.
	OperationID string

	// Operation is the store operation name, e.g. "add_to_cart".
	Operation string

	// OrderID is the remote order the operation acted on. Empty when no
	// order was open.
	OrderID string

	Status Status

	// CurrentStep is the step that just finished or failed.
	CurrentStep string

	// ErrorMessages is a JSON array of failure details.
	ErrorMessages string

	TraceID string
	SpanID  string

	UpdatedAt time.Time
}
