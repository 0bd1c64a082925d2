package synclog

import "context"

// Repository persists journal entries. Save appends; entries are never updated.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
}
