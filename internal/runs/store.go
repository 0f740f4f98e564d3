package runs

import "context"

// Store persists run records. List returns newest first.
type Store interface {
	Record(ctx context.Context, run Run) error
	List(ctx context.Context, limit int) ([]Run, error)
}
