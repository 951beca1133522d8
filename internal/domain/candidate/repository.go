package candidate

import "context"

// Repository is the persistence abstraction over candidate records.
// Implementations return shared.ErrNotFound for unknown IDs on FindByID
// and Update; Delete of an unknown ID is success with no effect.
type Repository interface {
	// List returns the lightweight listing of all candidates in
	// insertion order.
	List(ctx context.Context) ([]Summary, error)
	// Create inserts a blank record. A primary-key collision or an
	// unreachable store is reported as an error.
	Create(ctx context.Context, c *Candidate) error
	// FindByID fetches the full record.
	FindByID(ctx context.Context, id string) (*Candidate, error)
	// Update applies a partial update to the named record.
	Update(ctx context.Context, id string, u Update) error
	// Delete removes the record unconditionally.
	Delete(ctx context.Context, id string) error
}
