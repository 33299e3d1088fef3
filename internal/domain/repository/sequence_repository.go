package repository

import "context"

// SequenceRepository hands out gap-tolerant monotonic sequence values. Each
// counter is identified by a name plus an optional sub-key (for example a
// document type scoped by fiscal year). A missing counter starts at 1.
type SequenceRepository interface {
	// GetAndIncrement atomically advances the counter and returns the new
	// value. Two concurrent calls never observe the same value. Returns
	// ledger.AllocationConflictError when contention exhausts the retry
	// budget.
	GetAndIncrement(ctx context.Context, name, subKey string) (int64, error)
	// Peek returns the counter's current value without advancing it, 0 when
	// the counter does not exist yet.
	Peek(ctx context.Context, name, subKey string) (int64, error)
}
