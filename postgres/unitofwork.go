package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
)

// UnitOfWork is the commit boundary for staged repository changes. Update,
// Delete and Attach register work here instead of writing immediately;
// SaveChanges flushes everything that was staged in a single transaction.
// Attach-only entities are tracked but produce no statements.
type UnitOfWork struct {
	db      *DB
	mu      sync.Mutex
	staged  []func(ctx context.Context, tx pgx.Tx) error
	tracked []any
}

func NewUnitOfWork(db *DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Track begins tracking an entity without staging any change.
func (u *UnitOfWork) Track(entity any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.tracked = append(u.tracked, entity)
}

// TrackedCount returns the number of tracked entities.
func (u *UnitOfWork) TrackedCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.tracked)
}

// Stage registers a change to be executed on the next SaveChanges.
func (u *UnitOfWork) Stage(change func(ctx context.Context, tx pgx.Tx) error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.staged = append(u.staged, change)
}

// PendingCount returns the number of staged, uncommitted changes.
func (u *UnitOfWork) PendingCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.staged)
}

// SaveChanges executes every staged change inside one transaction, in the
// order they were staged. On success the unit of work is reset; on failure
// the transaction rolls back and the staged changes remain for a retry.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	u.mu.Lock()
	staged := u.staged
	u.mu.Unlock()
	if len(staged) == 0 {
		return nil
	}

	err := pgx.BeginFunc(ctx, u.db, func(tx pgx.Tx) error {
		for _, change := range staged {
			if err := change(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cannot save staged changes: %w", ConvertPgError(err))
	}

	u.mu.Lock()
	u.staged = nil
	u.tracked = nil
	u.mu.Unlock()
	return nil
}
