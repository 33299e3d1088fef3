package repository

import (
	"context"
	"errors"
	"time"

	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/classiclink/ledger-api/internal/domain/ledger"
	domainRepo "github.com/classiclink/ledger-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db         *gorm.DB
	maxRetries int
	backoff    time.Duration
}

// NewSequenceRepository creates a new sequence repository. maxRetries bounds
// how often a contended allocation is retried before it fails with
// AllocationConflictError.
func NewSequenceRepository(db *gorm.DB, maxRetries int, backoff time.Duration) domainRepo.SequenceRepository {
	if maxRetries < 1 {
		maxRetries = 3
	}
	if backoff <= 0 {
		backoff = 10 * time.Millisecond
	}
	return &sequenceRepository{db: db, maxRetries: maxRetries, backoff: backoff}
}

// GetAndIncrement advances the counter inside its own short transaction,
// holding a FOR UPDATE lock on the counter row so concurrent allocators
// serialize instead of double-issuing. A counter that does not exist yet is
// created with value 1. Serialization failures are retried with linear
// backoff up to the configured budget.
func (r *sequenceRepository) GetAndIncrement(ctx context.Context, name, subKey string) (int64, error) {
	var value int64

	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var counter entity.SequenceCounter
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("name = ? AND sub_key = ?", name, subKey).
				First(&counter).Error

			if errors.Is(err, gorm.ErrRecordNotFound) {
				counter = entity.SequenceCounter{Name: name, SubKey: subKey, LastValue: 1}
				if err := tx.Create(&counter).Error; err != nil {
					return err
				}
				value = 1
				return nil
			}
			if err != nil {
				return err
			}

			counter.LastValue++
			if err := tx.Save(&counter).Error; err != nil {
				return err
			}
			value = counter.LastValue
			return nil
		})
		if err == nil {
			return value, nil
		}

		// Concurrent create of a missing counter races on the primary key;
		// the loser retries and takes the locked-read path.
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(r.backoff * time.Duration(attempt)):
		}
	}

	return 0, &ledger.AllocationConflictError{Key: counterKey(name, subKey), Attempts: r.maxRetries}
}

func (r *sequenceRepository) Peek(ctx context.Context, name, subKey string) (int64, error) {
	var counter entity.SequenceCounter
	err := r.db.WithContext(ctx).
		Where("name = ? AND sub_key = ?", name, subKey).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return counter.LastValue, nil
}

func counterKey(name, subKey string) string {
	if subKey == "" {
		return name
	}
	return name + "/" + subKey
}
