package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LockMode defines the type of lock to acquire
type LockMode string

const (
	// LockForUpdate locks the selected rows for update (exclusive lock)
	LockForUpdate LockMode = "FOR UPDATE"

	// LockForShare locks the selected rows for shared access (shared lock)
	LockForShare LockMode = "FOR SHARE"
)

var (
	// ErrRowLocked indicates that a row is already locked
	ErrRowLocked = errors.New("row is locked by another transaction")
)

// TxFn is a function that executes in a transaction
type TxFn func(tx *gorm.DB) error

// WithTransaction runs the given function in a database transaction
func WithTransaction(ctx context.Context, fn TxFn) error {
	return withTransactionDB(DB, ctx, fn)
}

// withTransactionDB runs a transaction on the provided DB instance
func withTransactionDB(db *gorm.DB, ctx context.Context, fn TxFn) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r) // re-throw panic after rollback
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ApplyLock applies the specified lock mode to a GORM query
func ApplyLock(query *gorm.DB, lockMode LockMode) *gorm.DB {
	switch lockMode {
	case LockForUpdate:
		return query.Clauses(clause.Locking{Strength: "UPDATE"})
	case LockForShare:
		return query.Clauses(clause.Locking{Strength: "SHARE"})
	default:
		return query
	}
}

// WithLock executes a function with row locking
func WithLock(ctx context.Context, model interface{}, lockMode LockMode, condition string, args []interface{}, fn TxFn) error {
	return WithTransaction(ctx, func(tx *gorm.DB) error {
		query := ApplyLock(tx, lockMode)

		if err := query.Where(condition, args...).First(model).Error; err != nil {
			if err.Error() == "could not obtain lock on row" {
				return ErrRowLocked
			}
			return err
		}

		return fn(tx)
	})
}
