package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports a request that failed input or referential checks
// before any identifier was allocated. Fully recoverable: the caller corrects
// the request and retries, nothing was consumed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// TaxConfigurationError reports a requested tax code that is unknown or
// inactive.
type TaxConfigurationError struct {
	Code   string
	Reason string
}

func (e *TaxConfigurationError) Error() string {
	return fmt.Sprintf("tax code %q: %s", e.Code, e.Reason)
}

// AccountResolutionError reports that a required GL account could not be
// determined for an entry role.
type AccountResolutionError struct {
	Role string
	Ref  string
}

func (e *AccountResolutionError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("no %s account configured", e.Role)
	}
	return fmt.Sprintf("no %s account for %s", e.Role, e.Ref)
}

// UnbalancedLedgerError reports a generated entry set whose signed amounts do
// not sum to zero. This is an internal invariant violation, never expected in
// correct operation, and is surfaced instead of being committed.
type UnbalancedLedgerError struct {
	Sum decimal.Decimal
}

func (e *UnbalancedLedgerError) Error() string {
	return fmt.Sprintf("ledger entries do not balance: sum is %s", e.Sum.StringFixed(2))
}

// AllocationConflictError reports that the sequence allocator could not win
// the counter row within its bounded retry budget. Transient: the caller may
// retry the whole posting.
type AllocationConflictError struct {
	Key      string
	Attempts int
}

func (e *AllocationConflictError) Error() string {
	return fmt.Sprintf("sequence %q: allocation conflict after %d attempts", e.Key, e.Attempts)
}

// CommitError reports that the store rejected the atomic write. The store's
// transactionality guarantees no partial rows remain visible.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("atomic commit failed: %v", e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
