package ledger

import (
	"github.com/classiclink/ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CheckBalance enforces the zero-sum invariant on a set of GL entries. The
// comparison is exact decimal equality, no epsilon. It is run before every
// commit and is safe to call on any manually assembled entry set.
func CheckBalance(entries []entity.GLEntry) error {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	if !sum.IsZero() {
		return &UnbalancedLedgerError{Sum: sum}
	}
	return nil
}
