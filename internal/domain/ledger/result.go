package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// State is the posting state machine position a request reached.
type State int

const (
	StateReceived State = iota
	StateValidated
	StateNumbered
	StateComputed
	StateBalanced
	StateCommitted
	StateRejected
	StateFailed
)

func (s State) String() string {
	names := [...]string{
		"Received", "Validated", "Numbered", "Computed",
		"Balanced", "Committed", "Rejected", "Failed",
	}
	if int(s) < 0 || int(s) >= len(names) {
		return "Received"
	}
	return names[s]
}

// Receipt is the successful outcome of a posting: the committed header's
// allocated identifier, its document number, and the posted total.
type Receipt struct {
	TransactionID  int64           `json:"transaction_id"`
	DocumentNumber string          `json:"document_number"`
	Total          decimal.Decimal `json:"total"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// PostingError is the failed outcome of a posting. State tells whether
// anything was consumed: Rejected failed before numbering and consumed
// nothing; Failed consumed (burned) DocumentNumber, which is never reused.
type PostingError struct {
	State          State
	DocumentNumber string
	Err            error
}

func (e *PostingError) Error() string {
	if e.DocumentNumber != "" {
		return fmt.Sprintf("posting %s (document %s): %v", e.State, e.DocumentNumber, e.Err)
	}
	return fmt.Sprintf("posting %s: %v", e.State, e.Err)
}

func (e *PostingError) Unwrap() error {
	return e.Err
}
