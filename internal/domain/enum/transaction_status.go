package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionStatus represents the lifecycle status of a transaction header.
// Posted is terminal: a posted transaction and its rows are never edited in
// place, corrections are new linked transactions.
type TransactionStatus int

const (
	TransactionStatusDraft  TransactionStatus = 0
	TransactionStatusPosted TransactionStatus = 1
)

func (s TransactionStatus) String() string {
	names := [...]string{"Draft", "Posted"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Draft"
	}
	return names[s]
}

// ParseTransactionStatus converts a string name to a transaction status
func ParseTransactionStatus(s string) (TransactionStatus, bool) {
	switch s {
	case "Draft":
		return TransactionStatusDraft, true
	case "Posted":
		return TransactionStatusPosted, true
	}
	return TransactionStatusDraft, false
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TransactionStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = TransactionStatusDraft
	case "Posted":
		*s = TransactionStatusPosted
	}
	return nil
}

func (s TransactionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TransactionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TransactionStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TransactionStatus(v)
	case int:
		*s = TransactionStatus(v)
	}
	return nil
}
