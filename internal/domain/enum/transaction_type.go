package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionType represents the kind of accounting document being posted
type TransactionType int

const (
	TransactionTypeInvoice    TransactionType = 0
	TransactionTypeCreditMemo TransactionType = 1
	TransactionTypeBill       TransactionType = 2
)

func (t TransactionType) String() string {
	names := [...]string{"Invoice", "CreditMemo", "Bill"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Invoice"
	}
	return names[t]
}

// Prefix returns the document number prefix for this transaction type
func (t TransactionType) Prefix() string {
	prefixes := [...]string{"INV", "CM", "BILL"}
	if int(t) < 0 || int(t) >= len(prefixes) {
		return "INV"
	}
	return prefixes[t]
}

// Multiplier returns the sign applied to generated GL entries: credit memos
// reverse the entries an invoice would produce
func (t TransactionType) Multiplier() int {
	if t == TransactionTypeCreditMemo {
		return -1
	}
	return 1
}

// IsValid reports whether the value is a known transaction type
func (t TransactionType) IsValid() bool {
	return t >= TransactionTypeInvoice && t <= TransactionTypeBill
}

// ParseTransactionType converts a string name to a transaction type
func ParseTransactionType(s string) (TransactionType, bool) {
	switch s {
	case "Invoice":
		return TransactionTypeInvoice, true
	case "CreditMemo":
		return TransactionTypeCreditMemo, true
	case "Bill":
		return TransactionTypeBill, true
	}
	return TransactionTypeInvoice, false
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TransactionType(i)
		return nil
	}
	switch str {
	case "Invoice":
		*t = TransactionTypeInvoice
	case "CreditMemo":
		*t = TransactionTypeCreditMemo
	case "Bill":
		*t = TransactionTypeBill
	}
	return nil
}

func (t TransactionType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	if value == nil {
		*t = TransactionTypeInvoice
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TransactionType(v)
	case int:
		*t = TransactionType(v)
	}
	return nil
}
