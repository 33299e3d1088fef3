package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AccountType classifies GL accounts in the chart of accounts
type AccountType int

const (
	AccountTypeAsset     AccountType = 0
	AccountTypeLiability AccountType = 1
	AccountTypeEquity    AccountType = 2
	AccountTypeIncome    AccountType = 3
	AccountTypeExpense   AccountType = 4
)

func (a AccountType) String() string {
	names := [...]string{"Asset", "Liability", "Equity", "Income", "Expense"}
	if int(a) < 0 || int(a) >= len(names) {
		return "Asset"
	}
	return names[a]
}

// IsValid reports whether the value is a known account type
func (a AccountType) IsValid() bool {
	return a >= AccountTypeAsset && a <= AccountTypeExpense
}

// ParseAccountType converts a string name to an account type
func ParseAccountType(s string) (AccountType, bool) {
	for i := AccountTypeAsset; i <= AccountTypeExpense; i++ {
		if i.String() == s {
			return i, true
		}
	}
	return AccountTypeAsset, false
}

// BalanceFactor returns +1 for debit-normal accounts and -1 for
// credit-normal accounts
func (a AccountType) BalanceFactor() int {
	switch a {
	case AccountTypeAsset, AccountTypeExpense:
		return 1
	default:
		return -1
	}
}

func (a AccountType) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *AccountType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*a = AccountType(i)
		return nil
	}
	for i := AccountTypeAsset; i <= AccountTypeExpense; i++ {
		if i.String() == str {
			*a = i
			return nil
		}
	}
	return nil
}

func (a AccountType) Value() (driver.Value, error) {
	return int64(a), nil
}

func (a *AccountType) Scan(value interface{}) error {
	if value == nil {
		*a = AccountTypeAsset
		return nil
	}
	switch v := value.(type) {
	case int64:
		*a = AccountType(v)
	case int:
		*a = AccountType(v)
	}
	return nil
}
