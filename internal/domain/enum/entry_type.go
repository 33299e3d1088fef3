package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// EntryType classifies the role a GL entry plays within its transaction
type EntryType int

const (
	EntryTypeReceivable     EntryType = 0
	EntryTypeRevenue        EntryType = 1
	EntryTypeTaxLiability   EntryType = 2
	EntryTypeCostOfGoods    EntryType = 3
	EntryTypeInventoryAsset EntryType = 4
	EntryTypePayable        EntryType = 5
	EntryTypeExpense        EntryType = 6
)

func (e EntryType) String() string {
	names := [...]string{
		"Receivable", "Revenue", "TaxLiability",
		"CostOfGoods", "InventoryAsset", "Payable", "Expense",
	}
	if int(e) < 0 || int(e) >= len(names) {
		return "Receivable"
	}
	return names[e]
}

func (e EntryType) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.String())
}

func (e *EntryType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*e = EntryType(i)
		return nil
	}
	for i := EntryTypeReceivable; i <= EntryTypeExpense; i++ {
		if i.String() == str {
			*e = i
			return nil
		}
	}
	return nil
}

func (e EntryType) Value() (driver.Value, error) {
	return int64(e), nil
}

func (e *EntryType) Scan(value interface{}) error {
	if value == nil {
		*e = EntryTypeReceivable
		return nil
	}
	switch v := value.(type) {
	case int64:
		*e = EntryType(v)
	case int:
		*e = EntryType(v)
	}
	return nil
}
