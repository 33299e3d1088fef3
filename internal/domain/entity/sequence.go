package entity

import "time"

// SequenceCounter is a named persistent counter. One row exists per counter
// key; allocation is a single atomic read-modify-write on that row under a
// row lock, so concurrent callers never observe the same value. SubKey scopes
// document-number counters by fiscal year and is empty for entity ID
// counters.
type SequenceCounter struct {
	Name      string    `gorm:"size:100;primaryKey" json:"name"`
	SubKey    string    `gorm:"size:50;primaryKey;default:''" json:"sub_key"`
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the SequenceCounter model
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
