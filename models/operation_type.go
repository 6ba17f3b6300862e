package models

import "time"

// OperationType is a reference value splitting operations into income and
// expense kinds. Names are unique across the table.
type OperationType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
}
