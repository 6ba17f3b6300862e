package models

import "time"

// Status is a reference value describing how an operation was settled
// (business, personal, tax...). Names are unique across the table.
type Status struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
}
