package models

import "time"

// Category groups operations under a single operation type. The same name may
// appear under different operation types, hence the composite unique index.
type Category struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Name            string    `gorm:"size:100;not null;uniqueIndex:idx_category_name_type" json:"name"`
	OperationTypeID uint      `gorm:"index;not null;uniqueIndex:idx_category_name_type" json:"operation_type_id"`
}
