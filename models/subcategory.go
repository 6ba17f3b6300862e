package models

import "time"

// SubCategory refines a Category. Unique per (name, category).
type SubCategory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Name       string    `gorm:"size:100;not null;uniqueIndex:idx_subcategory_name_cat" json:"name"`
	CategoryID uint      `gorm:"index;not null;uniqueIndex:idx_subcategory_name_cat" json:"category_id"`
}
