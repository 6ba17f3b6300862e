package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger entry tied to the reference catalog.
// The category / operation-type and subcategory / category consistency rules
// are enforced in application code on every write, not by schema-level
// foreign keys. Status and OperationType do carry RESTRICT constraints: they
// are the commit-time backstop for the protect-on-delete rule, so a delete
// racing past the application-level reference count still fails at the store.
// Category and SubCategory have no constraints because their deletes cascade
// regardless of referencing transactions.
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Date            time.Time       `gorm:"type:date;not null;index" json:"date"`
	StatusID        uint            `gorm:"index;not null" json:"status_id"`
	OperationTypeID uint            `gorm:"index;not null" json:"operation_type_id"`
	CategoryID      uint            `gorm:"index;not null" json:"category_id"`
	SubCategoryID   *uint           `gorm:"column:subcategory_id;index" json:"subcategory_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Comment         string          `gorm:"type:text" json:"comment"`

	Status        Status        `gorm:"foreignKey:StatusID;references:ID;constraint:OnDelete:RESTRICT" json:"status"`
	OperationType OperationType `gorm:"foreignKey:OperationTypeID;references:ID;constraint:OnDelete:RESTRICT" json:"operation_type"`
	Category      Category      `gorm:"foreignKey:CategoryID;references:ID;constraint:-" json:"category"`
	SubCategory   *SubCategory  `gorm:"foreignKey:SubCategoryID;references:ID;constraint:-" json:"subcategory"`
}
