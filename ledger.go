package main

import (
	"fmt"
	"time"

	"cashflow/models"

	"github.com/shopspring/decimal"
)

// transactionInput carries resolved-and-validated-to-be fields for a
// transaction write. Both create and update run through the same pipeline:
// resolve every referenced id, validate the hierarchy, then persist.
type transactionInput struct {
	Date            time.Time
	StatusID        uint
	OperationTypeID uint
	CategoryID      uint
	SubCategoryID   *uint
	Amount          decimal.Decimal
	Comment         string
}

// validateTransactionRefs checks the reference hierarchy of a transaction:
// the category must belong to the stated operation type, and the subcategory,
// when present, must belong to the stated category. The category check runs
// first; if both are wrong only the category mismatch is reported.
func validateTransactionRefs(opType models.OperationType, cat models.Category, sub *models.SubCategory) error {
	if cat.OperationTypeID != opType.ID {
		return &ValidationError{Reason: fmt.Sprintf(
			"category %q does not belong to operation type %q", cat.Name, opType.Name)}
	}
	if sub != nil && sub.CategoryID != cat.ID {
		return &ValidationError{Reason: fmt.Sprintf(
			"subcategory %q does not belong to category %q", sub.Name, cat.Name)}
	}
	return nil
}

// resolveRefs loads every reference row named by the input, failing with
// ErrNotFound on the first unresolvable id.
func resolveRefs(in transactionInput) (models.OperationType, models.Category, *models.SubCategory, error) {
	if _, err := getByID[models.Status](in.StatusID); err != nil {
		return models.OperationType{}, models.Category{}, nil, err
	}
	opType, err := getByID[models.OperationType](in.OperationTypeID)
	if err != nil {
		return models.OperationType{}, models.Category{}, nil, err
	}
	cat, err := getByID[models.Category](in.CategoryID)
	if err != nil {
		return models.OperationType{}, models.Category{}, nil, err
	}
	var sub *models.SubCategory
	if in.SubCategoryID != nil {
		s, err := getByID[models.SubCategory](*in.SubCategoryID)
		if err != nil {
			return models.OperationType{}, models.Category{}, nil, err
		}
		sub = &s
	}
	return opType, cat, sub, nil
}

func createTransaction(in transactionInput) (models.Transaction, error) {
	opType, cat, sub, err := resolveRefs(in)
	if err != nil {
		return models.Transaction{}, err
	}
	if err := validateTransactionRefs(opType, cat, sub); err != nil {
		return models.Transaction{}, err
	}
	tr := models.Transaction{
		Date:            in.Date,
		StatusID:        in.StatusID,
		OperationTypeID: in.OperationTypeID,
		CategoryID:      in.CategoryID,
		SubCategoryID:   in.SubCategoryID,
		Amount:          in.Amount,
		Comment:         in.Comment,
	}
	if err := db.Create(&tr).Error; err != nil {
		return models.Transaction{}, err
	}
	return tr, nil
}

// updateTransaction revalidates the full hierarchy against the NEW field
// values; the stored row never influences validation.
func updateTransaction(id uint, in transactionInput) (models.Transaction, error) {
	tr, err := getByID[models.Transaction](id)
	if err != nil {
		return models.Transaction{}, err
	}
	opType, cat, sub, err := resolveRefs(in)
	if err != nil {
		return models.Transaction{}, err
	}
	if err := validateTransactionRefs(opType, cat, sub); err != nil {
		return models.Transaction{}, err
	}
	tr.Date = in.Date
	tr.StatusID = in.StatusID
	tr.OperationTypeID = in.OperationTypeID
	tr.CategoryID = in.CategoryID
	tr.SubCategoryID = in.SubCategoryID
	tr.Amount = in.Amount
	tr.Comment = in.Comment
	if err := db.Save(&tr).Error; err != nil {
		return models.Transaction{}, err
	}
	return tr, nil
}

// deleteTransaction is an unconditional hard delete; transactions are leaves.
func deleteTransaction(id uint) error {
	res := db.Delete(&models.Transaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// listTransactions applies the date-range predicate plus any equality filters
// and returns rows newest first (date, then creation time).
func listTransactions(f transactionFilter) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0)
	q := db.Model(&models.Transaction{}).
		Preload("Status").Preload("OperationType").Preload("Category").Preload("SubCategory").
		Where("date >= ? AND date < ?", f.DateFrom, f.DateTo.AddDate(0, 0, 1))
	if f.StatusID != nil {
		q = q.Where("status_id = ?", *f.StatusID)
	}
	if f.OperationTypeID != nil {
		q = q.Where("operation_type_id = ?", *f.OperationTypeID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.SubCategoryID != nil {
		q = q.Where("subcategory_id = ?", *f.SubCategoryID)
	}
	err := q.Order("date desc, created_at desc").Find(&out).Error
	return out, err
}
