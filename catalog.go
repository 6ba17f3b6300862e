package main

import (
	"errors"
	"fmt"
	"strings"

	"cashflow/models"

	"gorm.io/gorm"
)

// Reference catalog operations. Delete rules differ on purpose:
// Status and OperationType are protected while transactions reference them,
// Category and SubCategory are hierarchical groupings and cascade instead.

func createStatus(name string) (models.Status, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Status{}, &ValidationError{Reason: "name is required"}
	}
	var cnt int64
	db.Model(&models.Status{}).Where("name = ?", name).Count(&cnt)
	if cnt > 0 {
		return models.Status{}, ErrDuplicateName
	}
	st := models.Status{Name: name}
	if err := db.Create(&st).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the pre-check
			return models.Status{}, ErrDuplicateName
		}
		return models.Status{}, err
	}
	return st, nil
}

func updateStatus(id uint, name string) (models.Status, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Status{}, &ValidationError{Reason: "name is required"}
	}
	var st models.Status
	if err := db.First(&st, id).Error; err != nil {
		return models.Status{}, ErrNotFound
	}
	var cnt int64
	db.Model(&models.Status{}).Where("name = ? AND id <> ?", name, id).Count(&cnt)
	if cnt > 0 {
		return models.Status{}, ErrDuplicateName
	}
	st.Name = name
	if err := db.Save(&st).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.Status{}, ErrDuplicateName
		}
		return models.Status{}, err
	}
	return st, nil
}

// deleteStatus refuses to delete a status still referenced by transactions.
func deleteStatus(id uint) error {
	var st models.Status
	if err := db.First(&st, id).Error; err != nil {
		return ErrNotFound
	}
	var cnt int64
	db.Model(&models.Transaction{}).Where("status_id = ?", id).Count(&cnt)
	if cnt > 0 {
		return ErrInUse
	}
	return db.Delete(&models.Status{}, id).Error
}

func createOperationType(name string) (models.OperationType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.OperationType{}, &ValidationError{Reason: "name is required"}
	}
	var cnt int64
	db.Model(&models.OperationType{}).Where("name = ?", name).Count(&cnt)
	if cnt > 0 {
		return models.OperationType{}, ErrDuplicateName
	}
	ot := models.OperationType{Name: name}
	if err := db.Create(&ot).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.OperationType{}, ErrDuplicateName
		}
		return models.OperationType{}, err
	}
	return ot, nil
}

func updateOperationType(id uint, name string) (models.OperationType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.OperationType{}, &ValidationError{Reason: "name is required"}
	}
	var ot models.OperationType
	if err := db.First(&ot, id).Error; err != nil {
		return models.OperationType{}, ErrNotFound
	}
	var cnt int64
	db.Model(&models.OperationType{}).Where("name = ? AND id <> ?", name, id).Count(&cnt)
	if cnt > 0 {
		return models.OperationType{}, ErrDuplicateName
	}
	ot.Name = name
	if err := db.Save(&ot).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.OperationType{}, ErrDuplicateName
		}
		return models.OperationType{}, err
	}
	return ot, nil
}

// deleteOperationType is protected against referencing transactions; once
// clear it removes the whole subtree (categories and their subcategories)
// in one database transaction so a failed step leaves nothing half-deleted.
func deleteOperationType(id uint) error {
	var ot models.OperationType
	if err := db.First(&ot, id).Error; err != nil {
		return ErrNotFound
	}
	var cnt int64
	db.Model(&models.Transaction{}).Where("operation_type_id = ?", id).Count(&cnt)
	if cnt > 0 {
		return ErrInUse
	}
	return db.Transaction(func(tx *gorm.DB) error {
		catIDs := tx.Model(&models.Category{}).Select("id").Where("operation_type_id = ?", id)
		if err := tx.Where("category_id IN (?)", catIDs).Delete(&models.SubCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("operation_type_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.OperationType{}, id).Error
	})
}

func createCategory(name string, operationTypeID uint) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, &ValidationError{Reason: "name is required"}
	}
	var ot models.OperationType
	if err := db.First(&ot, operationTypeID).Error; err != nil {
		return models.Category{}, ErrNotFound
	}
	var cnt int64
	db.Model(&models.Category{}).Where("name = ? AND operation_type_id = ?", name, operationTypeID).Count(&cnt)
	if cnt > 0 {
		return models.Category{}, ErrDuplicateName
	}
	cat := models.Category{Name: name, OperationTypeID: operationTypeID}
	if err := db.Create(&cat).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.Category{}, ErrDuplicateName
		}
		return models.Category{}, err
	}
	return cat, nil
}

func updateCategory(id uint, name string, operationTypeID uint) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, &ValidationError{Reason: "name is required"}
	}
	var cat models.Category
	if err := db.First(&cat, id).Error; err != nil {
		return models.Category{}, ErrNotFound
	}
	var ot models.OperationType
	if err := db.First(&ot, operationTypeID).Error; err != nil {
		return models.Category{}, ErrNotFound
	}
	var cnt int64
	db.Model(&models.Category{}).
		Where("name = ? AND operation_type_id = ? AND id <> ?", name, operationTypeID, id).
		Count(&cnt)
	if cnt > 0 {
		return models.Category{}, ErrDuplicateName
	}
	cat.Name = name
	cat.OperationTypeID = operationTypeID
	if err := db.Save(&cat).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.Category{}, ErrDuplicateName
		}
		return models.Category{}, err
	}
	return cat, nil
}

// deleteCategory cascades to its subcategories and intentionally does NOT
// check for transactions referencing the category. Unlike Status and
// OperationType, categories are mutable groupings, not protected reference
// values; this mirrors the delete rules of the data model.
func deleteCategory(id uint) error {
	var cat models.Category
	if err := db.First(&cat, id).Error; err != nil {
		return ErrNotFound
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.SubCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}

func createSubCategory(name string, categoryID uint) (models.SubCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SubCategory{}, &ValidationError{Reason: "name is required"}
	}
	var cat models.Category
	if err := db.First(&cat, categoryID).Error; err != nil {
		return models.SubCategory{}, ErrNotFound
	}
	var cnt int64
	db.Model(&models.SubCategory{}).Where("name = ? AND category_id = ?", name, categoryID).Count(&cnt)
	if cnt > 0 {
		return models.SubCategory{}, ErrDuplicateName
	}
	sub := models.SubCategory{Name: name, CategoryID: categoryID}
	if err := db.Create(&sub).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.SubCategory{}, ErrDuplicateName
		}
		return models.SubCategory{}, err
	}
	return sub, nil
}

func updateSubCategory(id uint, name string, categoryID uint) (models.SubCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SubCategory{}, &ValidationError{Reason: "name is required"}
	}
	var sub models.SubCategory
	if err := db.First(&sub, id).Error; err != nil {
		return models.SubCategory{}, ErrNotFound
	}
	var cat models.Category
	if err := db.First(&cat, categoryID).Error; err != nil {
		return models.SubCategory{}, ErrNotFound
	}
	var cnt int64
	db.Model(&models.SubCategory{}).
		Where("name = ? AND category_id = ? AND id <> ?", name, categoryID, id).
		Count(&cnt)
	if cnt > 0 {
		return models.SubCategory{}, ErrDuplicateName
	}
	sub.Name = name
	sub.CategoryID = categoryID
	if err := db.Save(&sub).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.SubCategory{}, ErrDuplicateName
		}
		return models.SubCategory{}, err
	}
	return sub, nil
}

func deleteSubCategory(id uint) error {
	res := db.Delete(&models.SubCategory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// listCategoriesForOperationType returns the categories of one operation type
// ordered by name. An unknown parent id yields an empty slice, not an error,
// so dependent selects can be populated before a parent is chosen.
func listCategoriesForOperationType(operationTypeID uint) ([]models.Category, error) {
	cats := make([]models.Category, 0)
	err := db.Where("operation_type_id = ?", operationTypeID).Order("name asc").Find(&cats).Error
	return cats, err
}

// listSubCategoriesForCategory is the second level of the cascading lookup.
func listSubCategoriesForCategory(categoryID uint) ([]models.SubCategory, error) {
	subs := make([]models.SubCategory, 0)
	err := db.Where("category_id = ?", categoryID).Order("name asc").Find(&subs).Error
	return subs, err
}

// getByID loads any catalog row by primary key, mapping gorm's not-found.
func getByID[T any](id uint) (T, error) {
	var out T
	if err := db.First(&out, id).Error; err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("load by id: %w", err)
	}
	return out, nil
}
