package main

import (
	"errors"
	"net/http"
	"strconv"

	"cashflow/models"

	"github.com/gin-gonic/gin"
)

// namedInput is the request body shared by Status and OperationType.
type namedInput struct {
	Name string `json:"name" binding:"required"`
}

type categoryInput struct {
	Name            string `json:"name" binding:"required"`
	OperationTypeID uint   `json:"operation_type_id" binding:"required"`
}

type subCategoryInput struct {
	Name       string `json:"name" binding:"required"`
	CategoryID uint   `json:"category_id" binding:"required"`
}

func parseIDParam(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(v), true
}

// respondError maps the typed catalog/ledger errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	var ve *ValidationError
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": "name already exists"})
	case errors.Is(err, ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "record is referenced by transactions"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// referenceIndexHandler returns all four reference sets at once, each ordered
// by name, for the catalog overview page.
func referenceIndexHandler(c *gin.Context) {
	statuses := make([]models.Status, 0)
	operationTypes := make([]models.OperationType, 0)
	categories := make([]models.Category, 0)
	subcategories := make([]models.SubCategory, 0)
	db.Order("name asc").Find(&statuses)
	db.Order("name asc").Find(&operationTypes)
	db.Order("name asc").Find(&categories)
	db.Order("name asc").Find(&subcategories)
	c.JSON(http.StatusOK, gin.H{
		"statuses":        statuses,
		"operation_types": operationTypes,
		"categories":      categories,
		"subcategories":   subcategories,
	})
}

func listStatusesHandler(c *gin.Context) {
	items := make([]models.Status, 0)
	if err := db.Order("name asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func getStatusHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	st, err := getByID[models.Status](id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func createStatusHandler(c *gin.Context) {
	var req namedInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := createStatus(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func updateStatusHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req namedInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := updateStatus(id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func deleteStatusHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := deleteStatus(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status deleted"})
}

func listOperationTypesHandler(c *gin.Context) {
	items := make([]models.OperationType, 0)
	if err := db.Order("name asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func getOperationTypeHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	ot, err := getByID[models.OperationType](id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ot)
}

func createOperationTypeHandler(c *gin.Context) {
	var req namedInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ot, err := createOperationType(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ot)
}

func updateOperationTypeHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req namedInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ot, err := updateOperationType(id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ot)
}

func deleteOperationTypeHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := deleteOperationType(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "operation type deleted"})
}

func listCategoriesHandler(c *gin.Context) {
	items := make([]models.Category, 0)
	q := db.Order("name asc")
	// optional narrowing for the filter bar
	if v := c.Query("operation_type"); v != "" {
		q = q.Where("operation_type_id = ?", v)
	}
	if err := q.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func getCategoryHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	cat, err := getByID[models.Category](id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func createCategoryHandler(c *gin.Context) {
	var req categoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := createCategory(req.Name, req.OperationTypeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func updateCategoryHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req categoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := updateCategory(id, req.Name, req.OperationTypeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func deleteCategoryHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := deleteCategory(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// listCategoriesForOperationTypeHandler backs the cascading operation-type →
// category select. Unknown parents answer with an empty list.
func listCategoriesForOperationTypeHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	cats, err := listCategoriesForOperationType(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, cats)
}

func listSubCategoriesHandler(c *gin.Context) {
	items := make([]models.SubCategory, 0)
	q := db.Order("name asc")
	if v := c.Query("category"); v != "" {
		q = q.Where("category_id = ?", v)
	}
	if err := q.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func getSubCategoryHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	sub, err := getByID[models.SubCategory](id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func createSubCategoryHandler(c *gin.Context) {
	var req subCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, err := createSubCategory(req.Name, req.CategoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func updateSubCategoryHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req subCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, err := updateSubCategory(id, req.Name, req.CategoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func deleteSubCategoryHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := deleteSubCategory(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subcategory deleted"})
}

// listSubCategoriesForCategoryHandler backs the cascading category →
// subcategory select.
func listSubCategoriesForCategoryHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	subs, err := listSubCategoriesForCategory(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, subs)
}
