package main

import (
	"net/http"
	"time"

	"cashflow/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// transactionRequest is the write body for both create and update. The date
// uses the same YYYY-MM-DD layout as the list filter; amounts accept JSON
// numbers or numeric strings with two decimal places. Amount is a pointer so
// "required" means the field must be present while 0.00 stays a legal value.
type transactionRequest struct {
	Date            string           `json:"date" binding:"required"`
	StatusID        uint             `json:"status_id" binding:"required"`
	OperationTypeID uint             `json:"operation_type_id" binding:"required"`
	CategoryID      uint             `json:"category_id" binding:"required"`
	SubCategoryID   *uint            `json:"subcategory_id"`
	Amount          *decimal.Decimal `json:"amount" binding:"required"`
	Comment         string           `json:"comment"`
}

func (r transactionRequest) toInput() (transactionInput, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return transactionInput{}, &ValidationError{Reason: "date must be in YYYY-MM-DD format"}
	}
	return transactionInput{
		Date:            date,
		StatusID:        r.StatusID,
		OperationTypeID: r.OperationTypeID,
		CategoryID:      r.CategoryID,
		SubCategoryID:   r.SubCategoryID,
		Amount:          r.Amount.Round(2),
		Comment:         r.Comment,
	}, nil
}

// listTransactionsHandler lists transactions for a date range (defaulting to
// the current month up to today) with optional equality filters. Malformed
// dates in the query string degrade to the default range instead of failing.
func listTransactionsHandler(c *gin.Context) {
	dateFrom, hasDateFrom := c.GetQuery("date_from")
	dateTo, hasDateTo := c.GetQuery("date_to")
	f := newTransactionFilter(
		dateFrom, hasDateFrom,
		dateTo, hasDateTo,
		c.Query("status"),
		c.Query("operation_type"),
		c.Query("category"),
		c.Query("subcategory"),
	)
	items, err := listTransactions(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date_from":    f.DateFrom.Format(dateLayout),
		"date_to":      f.DateTo.Format(dateLayout),
		"transactions": items,
	})
}

func getTransactionHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var tr models.Transaction
	err := db.Preload("Status").Preload("OperationType").
		Preload("Category").Preload("SubCategory").
		First(&tr, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, tr)
}

func createTransactionHandler(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondError(c, err)
		return
	}
	tr, err := createTransaction(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tr)
}

func updateTransactionHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondError(c, err)
		return
	}
	tr, err := updateTransaction(id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tr)
}

func deleteTransactionHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := deleteTransaction(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
}
