package main

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cashflow/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// setupTestDB points the global db at a fresh in-memory sqlite database so
// the suite runs without a Postgres instance. The named shared-cache DSN
// keeps every pooled connection on the same database, and _fk=1 turns on
// foreign-key enforcement so the schema behaves like Postgres.
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_fk=1", testDBSeq.Add(1))
	g, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db = g
	migrateSchema(db)
}

// testCatalog is a minimal reference hierarchy used across tests.
type testCatalog struct {
	Business models.Status
	Income   models.OperationType
	Expense  models.OperationType
	Food     models.Category    // under Expense
	Sales    models.Category    // under Income
	Dining   models.SubCategory // under Food
}

func seedTestCatalog(t *testing.T) testCatalog {
	t.Helper()
	var c testCatalog
	var err error
	if c.Business, err = createStatus("Бизнес"); err != nil {
		t.Fatalf("seed status: %v", err)
	}
	if c.Income, err = createOperationType("Пополнение"); err != nil {
		t.Fatalf("seed income type: %v", err)
	}
	if c.Expense, err = createOperationType("Списание"); err != nil {
		t.Fatalf("seed expense type: %v", err)
	}
	if c.Food, err = createCategory("Еда", c.Expense.ID); err != nil {
		t.Fatalf("seed food category: %v", err)
	}
	if c.Sales, err = createCategory("Продажи", c.Income.ID); err != nil {
		t.Fatalf("seed sales category: %v", err)
	}
	if c.Dining, err = createSubCategory("Рестораны", c.Food.ID); err != nil {
		t.Fatalf("seed dining subcategory: %v", err)
	}
	return c
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustCreateTransaction(t *testing.T, in transactionInput) models.Transaction {
	t.Helper()
	tr, err := createTransaction(in)
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return tr
}

func countTransactions(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Transaction{}).Count(&n).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return n
}
