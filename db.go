package main

import (
	"log"
	"os"
	"strings"

	"cashflow/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		migrateSchema(db)
	}
	seedDB()
}

// migrateSchema runs AutoMigrate model by model so a failure on one table
// doesn't block the others.
func migrateSchema(g *gorm.DB) {
	for _, m := range []interface{}{
		&models.Status{},
		&models.OperationType{},
		&models.Category{},
		&models.SubCategory{},
		&models.Transaction{},
		&models.User{},
	} {
		if err := g.AutoMigrate(m); err != nil {
			log.Printf("migration warning (%T): %v", m, err)
		}
	}
}

// seedDB installs the default reference catalog and an admin account.
// Everything is count-then-create so repeated runs are no-ops.
func seedDB() {
	for _, name := range []string{"Бизнес", "Личное", "Налог"} {
		var cnt int64
		db.Model(&models.Status{}).Where("name = ?", name).Count(&cnt)
		if cnt == 0 {
			db.Create(&models.Status{Name: name})
		}
	}

	income := ensureOperationType("Пополнение")
	expense := ensureOperationType("Списание")

	infra := ensureCategory("Инфраструктура", expense.ID)
	marketing := ensureCategory("Маркетинг", expense.ID)
	ensureCategory("Зарплата", expense.ID)
	ensureCategory("Продажи", income.ID)

	for _, s := range []struct {
		name string
		cat  uint
	}{
		{"VPS", infra.ID},
		{"Proxy", infra.ID},
		{"Офис", infra.ID},
		{"Farpost", marketing.ID},
		{"Avito", marketing.ID},
	} {
		var cnt int64
		db.Model(&models.SubCategory{}).Where("name = ? AND category_id = ?", s.name, s.cat).Count(&cnt)
		if cnt == 0 {
			db.Create(&models.SubCategory{Name: s.name, CategoryID: s.cat})
		}
	}

	// Seed admin user for API access
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin := models.User{Username: "admin", HashedPassword: hashedPassword}
		db.Create(&admin)
		log.Println("Seeded admin user: username=admin, password=admin123")
	}
}

func ensureOperationType(name string) models.OperationType {
	var ot models.OperationType
	if err := db.Where("name = ?", name).First(&ot).Error; err != nil {
		ot = models.OperationType{Name: name}
		db.Create(&ot)
	}
	return ot
}

func ensureCategory(name string, operationTypeID uint) models.Category {
	var cat models.Category
	if err := db.Where("name = ? AND operation_type_id = ?", name, operationTypeID).First(&cat).Error; err != nil {
		cat = models.Category{Name: name, OperationTypeID: operationTypeID}
		db.Create(&cat)
	}
	return cat
}
