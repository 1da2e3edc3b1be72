package repo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dkuznetsov/trendy_store/internal/models"
)

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestRepo(t *testing.T) *GormRepo {
	return &GormRepo{DB: InitTestDB(t)}
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()

	cat := models.Category{Name: "default"}
	if err := db.Where("name = ?", cat.Name).FirstOrCreate(&cat).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	prod := models.Product{
		Name:       name,
		CategoryID: cat.ID,
		Price:      decimal.RequireFromString(price),
		ImageLink:  "https://example.com/" + name + ".png",
	}
	if err := db.Create(&prod).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return prod
}
