package service

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dkuznetsov/trendy_store/internal/models"
	"github.com/dkuznetsov/trendy_store/internal/notify"
	"github.com/dkuznetsov/trendy_store/internal/repo"
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

type enqueuedJob struct {
	Kind    notify.Kind
	Payload any
}

// fakeQueue records jobs instead of dispatching them.
type fakeQueue struct {
	mu   sync.Mutex
	jobs []enqueuedJob
	err  error
}

func (q *fakeQueue) Enqueue(_ context.Context, kind notify.Kind, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, enqueuedJob{Kind: kind, Payload: payload})
	return nil
}

func (q *fakeQueue) byKind(kind notify.Kind) []enqueuedJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []enqueuedJob
	for _, j := range q.jobs {
		if j.Kind == kind {
			out = append(out, j)
		}
	}
	return out
}

func seedCategory(t *testing.T, db *gorm.DB) models.Category {
	t.Helper()
	cat := models.Category{Name: "default"}
	if err := db.Where("name = ?", cat.Name).FirstOrCreate(&cat).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return cat
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()
	cat := seedCategory(t, db)
	prod := models.Product{
		Name:       name,
		CategoryID: cat.ID,
		Price:      decimal.RequireFromString(price),
	}
	if err := db.Create(&prod).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return prod
}

func newTestServices(t *testing.T) (*CatalogService, *CartService, *OrderService, *fakeQueue, *gorm.DB) {
	db := InitTestDB(t)
	r := &repo.GormRepo{DB: db}
	q := &fakeQueue{}
	return &CatalogService{Repo: r, Queue: q},
		&CartService{Repo: r},
		&OrderService{Repo: r, Queue: q},
		q, db
}
