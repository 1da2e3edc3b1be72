package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	authmw "github.com/dkuznetsov/trendy_store/internal/middleware/auth"
	"github.com/dkuznetsov/trendy_store/internal/models"
	"github.com/dkuznetsov/trendy_store/internal/notify"
	"github.com/dkuznetsov/trendy_store/internal/repo"
	"github.com/dkuznetsov/trendy_store/internal/search"
	"github.com/dkuznetsov/trendy_store/internal/service"
)

const testSecret = "test-secret"

type nopQueue struct{}

func (nopQueue) Enqueue(context.Context, notify.Kind, any) error { return nil }

// stubESTransport serves a canned search response so handler tests run
// against the real client without an elasticsearch instance.
type stubESTransport struct {
	body string
}

func (t *stubESTransport) RoundTrip(*http.Request) (*http.Response, error) {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("X-Elastic-Product", "Elasticsearch")
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(t.body)),
	}, nil
}

type testEnv struct {
	e  *echo.Echo
	db *gorm.DB
	es *stubESTransport
}

func newTestEnv(t *testing.T) *testEnv {
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

	r := &repo.GormRepo{DB: db}
	queue := nopQueue{}
	catalog := &service.CatalogService{Repo: r, Queue: queue}
	carts := &service.CartService{Repo: r}
	orders := &service.OrderService{Repo: r, Queue: queue}

	esStub := &stubESTransport{body: `{"hits":{"total":{"value":0},"hits":[]}}`}
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://elasticsearch:9200"},
		Transport: esStub,
	})
	if err != nil {
		t.Fatalf("failed to build es client: %v", err)
	}

	e := echo.New()
	Register(e, &Deps{
		Auth:            &authmw.Middleware{JWTSecret: []byte(testSecret)},
		CategoryHandler: &CategoryHTTP{Svc: catalog},
		ProductHandler:  &ProductHTTP{Svc: catalog},
		CartHandler:     &CartHTTP{Svc: carts},
		OrderHandler:    &OrderHTTP{Svc: orders},
		EmailHandler:    &EmailHTTP{Svc: catalog},
		SearchHandler:   &SearchHTTP{Client: &search.Client{ES: esClient, Index: "products"}},
	})
	return &testEnv{e: e, db: db, es: esStub}
}

func signToken(t *testing.T, userID uint, role string) string {
	return signTokenWithSecret(t, userID, role, testSecret)
}

func signTokenWithSecret(t *testing.T, userID uint, role, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  float64(userID),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

type reqOpt func(*http.Request)

func asUser(t *testing.T, userID uint) reqOpt {
	token := signToken(t, userID, "user")
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	}
}

func asAdmin(t *testing.T, userID uint) reqOpt {
	token := signToken(t, userID, authmw.RoleAdmin)
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	}
}

func (env *testEnv) do(method, target, body string, opts ...reqOpt) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) seedProduct(t *testing.T, name, price string) models.Product {
	t.Helper()
	cat := models.Category{Name: "default"}
	if err := env.db.Where("name = ?", cat.Name).FirstOrCreate(&cat).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	prod := models.Product{
		Name:       name,
		CategoryID: cat.ID,
		Price:      decimal.RequireFromString(price),
	}
	if err := env.db.Create(&prod).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return prod
}
