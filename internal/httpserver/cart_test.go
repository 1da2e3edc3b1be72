package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dkuznetsov/trendy_store/internal/transport"
)

func TestCartRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/cart", `{"product_id":1,"quantity":1}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddToCartAndGet(t *testing.T) {
	env := newTestEnv(t)
	prod := env.seedProduct(t, "keyboard", "49.90")

	body := fmt.Sprintf(`{"product_id":%d,"quantity":2}`, prod.ID)
	rec := env.do(http.MethodPost, "/api/v1/cart", body, asUser(t, 1))
	require.Equal(t, http.StatusOK, rec.Code)

	// Same line again, quantity accumulates.
	rec = env.do(http.MethodPost, "/api/v1/cart", body, asUser(t, 1))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/cart", "", asUser(t, 1))
	require.Equal(t, http.StatusOK, rec.Code)

	var lines []transport.CartLineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lines))
	require.Len(t, lines, 1)
	require.Equal(t, prod.ID, lines[0].ProductID)
	require.Equal(t, uint(4), lines[0].Quantity)
	require.Equal(t, "199.60", lines[0].TotalPrice.StringFixed(2))

	// Another user's cart stays empty.
	rec = env.do(http.MethodGet, "/api/v1/cart", "", asUser(t, 2))
	require.Equal(t, http.StatusOK, rec.Code)
	var other []transport.CartLineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &other))
	require.Empty(t, other)
}

func TestAddToCartBadRequest(t *testing.T) {
	env := newTestEnv(t)
	prod := env.seedProduct(t, "mouse", "19.99")

	rec := env.do(http.MethodPost, "/api/v1/cart", `{"product_id":0,"quantity":1}`, asUser(t, 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/cart",
		fmt.Sprintf(`{"product_id":%d,"quantity":0}`, prod.ID), asUser(t, 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/cart",
		fmt.Sprintf(`{"product_id":%d,"quantity":1}`, prod.ID+100), asUser(t, 1))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCartSingleProductFilter(t *testing.T) {
	env := newTestEnv(t)
	prod := env.seedProduct(t, "monitor", "250.00")

	rec := env.do(http.MethodPost, "/api/v1/cart",
		fmt.Sprintf(`{"product_id":%d,"quantity":1}`, prod.ID), asUser(t, 1))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/v1/cart?product=%d", prod.ID), "", asUser(t, 1))
	require.Equal(t, http.StatusOK, rec.Code)
	var line transport.CartLineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &line))
	require.Equal(t, "monitor", line.ProductName)

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/v1/cart?product=%d", prod.ID+100), "", asUser(t, 1))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/cart?product=abc", "", asUser(t, 1))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveAndClearCart(t *testing.T) {
	env := newTestEnv(t)
	first := env.seedProduct(t, "ssd", "99.00")
	second := env.seedProduct(t, "hdd", "59.00")

	for _, p := range []uint{first.ID, second.ID} {
		rec := env.do(http.MethodPost, "/api/v1/cart",
			fmt.Sprintf(`{"product_id":%d,"quantity":1}`, p), asUser(t, 1))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.do(http.MethodDelete, fmt.Sprintf("/api/v1/cart/%d", first.ID), "", asUser(t, 1))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/v1/cart/%d", first.ID), "", asUser(t, 1))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, "/api/v1/cart", "", asUser(t, 1))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/cart", "", asUser(t, 1))
	require.Equal(t, http.StatusOK, rec.Code)
	var lines []transport.CartLineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lines))
	require.Empty(t, lines)
}
