package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeSearchResult(t *testing.T) {
	body := `{
		"took": 3,
		"hits": {
			"total": {"value": 2, "relation": "eq"},
			"hits": [
				{"_id": "1", "_source": {"id": 1, "name": "tent", "category_id": 3, "price": "150.00", "is_trending": true}},
				{"_id": "2", "_source": {"id": 2, "name": "tarp", "category_id": 3, "price": "40.00"}}
			]
		}
	}`

	total, products, err := decodeSearchResult(strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, products, 2)
	require.Equal(t, uint(1), products[0].ID)
	require.Equal(t, "tent", products[0].Name)
	require.Equal(t, "150.00", products[0].Price.StringFixed(2))
	require.True(t, products[0].IsTrending)
	require.Equal(t, "tarp", products[1].Name)
}

func TestDecodeSearchResultEmpty(t *testing.T) {
	total, products, err := decodeSearchResult(strings.NewReader(`{"hits":{"total":{"value":0},"hits":[]}}`))
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, products)
}
