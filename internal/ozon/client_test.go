package ozon

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncengine "gomarketsync_api/internal/sync"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *SellerClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewSellerClient(server.URL, "client-123", "key-123", io.Discard)
}

func TestFetchPagePagination(t *testing.T) {
	var requests []productListRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, productListPath, r.URL.Path)
		require.Equal(t, "client-123", r.Header.Get("Client-Id"))
		require.Equal(t, "key-123", r.Header.Get("Api-Key"))

		var request productListRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		requests = append(requests, request)

		response := productListResponse{}
		response.Result.Total = 3
		if request.LastID == "" {
			response.Result.Items = []productListItem{{OfferID: "A"}, {OfferID: "B"}}
			response.Result.LastID = "cursor-2"
		} else {
			response.Result.Items = []productListItem{{OfferID: "C"}}
			response.Result.LastID = "cursor-3"
		}
		json.NewEncoder(w).Encode(response)
	})

	known, err := syncengine.CollectOfferIDs(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, known)

	// второй запрос должен уйти с курсором первой страницы
	require.Len(t, requests, 2)
	assert.Equal(t, "cursor-2", requests[1].LastID)
	assert.Equal(t, "ALL", requests[0].Filter.Visibility)
	assert.Equal(t, pageLimit, requests[0].Limit)
}

func TestFetchPageEmptyCatalog(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(productListResponse{})
	})

	known, err := syncengine.CollectOfferIDs(context.Background(), client)
	require.NoError(t, err)
	assert.Empty(t, known)
}

func TestFetchPagePropagatesBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := client.FetchPage(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestDispatchStocksBody(t *testing.T) {
	var request importStocksRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, importStocksPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		w.WriteHeader(http.StatusOK)
	})

	err := client.DispatchStocks(context.Background(), []syncengine.StockUpdate{
		{SKU: "A", Quantity: 100},
		{SKU: "B", Quantity: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, []stockItem{{OfferID: "A", Stock: 100}, {OfferID: "B", Stock: 0}}, request.Stocks)
}

func TestDispatchPricesBody(t *testing.T) {
	var request importPricesRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, importPricesPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		w.WriteHeader(http.StatusOK)
	})

	err := client.DispatchPrices(context.Background(), []syncengine.PriceUpdate{
		{SKU: "A", Amount: 5990, Currency: "RUB"},
	})
	require.NoError(t, err)
	require.Len(t, request.Prices, 1)
	assert.Equal(t, priceItem{
		AutoActionEnabled: "UNKNOWN",
		CurrencyCode:      "RUB",
		OfferID:           "A",
		OldPrice:          "0",
		Price:             "5990",
	}, request.Prices[0])
}
