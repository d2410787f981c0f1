package ozon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	syncengine "gomarketsync_api/internal/sync"
	"gomarketsync_api/pkg/logger"
)

const (
	DefaultApiURL = "https://api-seller.ozon.ru"

	productListPath  = "/v2/product/list"
	importStocksPath = "/v1/product/import/stocks"
	importPricesPath = "/v1/product/import/prices"

	pageLimit = 1000

	// документированные лимиты Ozon на размер одного запроса импорта
	StockBatchSize = 100
	PriceBatchSize = 900

	requestRateLimit = 50 // запросов в минуту
	requestTimeout   = 100 * time.Second
)

// SellerClient реализует sync.Dispatcher поверх Ozon Seller API.
type SellerClient struct {
	apiURL   string
	clientID string
	apiKey   string

	client  *http.Client
	limiter *rate.Limiter
	log     logger.Logger

	// вычитано позиций с начала текущего обхода каталога; Ozon
	// сигналит конец не пустым курсором, а полем total
	seen int
}

func NewSellerClient(apiURL, clientID, apiKey string, writer io.Writer) *SellerClient {
	_log := logger.NewLogger(writer, "[OzonClient]")
	return &SellerClient{
		apiURL:   apiURL,
		clientID: clientID,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: requestTimeout},
		limiter:  rate.NewLimiter(rate.Every(time.Minute/requestRateLimit), requestRateLimit),
		log:      _log,
	}
}

func (c *SellerClient) setApiKey(req *http.Request) {
	req.Header.Set("Client-Id", c.clientID)
	req.Header.Set("Api-Key", c.apiKey)
}

func (c *SellerClient) postJSON(ctx context.Context, path string, requestBody, response interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	bodyBytes, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setApiKey(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ozon %s: unexpected status code: %s", path, resp.Status)
	}

	if response != nil {
		if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ProductList возвращает одну страницу списка товаров продавца.
func (c *SellerClient) ProductList(ctx context.Context, lastID string) (*productListResult, error) {
	request := productListRequest{
		Filter: productListFilter{Visibility: "ALL"},
		LastID: lastID,
		Limit:  pageLimit,
	}

	var response productListResponse
	if err := c.postJSON(ctx, productListPath, request, &response); err != nil {
		return nil, err
	}
	return &response.Result, nil
}

// FetchPage адаптирует протокол Ozon (total + last_id) к курсорному
// обходу: когда вычитано total позиций, возвращаем пустой курсор.
func (c *SellerClient) FetchPage(ctx context.Context, cursor string) (syncengine.Page, error) {
	if cursor == "" {
		c.seen = 0
	}

	result, err := c.ProductList(ctx, cursor)
	if err != nil {
		return syncengine.Page{}, err
	}

	offerIDs := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		offerIDs = append(offerIDs, item.OfferID)
	}
	c.seen += len(offerIDs)

	next := result.LastID
	if c.seen >= result.Total || len(result.Items) == 0 {
		next = ""
	}
	return syncengine.Page{OfferIDs: offerIDs, NextCursor: next}, nil
}

func (c *SellerClient) DispatchStocks(ctx context.Context, batch []syncengine.StockUpdate) error {
	request := importStocksRequest{Stocks: make([]stockItem, 0, len(batch))}
	for _, update := range batch {
		request.Stocks = append(request.Stocks, stockItem{OfferID: update.SKU, Stock: update.Quantity})
	}

	c.log.Log("Importing %d stocks", len(request.Stocks))
	return c.postJSON(ctx, importStocksPath, request, nil)
}

func (c *SellerClient) DispatchPrices(ctx context.Context, batch []syncengine.PriceUpdate) error {
	request := importPricesRequest{Prices: make([]priceItem, 0, len(batch))}
	for _, update := range batch {
		request.Prices = append(request.Prices, priceItem{
			AutoActionEnabled: "UNKNOWN",
			CurrencyCode:      update.Currency,
			OfferID:           update.SKU,
			OldPrice:          "0",
			Price:             strconv.Itoa(update.Amount),
		})
	}

	c.log.Log("Importing %d prices", len(request.Prices))
	return c.postJSON(ctx, importPricesPath, request, nil)
}
