package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	syncengine "gomarketsync_api/internal/sync"
	"gomarketsync_api/pkg/logger"
)

const (
	DefaultApiURL = "https://api.partner.market.yandex.ru"

	pageLimit = 200

	// документированные лимиты Маркета на размер одного запроса
	StockBatchSize = 2000
	PriceBatchSize = 500

	// Маркет пишет цены в валюте RUR, не RUB
	priceCurrencyID = "RUR"

	requestRateLimit = 50 // запросов в минуту
	requestTimeout   = 100 * time.Second
)

// CampaignClient реализует sync.Dispatcher поверх API одной кампании
// Яндекс.Маркета (FBS или DBS).
type CampaignClient struct {
	apiURL     string
	campaignID string
	token      string

	client  *http.Client
	limiter *rate.Limiter
	log     logger.Logger
}

func NewCampaignClient(apiURL, campaignID, token string, writer io.Writer) *CampaignClient {
	_log := logger.NewLogger(writer, fmt.Sprintf("[MarketClient %s]", campaignID))
	return &CampaignClient{
		apiURL:     apiURL,
		campaignID: campaignID,
		token:      token,
		client:     &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/requestRateLimit), requestRateLimit),
		log:        _log,
	}
}

func (c *CampaignClient) setApiKey(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
}

func (c *CampaignClient) do(ctx context.Context, method, path string, requestBody, response interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	var body io.Reader
	if requestBody != nil {
		bodyBytes, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewBuffer(bodyBytes)
	}

	requestURL := fmt.Sprintf("%s/campaigns/%s%s", c.apiURL, c.campaignID, path)
	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
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
		return fmt.Errorf("market %s: unexpected status code: %s", path, resp.Status)
	}

	if response != nil {
		if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// FetchPage возвращает одну страницу offer-mapping-entries. Курсор —
// page_token Маркета, конец каталога — пустой nextPageToken.
func (c *CampaignClient) FetchPage(ctx context.Context, cursor string) (syncengine.Page, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(pageLimit))
	if cursor != "" {
		query.Set("page_token", cursor)
	}

	var response offerMappingResponse
	if err := c.do(ctx, http.MethodGet, "/offer-mapping-entries?"+query.Encode(), nil, &response); err != nil {
		return syncengine.Page{}, err
	}

	offerIDs := make([]string, 0, len(response.Result.OfferMappingEntries))
	for _, entry := range response.Result.OfferMappingEntries {
		offerIDs = append(offerIDs, entry.Offer.ShopSku)
	}
	return syncengine.Page{OfferIDs: offerIDs, NextCursor: response.Result.Paging.NextPageToken}, nil
}

func (c *CampaignClient) DispatchStocks(ctx context.Context, batch []syncengine.StockUpdate) error {
	request := updateStocksRequest{Skus: make([]stockSku, 0, len(batch))}
	for _, update := range batch {
		request.Skus = append(request.Skus, stockSku{
			Sku:         update.SKU,
			WarehouseID: update.WarehouseID,
			Items: []stockCountItem{{
				Count:     update.Quantity,
				Type:      "FIT",
				UpdatedAt: update.UpdatedAt,
			}},
		})
	}

	c.log.Log("Updating %d stocks", len(request.Skus))
	return c.do(ctx, http.MethodPut, "/offers/stocks", request, nil)
}

func (c *CampaignClient) DispatchPrices(ctx context.Context, batch []syncengine.PriceUpdate) error {
	request := updatePricesRequest{Offers: make([]priceOffer, 0, len(batch))}
	for _, update := range batch {
		request.Offers = append(request.Offers, priceOffer{
			ID:    update.SKU,
			Price: offerPrice{Value: update.Amount, CurrencyID: priceCurrencyID},
		})
	}

	c.log.Log("Updating %d prices", len(request.Offers))
	return c.do(ctx, http.MethodPost, "/offer-prices/updates", request, nil)
}
