package ozon

// Формы запросов/ответов Ozon Seller API (v2 product/list, v1 import).

type productListFilter struct {
	Visibility string `json:"visibility"`
}

type productListRequest struct {
	Filter productListFilter `json:"filter"`
	LastID string            `json:"last_id"`
	Limit  int               `json:"limit"`
}

type productListItem struct {
	OfferID string `json:"offer_id"`
}

type productListResult struct {
	Items  []productListItem `json:"items"`
	Total  int               `json:"total"`
	LastID string            `json:"last_id"`
}

type productListResponse struct {
	Result productListResult `json:"result"`
}

type stockItem struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

type importStocksRequest struct {
	Stocks []stockItem `json:"stocks"`
}

// priceItem — Ozon хочет цену строкой; old_price "0" выключает
// зачеркнутую цену, auto_action_enabled оставляем как есть.
type priceItem struct {
	AutoActionEnabled string `json:"auto_action_enabled"`
	CurrencyCode      string `json:"currency_code"`
	OfferID           string `json:"offer_id"`
	OldPrice          string `json:"old_price"`
	Price             string `json:"price"`
}

type importPricesRequest struct {
	Prices []priceItem `json:"prices"`
}
