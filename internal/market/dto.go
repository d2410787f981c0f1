package market

// Формы запросов/ответов API кампаний Яндекс.Маркета.

type offerMapping struct {
	ShopSku string `json:"shopSku"`
}

type offerMappingEntry struct {
	Offer offerMapping `json:"offer"`
}

type paging struct {
	NextPageToken string `json:"nextPageToken"`
}

type offerMappingResult struct {
	OfferMappingEntries []offerMappingEntry `json:"offerMappingEntries"`
	Paging              paging              `json:"paging"`
}

type offerMappingResponse struct {
	Result offerMappingResult `json:"result"`
}

type stockCountItem struct {
	Count     int    `json:"count"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updatedAt"`
}

type stockSku struct {
	Sku         string           `json:"sku"`
	WarehouseID string           `json:"warehouseId"`
	Items       []stockCountItem `json:"items"`
}

type updateStocksRequest struct {
	Skus []stockSku `json:"skus"`
}

type offerPrice struct {
	Value      int    `json:"value"`
	CurrencyID string `json:"currencyId"`
}

type priceOffer struct {
	ID    string     `json:"id"`
	Price offerPrice `json:"price"`
}

type updatePricesRequest struct {
	Offers []priceOffer `json:"offers"`
}
