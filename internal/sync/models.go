package sync

// InventoryRecord — одна строка локального фида остатков. Источник не
// гарантирует уникальность SKU, дубликаты разруливает Reconcile.
type InventoryRecord struct {
	SKU         string
	RawQuantity string
	RawPrice    string
}

// StockUpdate is a dispatch-ready stock record for one remote offer.
// WarehouseID and UpdatedAt stay empty for marketplaces that do not
// track shipment-level granularity.
type StockUpdate struct {
	SKU         string
	Quantity    int
	WarehouseID string
	UpdatedAt   string
}

// PriceUpdate is a dispatch-ready price record in minor-free rubles.
type PriceUpdate struct {
	SKU      string
	Amount   int
	Currency string
}

const DefaultCurrency = "RUB"

// ExtraFields — поля, которые конкретная площадка требует в каждом
// стоковом обновлении (склад и отметка времени у Яндекс.Маркета).
type ExtraFields struct {
	WarehouseID string
	UpdatedAt   string
}
