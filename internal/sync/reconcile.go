package sync

// Reconcile builds the complete update set for one marketplace target:
// every offer id in known gets exactly one StockUpdate, offers with no
// matching snapshot record are zeroed out, prices are emitted only for
// matched records (absent offers are hidden via stock, not repriced).
//
// The scan is two-phase: first the snapshot is matched against a
// working copy of known (first record wins, later duplicates and
// local-only SKUs are skipped), then whatever remains in the copy is
// filled with zero stock in the original listing order. Output order
// is therefore deterministic: snapshot order, then leftover order.
func Reconcile(snapshot []InventoryRecord, known []string, extra ExtraFields) ([]StockUpdate, []PriceUpdate, error) {
	remaining := make(map[string]struct{}, len(known))
	for _, sku := range known {
		remaining[sku] = struct{}{}
	}

	stocks := make([]StockUpdate, 0, len(known))
	prices := make([]PriceUpdate, 0, len(snapshot))

	for _, record := range snapshot {
		if _, ok := remaining[record.SKU]; !ok {
			continue
		}
		delete(remaining, record.SKU)

		quantity, err := NormalizeQuantity(record.RawQuantity)
		if err != nil {
			return nil, nil, err
		}
		amount, err := NormalizePrice(record.RawPrice)
		if err != nil {
			return nil, nil, err
		}

		stocks = append(stocks, StockUpdate{
			SKU:         record.SKU,
			Quantity:    quantity,
			WarehouseID: extra.WarehouseID,
			UpdatedAt:   extra.UpdatedAt,
		})
		prices = append(prices, PriceUpdate{
			SKU:      record.SKU,
			Amount:   amount,
			Currency: DefaultCurrency,
		})
	}

	// офферы без локальной записи прячем нулевым остатком
	for _, sku := range known {
		if _, ok := remaining[sku]; !ok {
			continue
		}
		stocks = append(stocks, StockUpdate{
			SKU:         sku,
			Quantity:    0,
			WarehouseID: extra.WarehouseID,
			UpdatedAt:   extra.UpdatedAt,
		})
	}

	return stocks, prices, nil
}

// NonZero returns the in-stock subsequence of updates, preserving order.
func NonZero(stocks []StockUpdate) []StockUpdate {
	inStock := make([]StockUpdate, 0, len(stocks))
	for _, stock := range stocks {
		if stock.Quantity > 0 {
			inStock = append(inStock, stock)
		}
	}
	return inStock
}
