package sync

import "context"

// Dispatcher owns the wire formats and the network for one marketplace
// target. The engine only decides what batches to send and in what
// order; retries and backoff, if any, live behind this interface.
type Dispatcher interface {
	PageFetcher
	DispatchStocks(ctx context.Context, batch []StockUpdate) error
	DispatchPrices(ctx context.Context, batch []PriceUpdate) error
}

// Target describes one marketplace catalog: the per-request batch
// limits documented by its API and the extra fields its stock updates
// must carry.
type Target struct {
	Name           string
	StockBatchSize int
	PriceBatchSize int
	Extra          ExtraFields
}

// Synchronize pushes the snapshot to one marketplace target: walks the
// remote catalog, reconciles it against the snapshot, then dispatches
// stock batches and price batches strictly sequentially and in order.
// The first error aborts the whole run, nothing is retried or rolled
// back. Returns the in-stock subset alongside the full stock update
// set for reporting.
func Synchronize(ctx context.Context, target Target, snapshot []InventoryRecord, dispatcher Dispatcher) ([]StockUpdate, []StockUpdate, error) {
	known, err := CollectOfferIDs(ctx, dispatcher)
	if err != nil {
		return nil, nil, err
	}

	stocks, prices, err := Reconcile(snapshot, known, target.Extra)
	if err != nil {
		return nil, nil, err
	}

	for _, batch := range Partition(stocks, target.StockBatchSize) {
		if err := dispatcher.DispatchStocks(ctx, batch); err != nil {
			return nil, nil, err
		}
	}
	for _, batch := range Partition(prices, target.PriceBatchSize) {
		if err := dispatcher.DispatchPrices(ctx, batch); err != nil {
			return nil, nil, err
		}
	}

	return NonZero(stocks), stocks, nil
}
