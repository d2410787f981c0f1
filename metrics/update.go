package metrics

import "sync/atomic"

// RunStats — сквозные счетчики одного запуска приложения.
type RunStats struct {
	TargetsTotal  atomic.Int32
	TargetsFailed atomic.Int32
	StockUpdates  atomic.Int32
	PriceUpdates  atomic.Int32
}
