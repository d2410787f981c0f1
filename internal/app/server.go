package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"gomarketsync_api/config"
	"gomarketsync_api/internal/feed"
	"gomarketsync_api/internal/market"
	"gomarketsync_api/internal/ozon"
	"gomarketsync_api/internal/storage"
	syncengine "gomarketsync_api/internal/sync"
	"gomarketsync_api/metrics"
	syncmigrations "gomarketsync_api/migrations/sync"
	"gomarketsync_api/pkg/dbconnect/migration"
	"gomarketsync_api/pkg/logger"
)

// SyncServer прогоняет один цикл синхронизации: фид → Ozon → Маркет
// FBS → Маркет DBS. Площадки идут строго последовательно, ошибка одной
// не останавливает остальные.
type SyncServer struct {
	cfg    *config.AppConfig
	repo   *storage.RunRepository
	log    logger.Logger
	writer io.Writer
	stats  metrics.RunStats
}

func NewSyncServer(cfg *config.AppConfig, repo *storage.RunRepository, writer io.Writer) *SyncServer {
	_log := logger.NewLogger(writer, "[SyncServer]")
	return &SyncServer{cfg: cfg, repo: repo, log: _log, writer: writer}
}

// ApplyMigrations накатывает схему истории запусков.
func ApplyMigrations(db *sql.DB) error {
	migrationApply := []migration.MigrationInterface{
		&syncmigrations.CreateMigrationsInfra{},
		&syncmigrations.CreateSyncSchema{},
		&syncmigrations.CreateSyncRunsTable{},
		&syncmigrations.CreateStockHistoryTable{},
	}
	for _, _migration := range migrationApply {
		if err := _migration.UpMigration(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

type runTarget struct {
	target     syncengine.Target
	dispatcher syncengine.Dispatcher
}

// meteredDispatcher записывает метрики по фактически отправленным
// батчам, не вмешиваясь в работу клиента площадки.
type meteredDispatcher struct {
	syncengine.Dispatcher
	targetName string
}

func (d *meteredDispatcher) DispatchStocks(ctx context.Context, batch []syncengine.StockUpdate) error {
	if err := d.Dispatcher.DispatchStocks(ctx, batch); err != nil {
		return err
	}
	metrics.RecordBatch(d.targetName, "stocks", len(batch))
	return nil
}

func (d *meteredDispatcher) DispatchPrices(ctx context.Context, batch []syncengine.PriceUpdate) error {
	if err := d.Dispatcher.DispatchPrices(ctx, batch); err != nil {
		return err
	}
	metrics.RecordBatch(d.targetName, "prices", len(batch))
	return nil
}

func (s *SyncServer) buildTargets() []runTarget {
	// отметка времени общая для всех стоковых записей запуска
	updatedAt := time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)

	ozonClient := ozon.NewSellerClient(ozon.DefaultApiURL, s.cfg.Ozon.ClientID, s.cfg.Ozon.ApiKey, s.writer)
	fbsClient := market.NewCampaignClient(market.DefaultApiURL, s.cfg.Market.FBS.CampaignID, s.cfg.Market.Token, s.writer)
	dbsClient := market.NewCampaignClient(market.DefaultApiURL, s.cfg.Market.DBS.CampaignID, s.cfg.Market.Token, s.writer)

	return []runTarget{
		{
			target: syncengine.Target{
				Name:           "ozon",
				StockBatchSize: ozon.StockBatchSize,
				PriceBatchSize: ozon.PriceBatchSize,
			},
			dispatcher: ozonClient,
		},
		{
			target: syncengine.Target{
				Name:           "market-fbs",
				StockBatchSize: market.StockBatchSize,
				PriceBatchSize: market.PriceBatchSize,
				Extra: syncengine.ExtraFields{
					WarehouseID: s.cfg.Market.FBS.WarehouseID,
					UpdatedAt:   updatedAt,
				},
			},
			dispatcher: fbsClient,
		},
		{
			target: syncengine.Target{
				Name:           "market-dbs",
				StockBatchSize: market.StockBatchSize,
				PriceBatchSize: market.PriceBatchSize,
				Extra: syncengine.ExtraFields{
					WarehouseID: s.cfg.Market.DBS.WarehouseID,
					UpdatedAt:   updatedAt,
				},
			},
			dispatcher: dbsClient,
		},
	}
}

func (s *SyncServer) Run(ctx context.Context) error {
	loader := feed.NewLoader(feed.NewHTTPFetcher(), s.cfg.Feed.HeaderOffset, s.writer)
	snapshot, err := loader.Load(ctx, s.cfg.Feed.URL)
	if err != nil {
		return fmt.Errorf("failed to load inventory snapshot: %w", err)
	}

	for _, rt := range s.buildTargets() {
		s.runTarget(ctx, rt, snapshot)
	}

	failed := s.stats.TargetsFailed.Load()
	s.log.Log("Done: %d/%d targets succeeded, %d stock updates dispatched",
		s.stats.TargetsTotal.Load()-failed, s.stats.TargetsTotal.Load(), s.stats.StockUpdates.Load())
	if failed > 0 {
		return fmt.Errorf("%d of %d targets failed", failed, s.stats.TargetsTotal.Load())
	}
	return nil
}

func (s *SyncServer) runTarget(ctx context.Context, rt runTarget, snapshot []syncengine.InventoryRecord) {
	s.stats.TargetsTotal.Add(1)
	s.log.Log("Synchronizing %s", rt.target.Name)

	started := time.Now()
	dispatcher := &meteredDispatcher{Dispatcher: rt.dispatcher, targetName: rt.target.Name}
	nonZero, all, err := syncengine.Synchronize(ctx, rt.target, snapshot, dispatcher)
	finished := time.Now()

	metrics.RecordRun(rt.target.Name, err != nil, finished.Sub(started))

	run := storage.SyncRun{
		ID:         uuid.New(),
		Target:     rt.target.Name,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if err != nil {
		s.stats.TargetsFailed.Add(1)
		run.Status = storage.RunStatusFailed
		run.Error = err.Error()
		s.log.Log("Synchronization of %s failed: %s", rt.target.Name, err)
	} else {
		run.Status = storage.RunStatusCompleted
		run.TotalUpdates = len(all)
		run.NonZeroUpdates = len(nonZero)
		s.stats.StockUpdates.Add(int32(len(all)))
		s.stats.PriceUpdates.Add(int32(len(nonZero)))
		s.log.Log("Synchronized %s: %d offers updated, %d in stock", rt.target.Name, len(all), len(nonZero))
	}

	if s.repo == nil {
		return
	}
	// ошибки записи истории не валят синхронизацию
	if err := s.repo.InsertRun(run); err != nil {
		s.log.Log("Failed to record sync run for %s: %s", rt.target.Name, err)
		return
	}
	if run.Status == storage.RunStatusCompleted {
		if err := s.repo.InsertStockHistory(run.ID, all); err != nil {
			s.log.Log("Failed to record stock history for %s: %s", rt.target.Name, err)
		}
	}
}
