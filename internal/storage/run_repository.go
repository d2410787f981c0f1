package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	syncengine "gomarketsync_api/internal/sync"
)

// historyBatchSize — число строк в одном INSERT (3 параметра на строку).
const historyBatchSize = 900

// SyncRun — итог одного прогона синхронизации для одной площадки.
type SyncRun struct {
	ID             uuid.UUID
	Target         string
	StartedAt      time.Time
	FinishedAt     time.Time
	TotalUpdates   int
	NonZeroUpdates int
	Status         string
	Error          string
}

const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) InsertRun(run SyncRun) error {
	query := `
		INSERT INTO sync.runs (run_id, target, started_at, finished_at, total_updates, non_zero_updates, status, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`

	if _, err := r.db.Exec(query,
		run.ID, run.Target, run.StartedAt, run.FinishedAt,
		run.TotalUpdates, run.NonZeroUpdates, run.Status, run.Error,
	); err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}
	return nil
}

// InsertStockHistory сохраняет отправленные остатки пачками, чтобы не
// упереться в лимит количества параметров запроса.
func (r *RunRepository) InsertStockHistory(runID uuid.UUID, stocks []syncengine.StockUpdate) error {
	for start := 0; start < len(stocks); start += historyBatchSize {
		end := start + historyBatchSize
		if end > len(stocks) {
			end = len(stocks)
		}
		currentBatch := stocks[start:end]

		valueStrings := make([]string, 0, len(currentBatch))
		args := make([]interface{}, 0, len(currentBatch)*3)
		for i, stock := range currentBatch {
			valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3))
			args = append(args, runID, stock.SKU, stock.Quantity)
		}

		query := fmt.Sprintf(`
			INSERT INTO sync.stock_history (run_id, sku, quantity)
			VALUES %s;`, strings.Join(valueStrings, ", "))

		if _, err := r.db.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert stock history: %w", err)
		}
	}
	return nil
}

// RunsByTargets возвращает последние прогоны для указанных площадок.
func (r *RunRepository) RunsByTargets(targets []string, limit int) ([]SyncRun, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("targets cant be empty")
	}

	query := `
		SELECT run_id, target, started_at, finished_at, total_updates, non_zero_updates, status, error
		FROM sync.runs
		WHERE target = ANY($1)
		ORDER BY started_at DESC
		LIMIT $2;`

	rows, err := r.db.Query(query, pq.Array(targets), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer rows.Close()

	var runs []SyncRun
	for rows.Next() {
		var run SyncRun
		if err := rows.Scan(&run.ID, &run.Target, &run.StartedAt, &run.FinishedAt,
			&run.TotalUpdates, &run.NonZeroUpdates, &run.Status, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sync runs: %w", err)
	}
	return runs, nil
}
