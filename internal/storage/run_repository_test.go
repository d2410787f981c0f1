package storage

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncengine "gomarketsync_api/internal/sync"
)

func TestInsertRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	run := SyncRun{
		ID:             uuid.New(),
		Target:         "ozon",
		StartedAt:      time.Now().Add(-time.Minute),
		FinishedAt:     time.Now(),
		TotalUpdates:   3,
		NonZeroUpdates: 1,
		Status:         RunStatusCompleted,
	}

	mock.ExpectExec("INSERT INTO sync.runs").
		WithArgs(run.ID, run.Target, run.StartedAt, run.FinishedAt,
			run.TotalUpdates, run.NonZeroUpdates, run.Status, run.Error).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewRunRepository(db).InsertRun(run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertStockHistorySplitsBatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stocks := make([]syncengine.StockUpdate, historyBatchSize+1)
	for i := range stocks {
		stocks[i] = syncengine.StockUpdate{SKU: "sku", Quantity: i}
	}

	mock.ExpectExec("INSERT INTO sync.stock_history").
		WillReturnResult(sqlmock.NewResult(0, historyBatchSize))
	mock.ExpectExec("INSERT INTO sync.stock_history").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewRunRepository(db).InsertStockHistory(uuid.New(), stocks))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunsByTargets(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"run_id", "target", "started_at", "finished_at",
		"total_updates", "non_zero_updates", "status", "error",
	}).AddRow(runID, "market-fbs", now.Add(-time.Minute), now, 10, 4, RunStatusCompleted, "")

	mock.ExpectQuery("SELECT run_id, target").WillReturnRows(rows)

	runs, err := NewRunRepository(db).RunsByTargets([]string{"market-fbs"}, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, 4, runs[0].NonZeroUpdates)
}

func TestRunsByTargetsEmpty(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewRunRepository(db).RunsByTargets(nil, 10)
	assert.Error(t, err)
}
