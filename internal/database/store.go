package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rickgao/coinglass-data/internal/model"
)

// DB is the subset of *pgxpool.Pool used by Store.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// InsertResult reports how many rows were written and how many already existed.
type InsertResult struct {
	Inserted  int
	Conflicts int
}

// Store writes futures series to PostgreSQL.
type Store struct {
	db     DB
	logger *slog.Logger
}

// NewStore creates a Store on top of a pool.
func NewStore(db DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS open_interest (
		symbol  TEXT NOT NULL,
		time_ms BIGINT NOT NULL,
		open    DOUBLE PRECISION,
		high    DOUBLE PRECISION,
		low     DOUBLE PRECISION,
		close   DOUBLE PRECISION,
		PRIMARY KEY (symbol, time_ms)
	)`,
	`CREATE TABLE IF NOT EXISTS funding_rate (
		symbol  TEXT NOT NULL,
		time_ms BIGINT NOT NULL,
		open    DOUBLE PRECISION,
		high    DOUBLE PRECISION,
		low     DOUBLE PRECISION,
		close   DOUBLE PRECISION,
		PRIMARY KEY (symbol, time_ms)
	)`,
	`CREATE TABLE IF NOT EXISTS long_short_ratio (
		symbol        TEXT NOT NULL,
		exchange      TEXT NOT NULL,
		time_ms       BIGINT NOT NULL,
		long_percent  DOUBLE PRECISION,
		short_percent DOUBLE PRECISION,
		ratio         DOUBLE PRECISION,
		PRIMARY KEY (symbol, exchange, time_ms)
	)`,
	`CREATE TABLE IF NOT EXISTS liquidations (
		symbol    TEXT NOT NULL,
		time_ms   BIGINT NOT NULL,
		long_liq  DOUBLE PRECISION,
		short_liq DOUBLE PRECISION,
		PRIMARY KEY (symbol, time_ms)
	)`,
	`CREATE TABLE IF NOT EXISTS collector_runs (
		run_id      UUID PRIMARY KEY,
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ,
		symbols     TEXT[] NOT NULL,
		exchange    TEXT NOT NULL,
		interval    TEXT NOT NULL,
		inserted    BIGINT NOT NULL DEFAULT 0,
		failed      INTEGER NOT NULL DEFAULT 0
	)`,
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// InsertOHLC writes candles into the open_interest or funding_rate table.
func (s *Store) InsertOHLC(ctx context.Context, series model.Series, rows []model.OHLC) (InsertResult, error) {
	batch, err := ohlcBatch(series, rows)
	if err != nil {
		return InsertResult{}, err
	}
	return s.send(ctx, string(series), batch)
}

// InsertLongShortRatios writes long/short ratio rows.
func (s *Store) InsertLongShortRatios(ctx context.Context, rows []model.LongShortRatio) (InsertResult, error) {
	return s.send(ctx, string(model.SeriesLongShortRatio), longShortBatch(rows))
}

// InsertLiquidations writes liquidation rows.
func (s *Store) InsertLiquidations(ctx context.Context, rows []model.Liquidation) (InsertResult, error) {
	return s.send(ctx, string(model.SeriesLiquidations), liquidationBatch(rows))
}

// SaveRun upserts the run record.
func (s *Store) SaveRun(ctx context.Context, run model.Run) error {
	var finished any
	if !run.FinishedAt.IsZero() {
		finished = run.FinishedAt
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO collector_runs (run_id, started_at, finished_at, symbols, exchange, interval, inserted, failed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (run_id) DO UPDATE
		SET finished_at = EXCLUDED.finished_at, inserted = EXCLUDED.inserted, failed = EXCLUDED.failed
	`, run.ID, run.StartedAt, finished, run.Symbols, run.Exchange, run.Interval, run.Inserted, run.Failed)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

func ohlcBatch(series model.Series, rows []model.OHLC) (*pgx.Batch, error) {
	if series != model.SeriesOpenInterest && series != model.SeriesFundingRate {
		return nil, fmt.Errorf("series %q has no OHLC table", series)
	}

	// Table name comes from the closed set checked above.
	sql := `INSERT INTO ` + string(series) + ` (symbol, time_ms, open, high, low, close)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (symbol, time_ms) DO NOTHING`

	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(sql, r.Symbol, r.TimeMS, r.Open, r.High, r.Low, r.Close)
	}
	return batch, nil
}

func longShortBatch(rows []model.LongShortRatio) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO long_short_ratio (symbol, exchange, time_ms, long_percent, short_percent, ratio)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (symbol, exchange, time_ms) DO NOTHING
		`, r.Symbol, r.Exchange, r.TimeMS, r.LongPercent, r.ShortPercent, r.Ratio)
	}
	return batch
}

func liquidationBatch(rows []model.Liquidation) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(`
			INSERT INTO liquidations (symbol, time_ms, long_liq, short_liq)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (symbol, time_ms) DO NOTHING
		`, r.Symbol, r.TimeMS, r.LongUSD, r.ShortUSD)
	}
	return batch
}

// send executes a batch and counts rows skipped by ON CONFLICT.
func (s *Store) send(ctx context.Context, table string, batch *pgx.Batch) (InsertResult, error) {
	n := batch.Len()
	if n == 0 {
		return InsertResult{}, nil
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	var res InsertResult
	for i := 0; i < n; i++ {
		ct, err := results.Exec()
		if err != nil {
			return res, fmt.Errorf("insert %s: %w", table, err)
		}
		if ct.RowsAffected() == 0 {
			res.Conflicts++
		} else {
			res.Inserted++
		}
	}

	s.logger.Debug("inserted rows",
		"table", table,
		"inserted", res.Inserted,
		"conflicts", res.Conflicts,
	)

	return res, nil
}
