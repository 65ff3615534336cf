package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/coinglass-data/internal/database"
	"github.com/rickgao/coinglass-data/internal/model"
)

// Source fetches futures series. Implemented by *api.Client.
type Source interface {
	OpenInterestHistory(ctx context.Context, symbol, interval string) ([]model.OHLC, error)
	FundingRateHistory(ctx context.Context, symbol, interval string) ([]model.OHLC, error)
	LongShortRatioHistory(ctx context.Context, symbol, exchange, interval string) ([]model.LongShortRatio, error)
	LiquidationHistory(ctx context.Context, symbol, interval string) ([]model.Liquidation, error)
}

// Sink persists futures series. Implemented by *database.Store.
type Sink interface {
	InsertOHLC(ctx context.Context, series model.Series, rows []model.OHLC) (database.InsertResult, error)
	InsertLongShortRatios(ctx context.Context, rows []model.LongShortRatio) (database.InsertResult, error)
	InsertLiquidations(ctx context.Context, rows []model.Liquidation) (database.InsertResult, error)
	SaveRun(ctx context.Context, run model.Run) error
}

// Config holds collector settings.
type Config struct {
	Symbols     []string
	Exchange    string // Exchange for long/short ratios
	Interval    string
	Concurrency int // Max in-flight requests per symbol
}

// Result is the outcome for one symbol.
type Result struct {
	Symbol string
	Counts map[model.Series]database.InsertResult
	Err    error
}

// Collector runs one collection pass over the configured symbols.
type Collector struct {
	cfg    Config
	source Source
	sink   Sink
	logger *slog.Logger
}

// New creates a Collector.
func New(cfg Config, source Source, sink Sink, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Collector{
		cfg:    cfg,
		source: source,
		sink:   sink,
		logger: logger,
	}
}

// Run collects every symbol once. Per-symbol failures are reported in the
// results; the returned error covers only run bookkeeping and cancellation.
func (c *Collector) Run(ctx context.Context) (model.Run, []Result, error) {
	run := model.NewRun(c.cfg.Symbols, c.cfg.Exchange, c.cfg.Interval)
	logger := c.logger.With("run_id", run.ID)

	if err := c.sink.SaveRun(ctx, run); err != nil {
		return run, nil, err
	}

	logger.Info("collection started",
		"symbols", c.cfg.Symbols,
		"exchange", c.cfg.Exchange,
		"interval", c.cfg.Interval,
	)

	results := make([]Result, 0, len(c.cfg.Symbols))
	for _, symbol := range c.cfg.Symbols {
		if err := ctx.Err(); err != nil {
			return run, results, err
		}

		res := c.collectSymbol(ctx, symbol)
		results = append(results, res)

		if res.Err != nil {
			run.Failed++
			logger.Error("symbol failed", "symbol", symbol, "error", res.Err)
			continue
		}
		for _, n := range res.Counts {
			run.Inserted += int64(n.Inserted)
		}
	}

	run.FinishedAt = time.Now().UTC()
	if err := c.sink.SaveRun(ctx, run); err != nil {
		return run, results, err
	}

	logger.Info("collection completed",
		"inserted", run.Inserted,
		"failed", run.Failed,
		"duration", run.FinishedAt.Sub(run.StartedAt),
	)

	return run, results, nil
}

// collectSymbol fetches the four series concurrently, then writes them.
func (c *Collector) collectSymbol(ctx context.Context, symbol string) Result {
	res := Result{Symbol: symbol, Counts: make(map[model.Series]database.InsertResult, len(model.AllSeries))}

	var (
		oi, fr []model.OHLC
		ls     []model.LongShortRatio
		liq    []model.Liquidation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	g.Go(func() (err error) {
		oi, err = c.source.OpenInterestHistory(gctx, symbol, c.cfg.Interval)
		return err
	})
	g.Go(func() (err error) {
		fr, err = c.source.FundingRateHistory(gctx, symbol, c.cfg.Interval)
		return err
	})
	g.Go(func() (err error) {
		ls, err = c.source.LongShortRatioHistory(gctx, symbol, c.cfg.Exchange, c.cfg.Interval)
		return err
	})
	g.Go(func() (err error) {
		liq, err = c.source.LiquidationHistory(gctx, symbol, c.cfg.Interval)
		return err
	})
	if err := g.Wait(); err != nil {
		res.Err = err
		return res
	}

	var err error
	if res.Counts[model.SeriesOpenInterest], err = c.sink.InsertOHLC(ctx, model.SeriesOpenInterest, oi); err != nil {
		res.Err = fmt.Errorf("store %s: %w", model.SeriesOpenInterest, err)
		return res
	}
	if res.Counts[model.SeriesFundingRate], err = c.sink.InsertOHLC(ctx, model.SeriesFundingRate, fr); err != nil {
		res.Err = fmt.Errorf("store %s: %w", model.SeriesFundingRate, err)
		return res
	}
	if res.Counts[model.SeriesLongShortRatio], err = c.sink.InsertLongShortRatios(ctx, ls); err != nil {
		res.Err = fmt.Errorf("store %s: %w", model.SeriesLongShortRatio, err)
		return res
	}
	if res.Counts[model.SeriesLiquidations], err = c.sink.InsertLiquidations(ctx, liq); err != nil {
		res.Err = fmt.Errorf("store %s: %w", model.SeriesLiquidations, err)
		return res
	}

	c.logger.Debug("symbol collected",
		"symbol", symbol,
		"open_interest", len(oi),
		"funding_rate", len(fr),
		"long_short_ratio", len(ls),
		"liquidations", len(liq),
	)

	return res
}
