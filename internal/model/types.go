package model

import (
	"time"

	"github.com/google/uuid"
)

// OHLC is one open/high/low/close candle. Used for aggregated open interest
// and OI-weighted funding rates.
type OHLC struct {
	Symbol string // Primary key part
	TimeMS int64  // Primary key part (ms since epoch)
	Open   float64
	High   float64
	Low    float64
	Close  float64
}

// LongShortRatio is the top-account long/short split on one exchange.
type LongShortRatio struct {
	Symbol       string // Primary key part
	Exchange     string // Primary key part (e.g., "Binance")
	TimeMS       int64  // Primary key part
	LongPercent  float64
	ShortPercent float64
	Ratio        float64
}

// Liquidation is aggregated liquidation volume in USD.
type Liquidation struct {
	Symbol   string // Primary key part
	TimeMS   int64  // Primary key part
	LongUSD  float64
	ShortUSD float64
}

// Series names the four collected futures series.
type Series string

const (
	SeriesOpenInterest   Series = "open_interest"
	SeriesFundingRate    Series = "funding_rate"
	SeriesLongShortRatio Series = "long_short_ratio"
	SeriesLiquidations   Series = "liquidations"
)

// AllSeries lists the series in collection order.
var AllSeries = []Series{
	SeriesOpenInterest,
	SeriesFundingRate,
	SeriesLongShortRatio,
	SeriesLiquidations,
}

// Run records one collector invocation.
type Run struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Symbols    []string
	Exchange   string
	Interval   string
	Inserted   int64
	Failed     int // Symbols that returned an error
}

// NewRun starts a run with a fresh ID.
func NewRun(symbols []string, exchange, interval string) Run {
	return Run{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
		Symbols:   symbols,
		Exchange:  exchange,
		Interval:  interval,
	}
}
