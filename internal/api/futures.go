package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rickgao/coinglass-data/internal/model"
)

// Endpoint paths.
const (
	PathSupportedCoins      = "/api/futures/supported-coins"
	PathOpenInterestHistory = "/api/futures/open-interest/aggregated-history"
	PathFundingRateHistory  = "/api/futures/funding-rate/oi-weight-history"
	PathLongShortHistory    = "/api/futures/top-long-short-account-ratio/history"
	PathLiquidationHistory  = "/api/futures/liquidation/aggregated-history"
)

// SupportedCoins returns the coins with futures data.
func (c *Client) SupportedCoins(ctx context.Context) ([]string, error) {
	var coins []string
	if err := c.get(ctx, PathSupportedCoins, nil, &coins); err != nil {
		return nil, fmt.Errorf("get supported coins: %w", err)
	}
	return coins, nil
}

// OpenInterestHistory returns aggregated open interest candles.
func (c *Client) OpenInterestHistory(ctx context.Context, symbol, interval string) ([]model.OHLC, error) {
	c.logger.Info("fetching open interest", "symbol", symbol, "interval", interval)
	points, err := c.ohlc(ctx, PathOpenInterestHistory, symbol, interval)
	if err != nil {
		return nil, fmt.Errorf("get open interest %s: %w", symbol, err)
	}
	return ConvertOHLC(symbol, points), nil
}

// FundingRateHistory returns OI-weighted funding rate candles.
func (c *Client) FundingRateHistory(ctx context.Context, symbol, interval string) ([]model.OHLC, error) {
	c.logger.Info("fetching funding rate", "symbol", symbol, "interval", interval)
	points, err := c.ohlc(ctx, PathFundingRateHistory, symbol, interval)
	if err != nil {
		return nil, fmt.Errorf("get funding rate %s: %w", symbol, err)
	}
	return ConvertOHLC(symbol, points), nil
}

// LongShortRatioHistory returns top-account long/short ratios on exchange.
func (c *Client) LongShortRatioHistory(ctx context.Context, symbol, exchange, interval string) ([]model.LongShortRatio, error) {
	c.logger.Info("fetching long/short ratio", "symbol", symbol, "exchange", exchange, "interval", interval)
	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("exchangeName", exchange)
	query.Set("interval", interval)

	var points []LongShortPoint
	if err := c.get(ctx, PathLongShortHistory, query, &points); err != nil {
		return nil, fmt.Errorf("get long/short ratio %s: %w", symbol, err)
	}
	return ConvertLongShort(symbol, exchange, points), nil
}

// LiquidationHistory returns aggregated liquidations.
func (c *Client) LiquidationHistory(ctx context.Context, symbol, interval string) ([]model.Liquidation, error) {
	c.logger.Info("fetching liquidations", "symbol", symbol, "interval", interval)
	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("interval", interval)

	var points []LiquidationPoint
	if err := c.get(ctx, PathLiquidationHistory, query, &points); err != nil {
		return nil, fmt.Errorf("get liquidations %s: %w", symbol, err)
	}
	return ConvertLiquidations(symbol, points), nil
}

func (c *Client) ohlc(ctx context.Context, path, symbol, interval string) ([]OHLCPoint, error) {
	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("interval", interval)

	var points []OHLCPoint
	if err := c.get(ctx, path, query, &points); err != nil {
		return nil, err
	}
	return points, nil
}
