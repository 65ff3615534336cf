package api

import "github.com/rickgao/coinglass-data/internal/model"

// ConvertOHLC converts API candles to model rows.
func ConvertOHLC(symbol string, points []OHLCPoint) []model.OHLC {
	out := make([]model.OHLC, 0, len(points))
	for _, p := range points {
		out = append(out, model.OHLC{
			Symbol: symbol,
			TimeMS: int64(p.Time),
			Open:   float64(p.Open),
			High:   float64(p.High),
			Low:    float64(p.Low),
			Close:  float64(p.Close),
		})
	}
	return out
}

// ConvertLongShort converts API ratio points to model rows.
// Missing percentages decode as 0.
func ConvertLongShort(symbol, exchange string, points []LongShortPoint) []model.LongShortRatio {
	out := make([]model.LongShortRatio, 0, len(points))
	for _, p := range points {
		out = append(out, model.LongShortRatio{
			Symbol:       symbol,
			Exchange:     exchange,
			TimeMS:       int64(p.Time),
			LongPercent:  float64(p.LongPercent),
			ShortPercent: float64(p.ShortPercent),
			Ratio:        float64(p.Ratio),
		})
	}
	return out
}

// ConvertLiquidations converts API liquidation points to model rows.
func ConvertLiquidations(symbol string, points []LiquidationPoint) []model.Liquidation {
	out := make([]model.Liquidation, 0, len(points))
	for _, p := range points {
		out = append(out, model.Liquidation{
			Symbol:   symbol,
			TimeMS:   int64(p.Time),
			LongUSD:  float64(p.LongUSD),
			ShortUSD: float64(p.ShortUSD),
		})
	}
	return out
}
