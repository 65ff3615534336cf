package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// OHLCPoint is one candle from the open interest and funding rate history
// endpoints. Values arrive as numbers or numeric strings.
type OHLCPoint struct {
	Time  flexInt   `json:"time"` // Unix milliseconds
	Open  flexFloat `json:"open"`
	High  flexFloat `json:"high"`
	Low   flexFloat `json:"low"`
	Close flexFloat `json:"close"`
}

// LongShortPoint from GET /api/futures/top-long-short-account-ratio/history
type LongShortPoint struct {
	Time         flexInt   `json:"time"`
	LongPercent  flexFloat `json:"top_account_long_percent"`
	ShortPercent flexFloat `json:"top_account_short_percent"`
	Ratio        flexFloat `json:"top_account_long_short_ratio"`
}

// LiquidationPoint from GET /api/futures/liquidation/aggregated-history
type LiquidationPoint struct {
	Time     flexInt   `json:"time"`
	LongUSD  flexFloat `json:"aggregated_long_liquidation_usd"`
	ShortUSD flexFloat `json:"aggregated_short_liquidation_usd"`
}

// flexFloat decodes a JSON number, numeric string or null.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("parse float %q: %w", b, err)
	}
	*f = flexFloat(v)
	return nil
}

// flexInt decodes a JSON integer or numeric string.
type flexInt int64

func (i *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*i = 0
		return nil
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		// Some endpoints send float timestamps (1.7e12).
		fv, ferr := strconv.ParseFloat(string(b), 64)
		if ferr != nil {
			return fmt.Errorf("parse int %q: %w", b, err)
		}
		v = int64(fv)
	}
	*i = flexInt(v)
	return nil
}

// flexString decodes a JSON string or number as its text.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(b)
	return nil
}
