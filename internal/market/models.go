// Package market fetches price history and fundamentals from the upstream
// market-data provider.
package market

import (
	"context"
	"time"
)

// Bar represents a single trading day's price data.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Fundamentals holds the descriptive and fundamental snapshot for a ticker.
// Pointer fields distinguish "provider did not return this field" (nil) from
// a genuine zero value; renderers map nil to an explicit N/A marker.
type Fundamentals struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name,omitempty"`
	Sector        string   `json:"sector,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	MarketCap     *int64   `json:"market_cap,omitempty"`
	TrailingPE    *float64 `json:"trailing_pe,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"` // fraction, e.g. 0.0044
	AverageVolume *int64   `json:"average_volume,omitempty"`
	Beta          *float64 `json:"beta,omitempty"`
}

// Client is the upstream market-data contract. History returns daily bars in
// ascending date order; an empty slice is a valid result (closed market,
// no trading days in range). Every upstream failure is a *RetrievalError.
type Client interface {
	History(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error)
	Fundamentals(ctx context.Context, symbol string) (*Fundamentals, error)
}
