package darvas

import (
	"time"

	"github.com/darvasboard/darvas-portal/internal/market"
)

// Report holds everything derived for one ticker interaction. Nothing here
// is cached or mutated; each interaction rebuilds a Report from scratch.
type Report struct {
	Symbol       string               `json:"symbol"`
	Fundamentals *market.Fundamentals `json:"fundamentals"`

	Week      []market.Bar `json:"week"`
	WeekStart time.Time    `json:"week_start"`
	WeekEnd   time.Time    `json:"week_end"`
	WeekHigh  float64      `json:"week_high"`
	WeekLow   float64      `json:"week_low"`

	GTTBuy float64 `json:"gtt_buy"`
	Target float64 `json:"target"`

	High52        float64   `json:"high_52"`
	High52Date    time.Time `json:"high_52_date"`
	Low52         float64   `json:"low_52"`
	Low52Date     time.Time `json:"low_52_date"`
	LowMoreRecent bool      `json:"low_more_recent"`
}

// BuildReport computes all derived metrics from the fetched series. Either
// series being empty fails the whole report with ErrEmptySeries; there is no
// partial result.
func BuildReport(symbol string, weekStart, weekEnd time.Time, week, year []market.Bar, f *market.Fundamentals) (*Report, error) {
	weekHigh, weekLow, err := Extrema(week)
	if err != nil {
		return nil, err
	}

	high52, high52Date, low52, low52Date, err := ExtremaWithDates(year)
	if err != nil {
		return nil, err
	}

	gtt := GTTBuyPrice(weekHigh)

	return &Report{
		Symbol:        symbol,
		Fundamentals:  f,
		Week:          week,
		WeekStart:     weekStart,
		WeekEnd:       weekEnd,
		WeekHigh:      weekHigh,
		WeekLow:       weekLow,
		GTTBuy:        gtt,
		Target:        TargetPrice(gtt),
		High52:        high52,
		High52Date:    high52Date,
		Low52:         low52,
		Low52Date:     low52Date,
		LowMoreRecent: RecencySignal(high52Date, low52Date),
	}, nil
}
