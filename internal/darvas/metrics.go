package darvas

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/darvasboard/darvas-portal/internal/market"
)

// ErrEmptySeries is returned when a metric is requested over a series with
// no bars. An empty series is a valid fetch result (closed market, unknown
// symbol with a clean envelope) but has no extrema.
var ErrEmptySeries = errors.New("series contains no bars")

// Extrema returns the maximum High and minimum Low across the series.
func Extrema(bars []market.Bar) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, ErrEmptySeries
	}
	high = bars[0].High
	low = bars[0].Low
	for _, b := range bars[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// ExtremaWithDates returns the maximum High and minimum Low across the
// series together with the date of the first bar attaining each extreme.
// Ties break to the earliest date: the scan only replaces an extreme on a
// strictly better value.
func ExtremaWithDates(bars []market.Bar) (high float64, highDate time.Time, low float64, lowDate time.Time, err error) {
	if len(bars) == 0 {
		return 0, time.Time{}, 0, time.Time{}, ErrEmptySeries
	}
	high = bars[0].High
	highDate = bars[0].Date
	low = bars[0].Low
	lowDate = bars[0].Date
	for _, b := range bars[1:] {
		if b.High > high {
			high = b.High
			highDate = b.Date
		}
		if b.Low < low {
			low = b.Low
			lowDate = b.Date
		}
	}
	return high, highDate, low, lowDate, nil
}

// GTTBuyPrice is the good-till-triggered buy threshold: 0.5% above the
// week's high, rounded to cents. Rounding here and in TargetPrice is half
// away from zero (decimal.Round), matching display rounding.
func GTTBuyPrice(weekHigh float64) float64 {
	return decimal.NewFromFloat(weekHigh).
		Mul(decimal.NewFromFloat(1.005)).
		Round(2).
		InexactFloat64()
}

// TargetPrice is the sell target: 4.5% above the buy price, rounded to cents.
func TargetPrice(buyPrice float64) float64 {
	return decimal.NewFromFloat(buyPrice).
		Mul(decimal.NewFromFloat(1.045)).
		Round(2).
		InexactFloat64()
}

// RecencySignal reports whether the 52-week low was set strictly later than
// the 52-week high. Dates only; the time component is ignored. Equal dates
// give false.
func RecencySignal(highDate, lowDate time.Time) bool {
	return dateOnly(lowDate).After(dateOnly(highDate))
}
