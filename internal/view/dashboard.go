// Package view assembles display-ready values for the dashboard renderers.
// It owns every formatting decision; renderers (HTML template, markdown)
// only lay the strings out.
package view

import (
	"github.com/darvasboard/darvas-portal/internal/common"
	"github.com/darvasboard/darvas-portal/internal/darvas"
)

// Cell highlight flags for the weekly OHLC table.
const (
	HighlightNone = ""
	HighlightHigh = "high"
	HighlightLow  = "low"
)

// KV is one label/value pair in the company information block.
type KV struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Metric is a labeled value with an optional caption.
type Metric struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Caption string `json:"caption,omitempty"`
}

// Cell is one formatted table cell with its highlight flag.
type Cell struct {
	Value     string `json:"value"`
	Highlight string `json:"highlight,omitempty"`
}

// WeekRow is one trading day in the weekly OHLC table.
type WeekRow struct {
	Date  string `json:"date"`
	Open  Cell   `json:"open"`
	High  Cell   `json:"high"`
	Low   Cell   `json:"low"`
	Close Cell   `json:"close"`
}

// Signal is the recency indicator: green when the 52-week low is more
// recent than the 52-week high, red otherwise.
type Signal struct {
	Glyph   string `json:"glyph"`
	Caption string `json:"caption"`
	Green   bool   `json:"green"`
}

// ErrorBanner is the single user-facing error state. When set, no data
// sections are populated.
type ErrorBanner struct {
	Message string `json:"message"`
	Hint    string `json:"hint"`
}

// Dashboard is the complete display model for one ticker interaction.
type Dashboard struct {
	Ticker  string       `json:"ticker"`
	Company []KV         `json:"company,omitempty"`
	Week    []WeekRow    `json:"week,omitempty"`
	GTTBuy  Metric       `json:"gtt_buy,omitempty"`
	Target  Metric       `json:"target,omitempty"`
	High52  Metric       `json:"high_52,omitempty"`
	Low52   Metric       `json:"low_52,omitempty"`
	Signal  *Signal      `json:"signal,omitempty"`
	Error   *ErrorBanner `json:"error,omitempty"`
}

// errorHint is the static recovery hint shown under every error banner.
const errorHint = "Please check if the ticker symbol is valid and try again."

// BuildError produces a dashboard holding only the error banner.
func BuildError(ticker string, err error) *Dashboard {
	return &Dashboard{
		Ticker: ticker,
		Error: &ErrorBanner{
			Message: err.Error(),
			Hint:    errorHint,
		},
	}
}

// Build maps a computed report to its display model.
func Build(r *darvas.Report) *Dashboard {
	d := &Dashboard{
		Ticker:  r.Symbol,
		Company: companyInfo(r),
		Week:    weekTable(r),
		GTTBuy:  Metric{Label: "GTT Order Buy Price", Value: common.FormatPrice(r.GTTBuy)},
		Target:  Metric{Label: "Target Price", Value: common.FormatPrice(r.Target)},
		High52: Metric{
			Label:   "52-Week High",
			Value:   common.FormatPrice(r.High52),
			Caption: "Date: " + r.High52Date.Format("2006-01-02"),
		},
		Low52: Metric{
			Label:   "52-Week Low",
			Value:   common.FormatPrice(r.Low52),
			Caption: "Date: " + r.Low52Date.Format("2006-01-02"),
		},
	}

	if r.LowMoreRecent {
		d.Signal = &Signal{Glyph: "\U0001F7E2", Caption: "Low is more recent", Green: true}
	} else {
		d.Signal = &Signal{Glyph: "\U0001F534", Caption: "High is more recent", Green: false}
	}

	return d
}

// companyInfo builds the fundamentals block in display order. Absent fields
// render as the N/A marker; a present zero is formatted like any other value.
func companyInfo(r *darvas.Report) []KV {
	f := r.Fundamentals

	naString := func(s string) string {
		if s == "" {
			return common.NotAvailable
		}
		return s
	}

	info := []KV{
		{Label: "Company Name", Value: common.NotAvailable},
		{Label: "Sector", Value: common.NotAvailable},
		{Label: "Industry", Value: common.NotAvailable},
		{Label: "Market Cap", Value: common.NotAvailable},
		{Label: "P/E Ratio", Value: common.NotAvailable},
		{Label: "Dividend Yield", Value: common.NotAvailable},
		{Label: "Average Volume", Value: common.NotAvailable},
		{Label: "Beta", Value: common.NotAvailable},
	}
	if f == nil {
		return info
	}

	info[0].Value = naString(f.Name)
	info[1].Value = naString(f.Sector)
	info[2].Value = naString(f.Industry)
	if f.MarketCap != nil {
		info[3].Value = common.FormatMarketCap(*f.MarketCap)
	}
	if f.TrailingPE != nil {
		info[4].Value = common.FormatRatio(*f.TrailingPE)
	}
	if f.DividendYield != nil {
		info[5].Value = common.FormatYieldPct(*f.DividendYield)
	}
	if f.AverageVolume != nil {
		info[6].Value = common.FormatGroupedInt(*f.AverageVolume)
	}
	if f.Beta != nil {
		info[7].Value = common.FormatRatio(*f.Beta)
	}
	return info
}

// weekTable formats the short-window OHLC rows. Any cell equal to the
// week's max High is flagged high; any cell equal to the week's min Low is
// flagged low. Every tying cell is flagged, not just the first.
func weekTable(r *darvas.Report) []WeekRow {
	rows := make([]WeekRow, 0, len(r.Week))
	for _, b := range r.Week {
		rows = append(rows, WeekRow{
			Date:  b.Date.Format("2006-01-02"),
			Open:  cell(b.Open, r.WeekHigh, r.WeekLow),
			High:  cell(b.High, r.WeekHigh, r.WeekLow),
			Low:   cell(b.Low, r.WeekHigh, r.WeekLow),
			Close: cell(b.Close, r.WeekHigh, r.WeekLow),
		})
	}
	return rows
}

func cell(v, weekHigh, weekLow float64) Cell {
	c := Cell{Value: common.FormatPrice(v)}
	switch v {
	case weekHigh:
		c.Highlight = HighlightHigh
	case weekLow:
		c.Highlight = HighlightLow
	}
	return c
}
