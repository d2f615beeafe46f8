package view

import (
	"errors"
	"testing"
	"time"

	"github.com/darvasboard/darvas-portal/internal/darvas"
	"github.com/darvasboard/darvas-portal/internal/market"
)

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.Local)
}

func reportFixture() *darvas.Report {
	week := []market.Bar{
		{Date: day(1), Open: 9, High: 10, Low: 5, Close: 9},
		{Date: day(2), Open: 10, High: 12, Low: 5, Close: 11},
		{Date: day(3), Open: 11, High: 12, Low: 6, Close: 10},
		{Date: day(4), Open: 8, High: 9, Low: 7, Close: 8},
	}
	return &darvas.Report{
		Symbol:        "AAPL",
		Week:          week,
		WeekHigh:      12,
		WeekLow:       5,
		GTTBuy:        12.06,
		Target:        12.60,
		High52:        40,
		High52Date:    day(2),
		Low52:         2,
		Low52Date:     day(20),
		LowMoreRecent: true,
	}
}

func findValue(info []KV, label string) string {
	for _, kv := range info {
		if kv.Label == label {
			return kv.Value
		}
	}
	return "<missing>"
}

func TestBuild_HighlightsAllTies(t *testing.T) {
	d := Build(reportFixture())

	if len(d.Week) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(d.Week))
	}

	// High = [10, 12, 12, 9]: rows 1 and 2 tie the max
	if d.Week[1].High.Highlight != HighlightHigh || d.Week[2].High.Highlight != HighlightHigh {
		t.Error("expected both max-High cells flagged")
	}
	if d.Week[0].High.Highlight != HighlightNone || d.Week[3].High.Highlight != HighlightNone {
		t.Error("expected non-extreme High cells unflagged")
	}

	// Low = [5, 5, 6, 7]: rows 0 and 1 tie the min
	if d.Week[0].Low.Highlight != HighlightLow || d.Week[1].Low.Highlight != HighlightLow {
		t.Error("expected both min-Low cells flagged")
	}
	if d.Week[2].Low.Highlight != HighlightNone || d.Week[3].Low.Highlight != HighlightNone {
		t.Error("expected non-extreme Low cells unflagged")
	}
}

func TestBuild_HighlightAppliesToAnyColumn(t *testing.T) {
	r := reportFixture()
	// An Open that equals the week high gets the same flag
	r.Week[2].Open = 12
	d := Build(r)

	if d.Week[2].Open.Highlight != HighlightHigh {
		t.Error("expected Open cell matching the week high to be flagged")
	}
}

func TestBuild_Metrics(t *testing.T) {
	d := Build(reportFixture())

	if d.GTTBuy.Value != "$12.06" {
		t.Errorf("GTT buy = %q", d.GTTBuy.Value)
	}
	if d.Target.Value != "$12.60" {
		t.Errorf("target = %q", d.Target.Value)
	}
	if d.High52.Value != "$40.00" || d.High52.Caption != "Date: 2026-08-02" {
		t.Errorf("52-week high = %q (%q)", d.High52.Value, d.High52.Caption)
	}
	if d.Low52.Value != "$2.00" || d.Low52.Caption != "Date: 2026-08-20" {
		t.Errorf("52-week low = %q (%q)", d.Low52.Value, d.Low52.Caption)
	}
}

func TestBuild_SignalGlyphs(t *testing.T) {
	r := reportFixture()

	d := Build(r)
	if d.Signal == nil || !d.Signal.Green || d.Signal.Caption != "Low is more recent" {
		t.Errorf("expected green signal, got %+v", d.Signal)
	}

	r.LowMoreRecent = false
	d = Build(r)
	if d.Signal.Green || d.Signal.Caption != "High is more recent" {
		t.Errorf("expected red signal, got %+v", d.Signal)
	}
}

func TestCompanyInfo_AbsentVersusZero(t *testing.T) {
	r := reportFixture()
	zero := 0.0
	pe := 28.657
	mc := int64(96342110000)
	avg := int64(54321000)
	r.Fundamentals = &market.Fundamentals{
		Symbol:        "AAPL",
		Name:          "Apple Inc.",
		Sector:        "Technology",
		MarketCap:     &mc,
		TrailingPE:    &pe,
		DividendYield: &zero, // present and zero, a real 0.00% yield
		AverageVolume: &avg,
		// Industry and Beta absent
	}

	info := Build(r).Company

	if got := findValue(info, "Dividend Yield"); got != "0.00%" {
		t.Errorf("zero yield = %q, want 0.00%%", got)
	}
	if got := findValue(info, "Market Cap"); got != "$96,342,110,000" {
		t.Errorf("market cap = %q", got)
	}
	if got := findValue(info, "P/E Ratio"); got != "28.66" {
		t.Errorf("P/E = %q", got)
	}
	if got := findValue(info, "Average Volume"); got != "54,321,000" {
		t.Errorf("average volume = %q", got)
	}
	if got := findValue(info, "Industry"); got != "N/A" {
		t.Errorf("absent industry = %q, want N/A", got)
	}
	if got := findValue(info, "Beta"); got != "N/A" {
		t.Errorf("absent beta = %q, want N/A", got)
	}
}

func TestCompanyInfo_MissingYieldIsNA(t *testing.T) {
	r := reportFixture()
	r.Fundamentals = &market.Fundamentals{Symbol: "AAPL", Name: "Apple Inc."}

	info := Build(r).Company
	if got := findValue(info, "Dividend Yield"); got != "N/A" {
		t.Errorf("absent yield = %q, want N/A", got)
	}
}

func TestBuildError(t *testing.T) {
	d := BuildError("NOSUCH", errors.New("failed to retrieve history for NOSUCH: provider error"))

	if d.Error == nil {
		t.Fatal("expected error banner")
	}
	if d.Error.Hint == "" {
		t.Error("expected static hint")
	}
	// All-or-nothing: no data sections below the failure
	if len(d.Company) != 0 || len(d.Week) != 0 || d.Signal != nil {
		t.Error("expected no data sections on error")
	}
	if d.GTTBuy.Value != "" {
		t.Error("expected empty metrics on error")
	}
}
