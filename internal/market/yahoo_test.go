package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/darvasboard/darvas-portal/internal/config"
)

func newTestClient(chartHandler, summaryHandler http.HandlerFunc) (*YahooClient, func()) {
	mux := http.NewServeMux()
	if chartHandler != nil {
		mux.HandleFunc("/chart/", chartHandler)
	}
	if summaryHandler != nil {
		mux.HandleFunc("/summary/", summaryHandler)
	}
	srv := httptest.NewServer(mux)

	client := NewYahooClient(config.MarketConfig{
		ChartURL:   srv.URL + "/chart",
		SummaryURL: srv.URL + "/summary",
		Timeout:    "5s",
	}, nil)
	return client, srv.Close
}

func chartBody(timestamps []int64, open, high, low, cls []interface{}, volume []interface{}) string {
	b := fmt.Sprintf(`{"chart":{"result":[{"timestamp":%s,"indicators":{"quote":[{"open":%s,"high":%s,"low":%s,"close":%s,"volume":%s}]}}],"error":null}}`,
		jsonArr(timestamps), jsonAny(open), jsonAny(high), jsonAny(low), jsonAny(cls), jsonAny(volume))
	return b
}

func jsonArr(v []int64) string {
	s := "["
	for i, n := range v {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", n)
	}
	return s + "]"
}

func jsonAny(v []interface{}) string {
	s := "["
	for i, n := range v {
		if i > 0 {
			s += ","
		}
		if n == nil {
			s += "null"
		} else {
			s += fmt.Sprintf("%v", n)
		}
	}
	return s + "]"
}

func TestHistory_ParsesBarsAscending(t *testing.T) {
	day1 := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC).Unix()
	day2 := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC).Unix()

	client, cleanup := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		// Served newest-first to verify the client sorts ascending
		fmt.Fprint(w, chartBody(
			[]int64{day2, day1},
			[]interface{}{20.0, 10.0},
			[]interface{}{22.0, 12.0},
			[]interface{}{19.0, 9.0},
			[]interface{}{21.0, 11.0},
			[]interface{}{2000, 1000},
		))
	}, nil)
	defer cleanup()

	bars, err := client.History(context.Background(), "AAPL", time.Unix(day1, 0), time.Unix(day2, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Error("expected bars sorted ascending by date")
	}
	if bars[0].High != 12.0 || bars[1].High != 22.0 {
		t.Errorf("unexpected highs: %v, %v", bars[0].High, bars[1].High)
	}
	if bars[0].Volume != 1000 {
		t.Errorf("expected volume 1000, got %d", bars[0].Volume)
	}
}

func TestHistory_SkipsNullBars(t *testing.T) {
	day1 := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC).Unix()
	day2 := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC).Unix()

	client, cleanup := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody(
			[]int64{day1, day2},
			[]interface{}{10.0, nil},
			[]interface{}{12.0, nil},
			[]interface{}{9.0, nil},
			[]interface{}{11.0, nil},
			[]interface{}{1000, nil},
		))
	}, nil)
	defer cleanup()

	bars, err := client.History(context.Background(), "AAPL", time.Unix(day1, 0), time.Unix(day2, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected null bar to be skipped, got %d bars", len(bars))
	}
}

func TestHistory_EmptyTimestampsIsNotAnError(t *testing.T) {
	client, cleanup := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[{}]}}],"error":null}}`)
	}, nil)
	defer cleanup()

	bars, err := client.History(context.Background(), "AAPL", time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		t.Fatalf("expected empty series to be valid, got error: %v", err)
	}
	if len(bars) != 0 {
		t.Fatalf("expected 0 bars, got %d", len(bars))
	}
}

func TestHistory_ProviderErrorEnvelope(t *testing.T) {
	client, cleanup := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}, nil)
	defer cleanup()

	_, err := client.History(context.Background(), "NOSUCH", time.Now().AddDate(0, 0, -7), time.Now())
	if err == nil {
		t.Fatal("expected error for unknown symbol")
	}

	var re *RetrievalError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RetrievalError, got %T", err)
	}
	if re.Symbol != "NOSUCH" || re.Op != "history" {
		t.Errorf("unexpected error fields: %+v", re)
	}
}

func TestHistory_MalformedBody(t *testing.T) {
	client, cleanup := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}, nil)
	defer cleanup()

	_, err := client.History(context.Background(), "AAPL", time.Now().AddDate(0, 0, -7), time.Now())
	var re *RetrievalError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RetrievalError for malformed body, got %v", err)
	}
}

func TestHistory_SendsEpochRangeParams(t *testing.T) {
	start := time.Date(2026, 8, 14, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)

	var gotPeriod1, gotPeriod2 string
	client, cleanup := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPeriod1 = r.URL.Query().Get("period1")
		gotPeriod2 = r.URL.Query().Get("period2")
		fmt.Fprint(w, `{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[{}]}}],"error":null}}`)
	}, nil)
	defer cleanup()

	if _, err := client.History(context.Background(), "AAPL", start, end); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPeriod1 != fmt.Sprintf("%d", start.Unix()) {
		t.Errorf("period1 = %s, want %d", gotPeriod1, start.Unix())
	}
	// period2 is exclusive, pushed one day past the requested end
	if gotPeriod2 != fmt.Sprintf("%d", end.AddDate(0, 0, 1).Unix()) {
		t.Errorf("period2 = %s, want %d", gotPeriod2, end.AddDate(0, 0, 1).Unix())
	}
}

func TestFundamentals_AllFieldsPresent(t *testing.T) {
	client, cleanup := newTestClient(nil, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":[{
			"assetProfile":{"sector":"Technology","industry":"Consumer Electronics"},
			"price":{"longName":"Apple Inc.","marketCap":{"raw":96342110000}},
			"summaryDetail":{"trailingPE":{"raw":28.657},"dividendYield":{"raw":0.0044},"averageVolume":{"raw":54321000},"beta":{"raw":1.28}}
		}],"error":null}}`)
	})
	defer cleanup()

	f, err := client.Fundamentals(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Name != "Apple Inc." {
		t.Errorf("unexpected name %q", f.Name)
	}
	if f.Sector != "Technology" || f.Industry != "Consumer Electronics" {
		t.Errorf("unexpected sector/industry: %q / %q", f.Sector, f.Industry)
	}
	if f.MarketCap == nil || *f.MarketCap != 96342110000 {
		t.Errorf("unexpected market cap: %v", f.MarketCap)
	}
	if f.DividendYield == nil || *f.DividendYield != 0.0044 {
		t.Errorf("unexpected dividend yield: %v", f.DividendYield)
	}
	if f.AverageVolume == nil || *f.AverageVolume != 54321000 {
		t.Errorf("unexpected average volume: %v", f.AverageVolume)
	}
}

func TestFundamentals_AbsentFieldsStayNil(t *testing.T) {
	client, cleanup := newTestClient(nil, func(w http.ResponseWriter, r *http.Request) {
		// No summaryDetail module at all, no marketCap raw value
		fmt.Fprint(w, `{"quoteSummary":{"result":[{
			"price":{"shortName":"Some Corp","marketCap":{}}
		}],"error":null}}`)
	})
	defer cleanup()

	f, err := client.Fundamentals(context.Background(), "SOME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Name != "Some Corp" {
		t.Errorf("expected shortName fallback, got %q", f.Name)
	}
	if f.MarketCap != nil {
		t.Error("expected nil market cap for absent raw value")
	}
	if f.TrailingPE != nil || f.DividendYield != nil || f.AverageVolume != nil || f.Beta != nil {
		t.Error("expected all summaryDetail fields to stay nil")
	}
}

func TestFundamentals_ZeroYieldIsPresent(t *testing.T) {
	client, cleanup := newTestClient(nil, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteSummary":{"result":[{
			"price":{"longName":"Zero Yield Corp"},
			"summaryDetail":{"dividendYield":{"raw":0}}
		}],"error":null}}`)
	})
	defer cleanup()

	f, err := client.Fundamentals(context.Background(), "ZERO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.DividendYield == nil {
		t.Fatal("expected zero yield to be present, not nil")
	}
	if *f.DividendYield != 0 {
		t.Errorf("expected yield 0, got %v", *f.DividendYield)
	}
}

func TestFundamentals_ProviderError(t *testing.T) {
	client, cleanup := newTestClient(nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found"}}}`)
	})
	defer cleanup()

	_, err := client.Fundamentals(context.Background(), "NOSUCH")
	var re *RetrievalError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RetrievalError, got %v", err)
	}
	if re.Op != "fundamentals" {
		t.Errorf("unexpected op %q", re.Op)
	}
}
