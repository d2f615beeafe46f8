package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/darvasboard/darvas-portal/internal/common"
	"github.com/darvasboard/darvas-portal/internal/config"
)

// summaryModules is the set of quoteSummary modules needed for the
// fundamentals snapshot.
const summaryModules = "assetProfile,price,summaryDetail"

// YahooClient implements Client against the Yahoo Finance public API.
type YahooClient struct {
	cfg        config.MarketConfig
	httpClient *http.Client
	logger     *common.Logger
}

// NewYahooClient creates a client targeting the configured Yahoo endpoints.
func NewYahooClient(cfg config.MarketConfig, logger *common.Logger) *YahooClient {
	return &YahooClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.GetTimeout()},
		logger:     logger,
	}
}

// yahooChart is the response envelope of the Yahoo chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooNumber is Yahoo's wrapped numeric field. An absent field decodes with
// Raw == nil, which is how "not available" is detected.
type yahooNumber struct {
	Raw *float64 `json:"raw"`
}

// yahooSummary is the response envelope of the quoteSummary API.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile *struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
			Price *struct {
				LongName  string      `json:"longName"`
				ShortName string      `json:"shortName"`
				MarketCap yahooNumber `json:"marketCap"`
			} `json:"price"`
			SummaryDetail *struct {
				TrailingPE    yahooNumber `json:"trailingPE"`
				DividendYield yahooNumber `json:"dividendYield"`
				AverageVolume yahooNumber `json:"averageVolume"`
				Beta          yahooNumber `json:"beta"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// get performs a GET and returns the body. The body is size-limited; any
// transport failure or non-2xx status is returned as an error.
func (c *YahooClient) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	userAgent := c.cfg.UserAgent
	if userAgent == "" {
		userAgent = "Mozilla/5.0"
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach provider: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// History fetches daily bars for symbol between start and end (inclusive).
// Null bars (market holidays) are skipped; bars are returned ascending by
// date. An empty result with a clean envelope is not an error.
func (c *YahooClient) History(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	q := url.Values{}
	q.Set("period1", fmt.Sprintf("%d", start.Unix()))
	// period2 is exclusive; push it to the end of the last requested day
	q.Set("period2", fmt.Sprintf("%d", end.AddDate(0, 0, 1).Unix()))
	q.Set("interval", "1d")
	u := fmt.Sprintf("%s/%s?%s", c.cfg.ChartURL, url.PathEscape(symbol), q.Encode())

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, retrievalErr(symbol, "history", err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, retrievalErr(symbol, "history", fmt.Errorf("failed to parse response: %w", err))
	}
	if chart.Chart.Error != nil {
		return nil, retrievalErr(symbol, "history",
			fmt.Errorf("provider error %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description))
	}
	if len(chart.Chart.Result) == 0 {
		return nil, retrievalErr(symbol, "history", fmt.Errorf("empty result envelope"))
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return []Bar{}, nil
	}

	quote := result.Indicators.Quote[0]
	bars := make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		cl := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // null bar (holiday etc.)
		}
		var vol int64
		if i < len(quote.Volume) {
			vol = int64(toFloat(quote.Volume[i]))
		}
		bars = append(bars, Bar{
			Date:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: vol,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	if c.logger != nil {
		c.logger.Debug().
			Str("symbol", symbol).
			Int("bars", len(bars)).
			Msg("fetched price history")
	}
	return bars, nil
}

// Fundamentals fetches the descriptive snapshot for symbol.
// Fields the provider omits stay nil.
func (c *YahooClient) Fundamentals(ctx context.Context, symbol string) (*Fundamentals, error) {
	q := url.Values{}
	q.Set("modules", summaryModules)
	u := fmt.Sprintf("%s/%s?%s", c.cfg.SummaryURL, url.PathEscape(symbol), q.Encode())

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, retrievalErr(symbol, "fundamentals", err)
	}

	var summary yahooSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, retrievalErr(symbol, "fundamentals", fmt.Errorf("failed to parse response: %w", err))
	}
	if summary.QuoteSummary.Error != nil {
		return nil, retrievalErr(symbol, "fundamentals",
			fmt.Errorf("provider error %s: %s", summary.QuoteSummary.Error.Code, summary.QuoteSummary.Error.Description))
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, retrievalErr(symbol, "fundamentals", fmt.Errorf("empty result envelope"))
	}

	result := summary.QuoteSummary.Result[0]
	f := &Fundamentals{Symbol: symbol}

	if p := result.AssetProfile; p != nil {
		f.Sector = p.Sector
		f.Industry = p.Industry
	}
	if p := result.Price; p != nil {
		f.Name = p.LongName
		if f.Name == "" {
			f.Name = p.ShortName
		}
		if p.MarketCap.Raw != nil {
			mc := int64(*p.MarketCap.Raw)
			f.MarketCap = &mc
		}
	}
	if d := result.SummaryDetail; d != nil {
		f.TrailingPE = d.TrailingPE.Raw
		f.DividendYield = d.DividendYield.Raw
		f.Beta = d.Beta.Raw
		if d.AverageVolume.Raw != nil {
			avg := int64(*d.AverageVolume.Raw)
			f.AverageVolume = &avg
		}
	}

	return f, nil
}
