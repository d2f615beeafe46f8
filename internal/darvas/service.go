package darvas

import (
	"context"
	"strings"
	"time"

	"github.com/darvasboard/darvas-portal/internal/common"
	"github.com/darvasboard/darvas-portal/internal/market"
)

// Service runs the fetch-then-compute pipeline for a ticker. It holds no
// state between interactions.
type Service struct {
	client market.Client
	logger *common.Logger
	now    func() time.Time
}

// NewService creates a service over the given market client.
func NewService(client market.Client, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// SetNow overrides the clock. Test hook.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// TickerReport fetches the short-week series, the trailing-year series, and
// the fundamentals snapshot for symbol, then derives the full report.
// The symbol is trimmed and uppercased first. Retrieval stops at the first
// upstream failure.
func (s *Service) TickerReport(ctx context.Context, symbol string) (*Report, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	today := s.now()
	weekStart, weekEnd := WeekWindow(today)
	yearStart, yearEnd := YearWindow(today)

	week, err := s.client.History(ctx, symbol, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	fundamentals, err := s.client.Fundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}

	year, err := s.client.History(ctx, symbol, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}

	report, err := BuildReport(symbol, weekStart, weekEnd, week, year, fundamentals)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Debug().
			Str("symbol", symbol).
			Int("week_bars", len(week)).
			Int("year_bars", len(year)).
			Msg("ticker report built")
	}
	return report, nil
}
