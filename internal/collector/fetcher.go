package collector

import (
	"context"

	"DailyBriefing/internal/model"
)

// Fetcher provides daily price history for globally listed symbols
// (US tickers, index symbols, FX pairs).
type Fetcher interface {
	FetchDailySeries(ctx context.Context, symbol string, days int) (model.PriceSeries, error)
	Name() string
}

// DomesticFetcher provides Korean market data: per-ticker prices, valuation,
// investor flow and the market-cap universe.
type DomesticFetcher interface {
	NearestBusinessDay(ctx context.Context) (string, error)
	FetchDailySeries(ctx context.Context, code string, sessions int) (model.PriceSeries, error)
	FetchFundamentals(ctx context.Context, code, date string) (*model.Fundamentals, error)
	FetchMarketFlow(ctx context.Context, market, date string) (*model.InvestorFlow, error)
	FetchTickerFlow(ctx context.Context, code, date string) (*model.InvestorFlow, error)
	FetchTopCaps(ctx context.Context, market, date string, n int) ([]string, error)
	TickerName(ctx context.Context, code string) string
	Name() string
}
