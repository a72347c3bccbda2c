package collector

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
	"DailyBriefing/internal/platform/httpx"
)

// KRXFetcher implements DomesticFetcher against a KRX market-data gateway
// (any service exposing the pykrx-style daily endpoints).
type KRXFetcher struct {
	BaseURL string
	APIKey  string
	Client  *httpx.Client
}

// NewKRXFetcher creates a fetcher for the given gateway base URL.
func NewKRXFetcher(baseURL, apiKey string, client *httpx.Client) *KRXFetcher {
	return &KRXFetcher{BaseURL: baseURL, APIKey: apiKey, Client: client}
}

func (f *KRXFetcher) Name() string { return "krx" }

func (f *KRXFetcher) get(ctx context.Context, path string, query url.Values, out any) error {
	headers := map[string]string{}
	if f.APIKey != "" {
		headers["Authorization"] = "Bearer " + f.APIKey
	}
	u := fmt.Sprintf("%s%s?%s", f.BaseURL, path, query.Encode())
	return f.Client.GetJSON(ctx, u, headers, out)
}

// NearestBusinessDay returns the most recent KRX trading day as YYYYMMDD.
func (f *KRXFetcher) NearestBusinessDay(ctx context.Context) (string, error) {
	var resp struct {
		Date string `json:"date"`
	}
	q := url.Values{"hint": {time.Now().Format("20060102")}}
	if err := f.get(ctx, "/v1/business-day", q, &resp); err != nil {
		return "", fmt.Errorf("krx business day: %w", err)
	}
	if resp.Date == "" {
		return "", fmt.Errorf("krx: empty business day")
	}
	return resp.Date, nil
}

// FetchDailySeries returns the last sessions daily closes for code.
func (f *KRXFetcher) FetchDailySeries(ctx context.Context, code string, sessions int) (model.PriceSeries, error) {
	var resp struct {
		Rows []struct {
			Date  string `json:"date"` // YYYYMMDD
			Close string `json:"close"`
		} `json:"rows"`
	}
	q := url.Values{"code": {code}, "sessions": {fmt.Sprint(sessions)}}
	if err := f.get(ctx, "/v1/ohlcv", q, &resp); err != nil {
		return nil, fmt.Errorf("krx ohlcv %s: %w", code, err)
	}

	series := make(model.PriceSeries, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		d, err := time.Parse("20060102", row.Date)
		if err != nil {
			continue
		}
		c := calculator.ParseFloat(row.Close)
		if !calculator.Defined(c) || c == 0 {
			continue
		}
		series = append(series, model.PricePoint{Date: d, Close: c})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("krx: no ohlcv rows for %s", code)
	}
	return series, nil
}

// FetchFundamentals returns {eps, per, pbr} for code at date. Absent figures
// come back as the undefined sentinel, not zero.
func (f *KRXFetcher) FetchFundamentals(ctx context.Context, code, date string) (*model.Fundamentals, error) {
	var resp struct {
		EPS string `json:"eps"`
		PER string `json:"per"`
		PBR string `json:"pbr"`
	}
	q := url.Values{"code": {code}, "date": {date}}
	if err := f.get(ctx, "/v1/fundamental", q, &resp); err != nil {
		return nil, fmt.Errorf("krx fundamental %s: %w", code, err)
	}
	return &model.Fundamentals{
		EPS: calculator.ParseFloat(resp.EPS),
		PER: calculator.ParseFloat(resp.PER),
		PBR: calculator.ParseFloat(resp.PBR),
	}, nil
}

type flowResponse struct {
	Foreign       string `json:"foreign"`
	Institutional string `json:"institutional"`
}

func (r flowResponse) toModel() *model.InvestorFlow {
	return &model.InvestorFlow{
		Foreign:       calculator.ParseFloat(r.Foreign),
		Institutional: calculator.ParseFloat(r.Institutional),
	}
}

// FetchMarketFlow returns aggregate net buy value by investor category for a
// whole market (KOSPI/KOSDAQ) at date.
func (f *KRXFetcher) FetchMarketFlow(ctx context.Context, market, date string) (*model.InvestorFlow, error) {
	var resp flowResponse
	q := url.Values{"market": {market}, "date": {date}}
	if err := f.get(ctx, "/v1/flow/market", q, &resp); err != nil {
		return nil, fmt.Errorf("krx market flow %s: %w", market, err)
	}
	return resp.toModel(), nil
}

// FetchTickerFlow returns net buy value by investor category for one ticker.
func (f *KRXFetcher) FetchTickerFlow(ctx context.Context, code, date string) (*model.InvestorFlow, error) {
	var resp flowResponse
	q := url.Values{"code": {code}, "date": {date}}
	if err := f.get(ctx, "/v1/flow/ticker", q, &resp); err != nil {
		return nil, fmt.Errorf("krx ticker flow %s: %w", code, err)
	}
	return resp.toModel(), nil
}

// FetchTopCaps returns the n largest tickers by market capitalization within
// one listing venue, largest first.
func (f *KRXFetcher) FetchTopCaps(ctx context.Context, market, date string, n int) ([]string, error) {
	var resp struct {
		Codes []string `json:"codes"`
	}
	q := url.Values{"market": {market}, "date": {date}, "n": {fmt.Sprint(n)}}
	if err := f.get(ctx, "/v1/marketcap/top", q, &resp); err != nil {
		return nil, fmt.Errorf("krx top caps %s: %w", market, err)
	}
	return resp.Codes, nil
}

// TickerName resolves a display name, falling back to the code itself.
func (f *KRXFetcher) TickerName(ctx context.Context, code string) string {
	var resp struct {
		Name string `json:"name"`
	}
	if err := f.get(ctx, "/v1/name", url.Values{"code": {code}}, &resp); err != nil || resp.Name == "" {
		return code
	}
	return resp.Name
}
