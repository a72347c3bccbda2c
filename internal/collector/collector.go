package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

// Index and FX symbols on the global data source.
const (
	SymbolNasdaq = "^IXIC"
	SymbolSP500  = "^GSPC"
	SymbolKOSPI  = "^KS11"
	SymbolKOSDAQ = "^KQ11"
	SymbolVIX    = "^VIX"
	SymbolUSDKRW = "KRW=X"
)

// DefaultUSDKRW is the fallback rate when the FX fetch fails.
const DefaultUSDKRW = 1350.0

const (
	indexLookbackDays      = 10
	instrumentLookbackDays = 90 // ~3 months for the snapshot builder
	candidateSessions      = 25
	coreQuoteSessions      = 6
)

// Collector assembles engine inputs from the global and domestic fetchers.
// Fetch failures degrade to undefined values or skipped entries; the
// briefing still goes out with whatever arrived.
type Collector struct {
	Global   Fetcher
	Domestic DomesticFetcher
	logger   zerolog.Logger
}

// NewCollector creates a Collector over the two data sources.
func NewCollector(global Fetcher, domestic DomesticFetcher) *Collector {
	return &Collector{
		Global:   global,
		Domestic: domestic,
		logger:   log.With().Str("component", "collector").Logger(),
	}
}

// indexReturn computes the 1-day return of an index symbol, undefined on any
// fetch problem or short history.
func (c *Collector) indexReturn(ctx context.Context, symbol string) float64 {
	series, err := c.Global.FetchDailySeries(ctx, symbol, indexLookbackDays)
	if err != nil {
		c.logger.Warn().Err(err).Str("symbol", symbol).Msg("index fetch failed")
		return calculator.Undefined()
	}
	if len(series) < 2 {
		return calculator.Undefined()
	}
	closes := series.Closes()
	return calculator.ChangePercent(closes[len(closes)-1], closes[len(closes)-2])
}

// CollectPulse gathers the index returns and aggregate KOSPI flow feeding the
// risk classifier. Never fails: missing pieces come back undefined/nil.
func (c *Collector) CollectPulse(ctx context.Context, date string) model.MarketPulse {
	pulse := model.MarketPulse{
		Nasdaq:     c.indexReturn(ctx, SymbolNasdaq),
		SP500:      c.indexReturn(ctx, SymbolSP500),
		Domestic:   c.indexReturn(ctx, SymbolKOSPI),
		Growth:     c.indexReturn(ctx, SymbolKOSDAQ),
		Volatility: c.indexReturn(ctx, SymbolVIX),
	}

	flow, err := c.Domestic.FetchMarketFlow(ctx, "KOSPI", date)
	if err != nil {
		c.logger.Warn().Err(err).Msg("market flow unavailable")
	} else {
		pulse.Flow = flow
	}
	return pulse
}

// CollectUSDKRW returns the latest USD/KRW close, or the default on failure.
func (c *Collector) CollectUSDKRW(ctx context.Context) float64 {
	series, err := c.Global.FetchDailySeries(ctx, SymbolUSDKRW, indexLookbackDays)
	if err != nil || len(series) == 0 {
		c.logger.Warn().Err(err).Msg("usdkrw fetch failed, using default")
		return DefaultUSDKRW
	}
	return series[len(series)-1].Close
}

// CollectInstrument fetches ~3 months of daily closes for one tracked symbol.
func (c *Collector) CollectInstrument(ctx context.Context, symbol string) (model.PriceSeries, error) {
	series, err := c.Global.FetchDailySeries(ctx, symbol, instrumentLookbackDays)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", symbol, err)
	}
	return series, nil
}

// CollectCoreQuote builds the light domestic-holding view: close, 1-day
// change, valuation. Nil when the price could not be fetched at all.
func (c *Collector) CollectCoreQuote(ctx context.Context, code, name, date string) *model.CoreQuote {
	series, err := c.Domestic.FetchDailySeries(ctx, code, coreQuoteSessions)
	if err != nil || len(series) == 0 {
		c.logger.Warn().Err(err).Str("code", code).Msg("core quote fetch failed")
		return nil
	}

	closes := series.Closes()
	q := &model.CoreQuote{
		Code:  code,
		Name:  name,
		Close: closes[len(closes)-1],
		Chg1D: calculator.Undefined(),
	}
	if len(closes) >= 2 {
		q.Chg1D = calculator.ChangePercent(closes[len(closes)-1], closes[len(closes)-2])
	}

	if f, err := c.Domestic.FetchFundamentals(ctx, code, date); err != nil {
		c.logger.Warn().Err(err).Str("code", code).Msg("fundamentals unavailable")
	} else {
		q.Fundamentals = f
	}
	return q
}

// CollectUniverse resolves the scoring universe: the top nEach tickers by
// market cap in each venue, each with its short window, fundamentals and
// flow. A ticker whose data cannot be resolved is skipped, never fatal.
func (c *Collector) CollectUniverse(ctx context.Context, date string, nEach int) []model.CandidateInput {
	var universe []model.CandidateInput
	start := time.Now()

	for _, market := range []string{"KOSPI", "KOSDAQ"} {
		codes, err := c.Domestic.FetchTopCaps(ctx, market, date, nEach)
		if err != nil {
			c.logger.Warn().Err(err).Str("market", market).Msg("top caps unavailable")
			continue
		}
		for _, code := range codes {
			in, err := c.resolveCandidate(ctx, code, date)
			if err != nil {
				c.logger.Debug().Err(err).Str("code", code).Msg("candidate skipped")
				continue
			}
			universe = append(universe, in)
		}
	}

	c.logger.Info().
		Int("candidates", len(universe)).
		Dur("elapsed", time.Since(start)).
		Msg("universe collected")
	return universe
}

func (c *Collector) resolveCandidate(ctx context.Context, code, date string) (model.CandidateInput, error) {
	series, err := c.Domestic.FetchDailySeries(ctx, code, candidateSessions)
	if err != nil {
		return model.CandidateInput{}, err
	}

	in := model.CandidateInput{ID: code, Series: series}
	if f, err := c.Domestic.FetchFundamentals(ctx, code, date); err == nil {
		in.Fundamentals = f
	}
	if flow, err := c.Domestic.FetchTickerFlow(ctx, code, date); err == nil {
		in.Flow = flow
	}
	return in, nil
}
