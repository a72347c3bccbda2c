package collector

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

func seriesOf(closes ...float64) model.PriceSeries {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.PriceSeries, len(closes))
	for i, c := range closes {
		s[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	return s
}

// stubDomestic is a controllable DomesticFetcher for collector tests.
type stubDomestic struct {
	series  map[string]model.PriceSeries
	flow    *model.InvestorFlow
	flowErr error
	caps    map[string][]string
	names   map[string]string
}

func (s *stubDomestic) Name() string { return "stub" }

func (s *stubDomestic) NearestBusinessDay(context.Context) (string, error) {
	return "20250829", nil
}

func (s *stubDomestic) FetchDailySeries(_ context.Context, code string, _ int) (model.PriceSeries, error) {
	if ser, ok := s.series[code]; ok {
		return ser, nil
	}
	return nil, errors.New("no data")
}

func (s *stubDomestic) FetchFundamentals(_ context.Context, code, _ string) (*model.Fundamentals, error) {
	return &model.Fundamentals{EPS: 1000, PER: 12, PBR: 1.5}, nil
}

func (s *stubDomestic) FetchMarketFlow(context.Context, string, string) (*model.InvestorFlow, error) {
	if s.flowErr != nil {
		return nil, s.flowErr
	}
	return s.flow, nil
}

func (s *stubDomestic) FetchTickerFlow(context.Context, string, string) (*model.InvestorFlow, error) {
	return &model.InvestorFlow{Foreign: 1e9, Institutional: -2e8}, nil
}

func (s *stubDomestic) FetchTopCaps(_ context.Context, market, _ string, n int) ([]string, error) {
	codes := s.caps[market]
	if len(codes) > n {
		codes = codes[:n]
	}
	return codes, nil
}

func (s *stubDomestic) TickerName(_ context.Context, code string) string {
	if n, ok := s.names[code]; ok {
		return n
	}
	return code
}

func TestCollectPulse(t *testing.T) {
	global := &MockFetcher{Series: map[string]model.PriceSeries{
		SymbolNasdaq: seriesOf(100, 102), // +2%
		SymbolKOSPI:  seriesOf(100, 98),  // -2%
		SymbolVIX:    seriesOf(20, 22),   // +10%
	}, Price: 100}
	domestic := &stubDomestic{flow: &model.InvestorFlow{Foreign: -1e9, Institutional: -5e8}}

	pulse := NewCollector(global, domestic).CollectPulse(context.Background(), "20250829")
	if math.Abs(pulse.Nasdaq-2) > 1e-9 {
		t.Errorf("nasdaq: expected +2%%, got %v", pulse.Nasdaq)
	}
	if math.Abs(pulse.Domestic+2) > 1e-9 {
		t.Errorf("kospi: expected -2%%, got %v", pulse.Domestic)
	}
	if math.Abs(pulse.Volatility-10) > 1e-9 {
		t.Errorf("vix: expected +10%%, got %v", pulse.Volatility)
	}
	if pulse.Flow == nil || pulse.Flow.Foreign != -1e9 {
		t.Errorf("flow: expected -1e9 foreign, got %+v", pulse.Flow)
	}
}

func TestCollectPulse_FlowFailureDegrades(t *testing.T) {
	global := &MockFetcher{Price: 100}
	domestic := &stubDomestic{flowErr: errors.New("gateway down")}

	pulse := NewCollector(global, domestic).CollectPulse(context.Background(), "20250829")
	if pulse.Flow != nil {
		t.Errorf("expected nil flow on fetch failure, got %+v", pulse.Flow)
	}
	if !calculator.Defined(pulse.Nasdaq) {
		t.Error("index returns should still resolve")
	}
}

func TestCollectUSDKRW_Fallback(t *testing.T) {
	good := &MockFetcher{Series: map[string]model.PriceSeries{
		SymbolUSDKRW: seriesOf(1390, 1402),
	}, Price: 100}
	if got := NewCollector(good, &stubDomestic{}).CollectUSDKRW(context.Background()); got != 1402 {
		t.Errorf("expected 1402, got %v", got)
	}

	bad := &MockFetcher{Series: map[string]model.PriceSeries{SymbolUSDKRW: nil}}
	if got := NewCollector(bad, &stubDomestic{}).CollectUSDKRW(context.Background()); got != DefaultUSDKRW {
		t.Errorf("expected default rate %v, got %v", DefaultUSDKRW, got)
	}
}

func TestCollectCoreQuote(t *testing.T) {
	domestic := &stubDomestic{series: map[string]model.PriceSeries{
		"005930": seriesOf(70000, 70500, 71000, 72000, 71500, 73000),
	}}
	c := NewCollector(&MockFetcher{Price: 100}, domestic)

	q := c.CollectCoreQuote(context.Background(), "005930", "Samsung Electronics", "20250829")
	if q == nil {
		t.Fatal("expected quote")
	}
	if q.Close != 73000 {
		t.Errorf("close: expected 73000, got %v", q.Close)
	}
	if q.Fundamentals == nil || q.Fundamentals.PER != 12 {
		t.Errorf("expected fundamentals attached, got %+v", q.Fundamentals)
	}

	if q := c.CollectCoreQuote(context.Background(), "999999", "Ghost", "20250829"); q != nil {
		t.Errorf("expected nil for unknown code, got %+v", q)
	}
}

func TestCollectUniverse_SkipsBrokenCandidates(t *testing.T) {
	domestic := &stubDomestic{
		series: map[string]model.PriceSeries{
			"005930": GenerateMockSeries(70000, 25),
			"000660": GenerateMockSeries(250000, 25),
			// 035420 intentionally absent: its fetch fails.
		},
		caps: map[string][]string{
			"KOSPI":  {"005930", "000660", "035420"},
			"KOSDAQ": nil,
		},
	}
	c := NewCollector(&MockFetcher{Price: 100}, domestic)

	universe := c.CollectUniverse(context.Background(), "20250829", 10)
	if len(universe) != 2 {
		t.Fatalf("expected 2 resolved candidates, got %d", len(universe))
	}
	for _, in := range universe {
		if in.ID == "035420" {
			t.Error("unresolvable candidate leaked into the universe")
		}
		if in.Fundamentals == nil || in.Flow == nil {
			t.Errorf("%s: expected fundamentals and flow attached", in.ID)
		}
	}
}
