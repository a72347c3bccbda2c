package collector

import (
	"context"
	"time"

	"DailyBriefing/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Series map[string]model.PriceSeries // per-symbol override
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailySeries(_ context.Context, symbol string, days int) (model.PriceSeries, error) {
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return GenerateMockSeries(m.Price, days), nil
}

// GenerateMockSeries produces a mildly drifting daily series ending near
// basePrice, dated backwards from today.
func GenerateMockSeries(basePrice float64, count int) model.PriceSeries {
	series := make(model.PriceSeries, count)
	now := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < count; i++ {
		series[i] = model.PricePoint{
			Date:  now.AddDate(0, 0, -(count - i)),
			Close: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return series
}
