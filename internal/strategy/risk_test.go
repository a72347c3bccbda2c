package strategy

import (
	"testing"

	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

func TestAssessRisk_AllCalm(t *testing.T) {
	a := AssessRisk(model.MarketPulse{
		Domestic: 0.3, Growth: 0.5, Volatility: -2.0,
		Flow: &model.InvestorFlow{Foreign: 1e9, Institutional: -2e9},
	})
	if a.Level != model.RiskGood || a.Hits != 0 {
		t.Errorf("expected good/0, got %s/%d", a.Level, a.Hits)
	}
}

func TestAssessRisk_SingleHit(t *testing.T) {
	a := AssessRisk(model.MarketPulse{Domestic: -1.5, Growth: 0, Volatility: 0})
	if a.Level != model.RiskMeh || a.Hits != 1 || !a.DomesticDown {
		t.Errorf("expected meh/1 domestic hit, got %+v", a)
	}
}

func TestAssessRisk_TwoHits(t *testing.T) {
	// Scenario: domestic drop + both flows negative, volatility calm.
	a := AssessRisk(model.MarketPulse{
		Domestic: -2.0, Growth: -1.0, Volatility: 2.0,
		Flow: &model.InvestorFlow{Foreign: -5e9, Institutional: -1e9},
	})
	if a.Level != model.RiskBad {
		t.Errorf("expected bad, got %s", a.Level)
	}
	if a.Hits != 2 || !a.DomesticDown || !a.FlowBothSelling {
		t.Errorf("unexpected hit set: %+v", a)
	}
}

func TestAssessRisk_HitCountMonotone(t *testing.T) {
	tests := []struct {
		name  string
		pulse model.MarketPulse
		hits  int
		level model.RiskLevel
	}{
		{"none", model.MarketPulse{Domestic: 0, Growth: 0, Volatility: 0}, 0, model.RiskGood},
		{"growth only", model.MarketPulse{Domestic: 0, Growth: -1.8, Volatility: 0}, 1, model.RiskMeh},
		{"volatility only", model.MarketPulse{Domestic: 0, Growth: 0, Volatility: 6.0}, 1, model.RiskMeh},
		{"indices both", model.MarketPulse{Domestic: -1.5, Growth: -1.8, Volatility: 0}, 2, model.RiskBad},
		{"all four", model.MarketPulse{
			Domestic: -3, Growth: -3, Volatility: 10,
			Flow: &model.InvestorFlow{Foreign: -1, Institutional: -1},
		}, 4, model.RiskBad},
	}
	for _, tt := range tests {
		a := AssessRisk(tt.pulse)
		if a.Hits != tt.hits || a.Level != tt.level {
			t.Errorf("%s: expected %d/%s, got %d/%s", tt.name, tt.hits, tt.level, a.Hits, a.Level)
		}
	}
}

func TestAssessRisk_UndefinedNeverTriggers(t *testing.T) {
	nan := calculator.Undefined()
	a := AssessRisk(model.MarketPulse{Domestic: nan, Growth: nan, Volatility: nan})
	if a.Level != model.RiskGood || a.Hits != 0 {
		t.Errorf("expected good/0 for all-undefined inputs, got %s/%d", a.Level, a.Hits)
	}

	// Flow with one undefined side does not count as both-negative.
	a = AssessRisk(model.MarketPulse{
		Domestic: 0, Growth: 0, Volatility: 0,
		Flow: &model.InvestorFlow{Foreign: nan, Institutional: -1e9},
	})
	if a.FlowBothSelling || a.Hits != 0 {
		t.Errorf("expected flow hit suppressed, got %+v", a)
	}
}

func TestAssessRisk_NoFlowData(t *testing.T) {
	// Flow condition only evaluated when flow data exists.
	a := AssessRisk(model.MarketPulse{Domestic: -1.6, Growth: 0.2, Volatility: 1.0, Flow: nil})
	if a.Hits != 1 || a.FlowBothSelling {
		t.Errorf("expected one hit without flow, got %+v", a)
	}
}
