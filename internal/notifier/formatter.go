package notifier

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"DailyBriefing/internal/calculator"
	"DailyBriefing/internal/model"
)

// FormatPct renders a percentage with sign, or N/A when undefined.
// Undefined must read as absent, never as 0.00%.
func FormatPct(v float64) string {
	if !calculator.Defined(v) {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", v)
}

// FormatInt renders a rounded value with thousands separators, or N/A.
func FormatInt(v float64) string {
	if !calculator.Defined(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	n := int64(math.Round(v))
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatBillionsKRW renders a KRW amount in signed billions, or N/A.
func FormatBillionsKRW(v float64) string {
	if !calculator.Defined(v) {
		return "N/A"
	}
	return fmt.Sprintf("%+.1fbn KRW", v/1e9)
}

// FormatHeader renders the briefing header with the evaluation time (KST).
func FormatHeader(now time.Time, usdkrw float64) string {
	return fmt.Sprintf("📌 Daily briefing (KST %s)\n\n💱 USD/KRW: %s",
		now.Format("2006-01-02 15:04"), FormatInt(usdkrw))
}

func riskComment(level model.RiskLevel) string {
	switch level {
	case model.RiskBad:
		return "The market looks defensive today. Skip new domestic picks; cash is the comfortable position."
	case model.RiskMeh:
		return "The mood may be jumpy. Keep new entries few (or wait) and scale in gradually."
	default:
		return "The overall tone is fine. Names that meet the conditions can be approached selectively."
	}
}

// FormatMarketBrief renders the market summary block with the risk comment.
func FormatMarketBrief(pulse model.MarketPulse, assessment model.RiskAssessment, flowDate string) string {
	var b strings.Builder
	b.WriteString("📈 Market summary\n")
	b.WriteString(fmt.Sprintf("- Nasdaq: %s | S&P500: %s\n", FormatPct(pulse.Nasdaq), FormatPct(pulse.SP500)))
	b.WriteString(fmt.Sprintf("- KOSPI: %s | KOSDAQ: %s\n", FormatPct(pulse.Domestic), FormatPct(pulse.Growth)))
	b.WriteString(fmt.Sprintf("- VIX: %s\n", FormatPct(pulse.Volatility)))
	if f := pulse.Flow; f != nil {
		b.WriteString(fmt.Sprintf("- KOSPI flow (prev session, %s): foreign %s / institutional %s\n",
			flowDate, FormatBillionsKRW(f.Foreign), FormatBillionsKRW(f.Institutional)))
	}
	b.WriteString("🧭 Comment: " + riskComment(assessment.Level))
	return b.String()
}

// FormatRiskDetail renders the hit breakdown behind the classification.
func FormatRiskDetail(a model.RiskAssessment) string {
	mark := func(hit bool) string {
		if hit {
			return "⚠️"
		}
		return "—"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🧭 Market risk: %s (%d hits)\n", a.Level, a.Hits))
	b.WriteString(fmt.Sprintf("- KOSPI drop: %s\n", mark(a.DomesticDown)))
	b.WriteString(fmt.Sprintf("- KOSDAQ drop: %s\n", mark(a.GrowthDown)))
	b.WriteString(fmt.Sprintf("- VIX spike: %s\n", mark(a.VolatilityUp)))
	b.WriteString(fmt.Sprintf("- Foreign+institutional selling: %s", mark(a.FlowBothSelling)))
	return b.String()
}

func formatFlags(flags model.ExitFlagSet) string {
	active := flags.Active()
	if len(active) == 0 {
		return "none"
	}
	parts := make([]string, len(active))
	for i, f := range active {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}

func formatEntryAdvice(a model.EntryAdvice, priceFmt func(float64) string) string {
	band := func() string {
		return fmt.Sprintf("%s~%s", priceFmt(a.Low), priceFmt(a.High))
	}
	switch a.Verdict {
	case model.EntryDeferRisk:
		return "New entries: market risk is bad → sitting out has the better odds today."
	case model.EntryDeferData:
		return "New entries: not enough data, don't force it today, just watch the tape."
	case model.EntryAboveBand:
		return fmt.Sprintf("New entries: stretched above the 20-day line → rather than chasing, wait near %s.", band())
	case model.EntryBelowBand:
		return fmt.Sprintf("New entries: below the 20-day line → if entering, scale in slowly within %s.", band())
	default:
		return fmt.Sprintf("New entries: near the 20-day line (%s) → staged entry candidate.", band())
	}
}

func formatUSD(v float64) string {
	if !calculator.Defined(v) {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", v)
}

func formatKRW(v float64) string {
	if !calculator.Defined(v) {
		return "N/A"
	}
	return "₩" + FormatInt(v)
}

// FormatUSInstrument renders one tracked US name: technicals, exit signals,
// today's action and the entry plan. A nil snapshot means the data feed
// failed for this name.
func FormatUSInstrument(name string, usdkrw float64, snap *model.TechnicalSnapshot, sig model.ExitSignal, advice model.EntryAdvice) string {
	var b strings.Builder
	b.WriteString("\n• " + name + "\n")
	if snap == nil {
		b.WriteString("  - The data feed was unstable, couldn't load a price today.")
		return b.String()
	}

	rsiText := "N/A"
	if calculator.Defined(snap.RSI14) {
		rsiText = fmt.Sprintf("%.0f", snap.RSI14)
	}

	b.WriteString(fmt.Sprintf("  - Close: %s (%s)\n", formatUSD(snap.Close), formatKRW(snap.Close*usdkrw)))
	b.WriteString(fmt.Sprintf("  - 1D: %s | 5D: %s\n", FormatPct(snap.Chg1D), FormatPct(snap.Chg5D)))
	b.WriteString(fmt.Sprintf("  - vs MA20: %s | RSI: %s\n", FormatPct(snap.Dist20), rsiText))
	b.WriteString(fmt.Sprintf("  - Exit signals: %s\n", formatFlags(sig.Flags)))
	b.WriteString(fmt.Sprintf("  - Today's action: %s\n", sig.Stage.Action()))
	b.WriteString("  - " + formatEntryAdvice(advice, formatUSD))
	return b.String()
}

// FormatCoreQuote renders one tracked domestic holding.
func FormatCoreQuote(q *model.CoreQuote, label string) string {
	var b strings.Builder
	b.WriteString("\n• " + label + "\n")
	if q == nil {
		b.WriteString("  - The data feed was unstable, couldn't load a price today.")
		return b.String()
	}
	per, eps := calculator.Undefined(), calculator.Undefined()
	if q.Fundamentals != nil {
		per, eps = q.Fundamentals.PER, q.Fundamentals.EPS
	}
	perText := "N/A"
	if calculator.Defined(per) {
		perText = fmt.Sprintf("%.1f", per)
	}
	b.WriteString(fmt.Sprintf("  - Close: %s | 1D: %s\n", formatKRW(q.Close), FormatPct(q.Chg1D)))
	b.WriteString(fmt.Sprintf("  - PER: %s | EPS: %s", perText, FormatInt(eps)))
	return b.String()
}

// FormatPicks renders the ranked recommendation block for the current risk
// level, including the no-pick states.
func FormatPicks(picks []model.ScoredCandidate, level model.RiskLevel) string {
	if level == model.RiskBad {
		return "❌ No domestic picks today\n" +
			"- Index, volatility and flow risk signals overlapped.\n" +
			"- On days like this even good names get shaken out, so new entries have poor odds.\n" +
			"🧭 Playbook: wait on new entries; trim overheated holdings and stay comfortable."
	}
	if len(picks) == 0 {
		return "📌 Domestic picks: nothing qualified today, so we sit out.\n" +
			"(Not enough names passed profit + no-overheat + trend + flow at the same time.)"
	}

	var b strings.Builder
	b.WriteString("🔥 Today's domestic picks (only when conditions are met)")
	for i, p := range picks {
		label := p.Name
		if label == "" {
			label = p.ID
		}
		b.WriteString(fmt.Sprintf("\n\n%d. %s (%s)\n", i+1, label, p.ID))
		b.WriteString(fmt.Sprintf("  - Close: %s | 5D: %s | vs MA20: %s\n",
			formatKRW(p.Close), FormatPct(p.Momentum5), FormatPct(p.Dist20)))

		perText := "N/A"
		if calculator.Defined(p.PER) {
			perText = fmt.Sprintf("%.1f", p.PER)
		}
		b.WriteString(fmt.Sprintf("  - PER: %s | EPS: %s", perText, FormatInt(p.EPS)))
		if f := p.Flow; f != nil {
			b.WriteString(fmt.Sprintf(" | Flow (prev): foreign %s, institutional %s",
				FormatBillionsKRW(f.Foreign), FormatBillionsKRW(f.Institutional)))
		}
		if g := p.Guide; g != nil {
			b.WriteString(fmt.Sprintf("\n  - Entry (guide): %s~%s staged | Risk: defensive below %s | Targets (guide): 1st %s, 2nd %s",
				formatKRW(g.EntryLow), formatKRW(g.EntryHigh), formatKRW(g.Stop),
				formatKRW(g.Target1), formatKRW(g.Target2)))
		}
	}
	return b.String()
}

// FormatHeadlines renders headline links under an instrument block.
func FormatHeadlines(headlines []string) string {
	if len(headlines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("  - News links:\n")
	for _, h := range headlines {
		b.WriteString("    • " + h + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// BriefingFooter is the fixed exit-strategy and timing reminder appended to
// every briefing.
func BriefingFooter() string {
	return "🧭 Exit playbook (fixed: 30/30/20/keep 20)\n" +
		"- 2+ signals: first take-profit (30%) candidate\n" +
		"- 3+ signals: second (additional 30%, 60% total) candidate\n" +
		"- 3 signals + strong overheat: third (additional 20%, 80% total) candidate\n" +
		"- Ride the rest with the trend, no forced chasing\n\n" +
		"📚 Timing principles for today\n" +
		"- When the market is bad, sitting out new entries has the better odds.\n" +
		"- Entries are most comfortable near the 20-day line (±2%), scaled in.\n" +
		"- Judge exits by overheat signals, not by your profit percentage."
}
