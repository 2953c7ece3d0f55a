// Package stats aggregates a collection of trades into performance figures.
package stats

import (
	"sort"
	"time"

	"github.com/rustyeddy/tradebook/trade"
	"github.com/shopspring/decimal"
)

// StrategyStats is the breakdown of one strategy group.
type StrategyStats struct {
	Strategy   trade.Strategy  `json:"strategy"`
	TradeCount int             `json:"tradeCount"`
	WinCount   int             `json:"winCount"`
	WinRate    float64         `json:"winRate"`
	TotalPnL   decimal.Decimal `json:"totalPnl"`
}

// Summary holds the aggregates of the trades that passed a Filter.
// Ratios that would divide by zero are reported as 0.
type Summary struct {
	TotalTrades   int `json:"totalTrades"`
	WinningTrades int `json:"winningTrades"`
	LosingTrades  int `json:"losingTrades"`
	LongTrades    int `json:"longTrades"`
	ShortTrades   int `json:"shortTrades"`

	TotalPnL    decimal.Decimal `json:"totalPnl"`
	GrossProfit decimal.Decimal `json:"grossProfit"`
	GrossLoss   decimal.Decimal `json:"grossLoss"`
	AvgWin      decimal.Decimal `json:"avgWin"`
	AvgLoss     decimal.Decimal `json:"avgLoss"`
	MaxDrawdown decimal.Decimal `json:"maxDrawdown"`

	WinRate         float64 `json:"winRate"`
	ProfitFactor    float64 `json:"profitFactor"`
	RiskRewardRatio float64 `json:"riskRewardRatio"`

	AvgPlannedRatio float64 `json:"avgPlannedRatio"`
	RatedTrades     int     `json:"ratedTrades"`

	ByStrategy         []StrategyStats       `json:"byStrategy"`
	TopStrategy        trade.Strategy        `json:"topStrategy,omitempty"`
	TopMarketCondition trade.MarketCondition `json:"topMarketCondition,omitempty"`
	TagFrequencies     map[trade.Tag]int     `json:"tagFrequencies"`
}

// Summarize computes the Summary of the trades matching f at now. The input
// slice is left untouched.
func Summarize(trades []trade.Trade, f Filter, now time.Time) Summary {
	sel := make([]trade.Trade, 0, len(trades))
	for _, t := range trades {
		if f.Match(t, now) {
			sel = append(sel, t)
		}
	}

	s := Summary{
		TotalTrades:    len(sel),
		TotalPnL:       decimal.Zero,
		GrossProfit:    decimal.Zero,
		GrossLoss:      decimal.Zero,
		AvgWin:         decimal.Zero,
		AvgLoss:        decimal.Zero,
		TagFrequencies: map[trade.Tag]int{},
	}

	var ratioSum float64
	strategies := map[trade.Strategy]int{}
	conditions := map[trade.MarketCondition]int{}
	for _, t := range sel {
		switch t.Side {
		case trade.Long:
			s.LongTrades++
		case trade.Short:
			s.ShortTrades++
		}
		if t.PnL.Valid {
			s.TotalPnL = s.TotalPnL.Add(t.PnL.Decimal)
		}
		switch {
		case t.IsWin():
			s.WinningTrades++
			s.GrossProfit = s.GrossProfit.Add(t.PnL.Decimal)
		case t.IsLoss():
			s.LosingTrades++
			s.GrossLoss = s.GrossLoss.Add(t.PnL.Decimal.Abs())
		}
		if t.Ratio.Valid() {
			s.RatedTrades++
			ratioSum += float64(t.Ratio)
		}
		if t.Strategy != "" {
			strategies[t.Strategy]++
		}
		if t.MarketCondition != "" {
			conditions[t.MarketCondition]++
		}
		for _, tag := range t.Tags {
			s.TagFrequencies[tag]++
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = percent(s.WinningTrades, s.TotalTrades)
	}
	if s.WinningTrades > 0 {
		s.AvgWin = s.GrossProfit.Div(decimal.NewFromInt(int64(s.WinningTrades)))
	}
	if s.LosingTrades > 0 {
		s.AvgLoss = s.GrossLoss.Div(decimal.NewFromInt(int64(s.LosingTrades)))
	}
	if s.GrossLoss.IsPositive() {
		s.ProfitFactor = s.GrossProfit.Div(s.GrossLoss).InexactFloat64()
	}
	if s.AvgLoss.IsPositive() {
		s.RiskRewardRatio = s.AvgWin.Div(s.AvgLoss).InexactFloat64()
	}
	if s.RatedTrades > 0 {
		s.AvgPlannedRatio = ratioSum / float64(s.RatedTrades)
	}

	s.MaxDrawdown = MaxDrawdown(sel)
	s.ByStrategy = byStrategy(sel)
	s.TopStrategy = mode(trade.Strategies, strategies)
	s.TopMarketCondition = mode(trade.MarketConditions, conditions)
	return s
}

// MaxDrawdown is the largest fall of the cumulative P&L below its running
// peak, walking trades in date order. The peak starts at zero, so an opening
// loss counts as drawdown. Trades without a P&L are skipped.
func MaxDrawdown(trades []trade.Trade) decimal.Decimal {
	ordered := make([]trade.Trade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	var running, peak, worst decimal.Decimal
	for _, t := range ordered {
		if !t.PnL.Valid {
			continue
		}
		running = running.Add(t.PnL.Decimal)
		if running.GreaterThan(peak) {
			peak = running
		}
		if dd := peak.Sub(running); dd.GreaterThan(worst) {
			worst = dd
		}
	}
	return worst
}

func byStrategy(trades []trade.Trade) []StrategyStats {
	groups := map[trade.Strategy]*StrategyStats{}
	for _, t := range trades {
		if t.Strategy == "" {
			continue
		}
		g, ok := groups[t.Strategy]
		if !ok {
			g = &StrategyStats{Strategy: t.Strategy, TotalPnL: decimal.Zero}
			groups[t.Strategy] = g
		}
		g.TradeCount++
		if t.IsWin() {
			g.WinCount++
		}
		if t.PnL.Valid {
			g.TotalPnL = g.TotalPnL.Add(t.PnL.Decimal)
		}
	}

	out := make([]StrategyStats, 0, len(groups))
	for _, st := range trade.Strategies {
		if g, ok := groups[st]; ok {
			g.WinRate = percent(g.WinCount, g.TradeCount)
			out = append(out, *g)
		}
	}
	return out
}

// mode returns the most frequent catalog value, ties going to the earlier
// catalog entry. Values outside the catalog are ignored.
func mode[T comparable](catalog []T, counts map[T]int) T {
	var best T
	bestN := 0
	for _, v := range catalog {
		if n := counts[v]; n > bestN {
			best, bestN = v, n
		}
	}
	return best
}

func percent(n, total int) float64 {
	return float64(n) / float64(total) * 100
}
