package journal

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/rustyeddy/tradebook/stats"
	"github.com/rustyeddy/tradebook/trade"
	"github.com/shopspring/decimal"
)

// NA is how a value that cannot be computed is displayed.
const NA = "N/A"

// FormatTradeOrg renders a trade as an Org-mode entry. Structured facts go in
// the PROPERTIES drawer; the notes and review headings are for free text.
func FormatTradeOrg(t trade.Trade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s %s (%s)\n", trade.FormatDate(t.Date), strings.ToUpper(string(t.Side)), t.Ticker, shortID(t.ID))
	b.WriteString(":PROPERTIES:\n")
	prop := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, ":%s: %s\n", k, v)
		}
	}
	prop("ID", t.ID)
	prop("TICKER", t.Ticker)
	prop("SIDE", string(t.Side))
	prop("DATE", trade.FormatDate(t.Date))
	prop("ENTRY_PRICE", t.EntryPrice.String())
	prop("SIZE", t.Size.String())
	prop("RISK_REWARD", t.Ratio.String())
	prop("STOP_LOSS", orNA(t.ExpectedStopLoss))
	prop("TARGET", orNA(t.ExpectedTarget))
	prop("EXIT_STOP", nullString(t.ActualStopLoss))
	prop("EXIT_TARGET", nullString(t.ActualTarget))
	prop("PNL", money(t.PnL))
	prop("PCT_CHANGE", pct(t.PercentChange))
	prop("STRATEGY", t.Strategy.Label())
	prop("MARKET", t.MarketCondition.Label())
	prop("EXPECTED_HOLD", t.ExpectedHoldTime)
	prop("HOLD_TIME", t.HoldTime)
	prop("TAGS", trade.JoinTags(t.Tags))
	if !t.CreatedAt.IsZero() {
		prop("CREATED", "["+t.CreatedAt.UTC().Format("2006-01-02 Mon 15:04")+"]")
	}
	b.WriteString(":END:\n\n")
	b.WriteString("*** Notes\n")
	if t.Notes != "" {
		b.WriteString(t.Notes)
		b.WriteString("\n")
	} else {
		b.WriteString("- \n")
	}
	b.WriteString("\n*** Review\n- \n")
	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []trade.Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}

func orNA(d decimal.NullDecimal) string {
	if !d.Valid {
		return NA
	}
	return d.Decimal.String()
}

func money(d decimal.NullDecimal) string {
	if !d.Valid {
		return NA
	}
	return d.Decimal.StringFixed(2)
}

func pct(d decimal.NullDecimal) string {
	if !d.Valid {
		return NA
	}
	return d.Decimal.StringFixed(2) + "%"
}

// SummaryReport is the data behind FormatSummaryOrg.
type SummaryReport struct {
	Summary    stats.Summary
	Filter     stats.Filter
	Generated  time.Time
	Reflection Reflection
}

var summaryOrgFuncs = template.FuncMap{
	"fixed": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"label": func(s trade.Strategy) string { return s.Label() },
	"condition": func(m trade.MarketCondition) string {
		if m == "" {
			return "-"
		}
		return m.Label()
	},
	"strategyOr": func(s trade.Strategy) string {
		if s == "" {
			return "all"
		}
		return s.Label()
	},
	"windowOr": func(w stats.Window) string {
		if w == "" {
			return string(stats.All)
		}
		return string(w)
	},
	"tags": func(freq map[trade.Tag]int) []tagCount {
		var out []tagCount
		for _, t := range trade.Tags {
			if n := freq[t]; n > 0 {
				out = append(out, tagCount{Label: t.Label(), Count: n})
			}
		}
		return out
	},
}

type tagCount struct {
	Label string
	Count int
}

var summaryOrg = template.Must(template.New("summary").Funcs(summaryOrgFuncs).Parse(SummaryOrgTemplate))

// FormatSummaryOrg renders a statistics summary as an Org-mode section.
func FormatSummaryOrg(r SummaryReport) (string, error) {
	if r.Generated.IsZero() {
		r.Generated = time.Now()
	}
	var buf bytes.Buffer
	if err := summaryOrg.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return buf.String(), nil
}

const SummaryOrgTemplate = `* TRADING SUMMARY {{.Generated.Format "2006-01-02"}}
:PROPERTIES:
:WINDOW:      {{windowOr .Filter.Window}}
:STRATEGY:    {{strategyOr .Filter.Strategy}}
:TRADES:      {{.Summary.TotalTrades}}
:WINS:        {{.Summary.WinningTrades}}
:LOSSES:      {{.Summary.LosingTrades}}
:NET_PL:      {{fixed .Summary.TotalPnL}}
:WIN_RATE:    {{printf "%.2f" .Summary.WinRate}}
:PROFIT_FAC:  {{printf "%.2f" .Summary.ProfitFactor}}
:MAX_DD:      {{fixed .Summary.MaxDrawdown}}
:CREATED:     [{{.Generated.Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{fixed .Summary.TotalPnL}}*
- Win Rate:         *{{printf "%.2f" .Summary.WinRate}}%*
- Profit Factor:    *{{printf "%.2f" .Summary.ProfitFactor}}*
- Avg Win / Loss:   *{{fixed .Summary.AvgWin}} / {{fixed .Summary.AvgLoss}}*
- Risk/Reward:      *{{printf "%.2f" .Summary.RiskRewardRatio}}*
- Max Drawdown:     *{{fixed .Summary.MaxDrawdown}}*
- Long / Short:     *{{.Summary.LongTrades}} / {{.Summary.ShortTrades}}*
{{- if .Summary.RatedTrades }}
- Avg Planned R:R:  *1:{{printf "%.2f" .Summary.AvgPlannedRatio}}*
{{- end }}
{{- if .Summary.TopStrategy }}
- Top Strategy:     *{{label .Summary.TopStrategy}}*
{{- end }}
{{- if .Summary.TopMarketCondition }}
- Top Market:       *{{condition .Summary.TopMarketCondition}}*
{{- end }}

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Summary.WinningTrades}} |
| Losses  | {{.Summary.LosingTrades}} |
| Total   | {{.Summary.TotalTrades}} |
{{- if .Summary.ByStrategy }}

** By Strategy
| Strategy | Trades | Wins | Win Rate | P/L |
|----------+--------+------+----------+-----|
{{- range .Summary.ByStrategy }}
| {{label .Strategy}} | {{.TradeCount}} | {{.WinCount}} | {{printf "%.1f" .WinRate}}% | {{fixed .TotalPnL}} |
{{- end }}
{{- end }}
{{- with tags .Summary.TagFrequencies }}

** Tags
{{- range . }}
- {{.Label}}: {{.Count}}
{{- end }}
{{- end }}
{{- with .Reflection }}
{{- if not .IsZero }}

** Reflection
{{- if .FollowedPlan }}
- Followed plan: {{.FollowedPlan}}
{{- end }}
{{- if .Emotion }}
- Emotion: {{.Emotion}}
{{- end }}
{{- if .DidWell }}
- Did well: {{.DidWell}}
{{- end }}
{{- if .Mistakes }}
- Mistakes: {{.Mistakes}}
{{- end }}
{{- if .TomorrowPlan }}
- [ ] {{.TomorrowPlan}}
{{- end }}
{{- end }}
{{- end }}
`
