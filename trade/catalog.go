package trade

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Ratio is the reward multiple of the risked distance, e.g. 2 for "1:2".
// The zero value means no ratio was chosen.
type Ratio float64

// Ratios is the catalog of selectable risk/reward ratios.
var Ratios = []Ratio{1, 1.5, 2, 2.5, 3, 4, 5}

var ratioLabels = map[Ratio]string{
	1:   "Equal Risk/Reward",
	1.5: "Conservative",
	2:   "Standard",
	2.5: "Good",
	3:   "Excellent",
	4:   "High Reward",
	5:   "Very High Reward",
}

// Valid reports whether r is in the catalog.
func (r Ratio) Valid() bool {
	_, ok := ratioLabels[r]
	return ok
}

func (r Ratio) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(float64(r))
}

// String renders the ratio as "1:r", or "" when unset.
func (r Ratio) String() string {
	if r == 0 {
		return ""
	}
	return "1:" + strconv.FormatFloat(float64(r), 'f', -1, 64)
}

// Label is the human description shown next to the ratio.
func (r Ratio) Label() string {
	if l, ok := ratioLabels[r]; ok {
		return r.String() + " (" + l + ")"
	}
	return r.String()
}

// ParseRatio accepts "1:2.5", "2.5" or "". Values outside the catalog fail.
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	num := s
	if risk, reward, ok := strings.Cut(s, ":"); ok {
		if strings.TrimSpace(risk) != "1" {
			return 0, fmt.Errorf("%w: %q", ErrUnknownRatio, s)
		}
		num = strings.TrimSpace(reward)
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRatio, s)
	}
	r := Ratio(f)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRatio, s)
	}
	return r, nil
}

// Strategy tags the setup a trade was taken on. Empty means untagged.
type Strategy string

const (
	Breakout          Strategy = "breakout"
	Pullback          Strategy = "pullback"
	Momentum          Strategy = "momentum"
	Reversal          Strategy = "reversal"
	GapFill           Strategy = "gap_fill"
	SupportResistance Strategy = "support_resistance"
	NewsDriven        Strategy = "news_driven"
	Technical         Strategy = "technical"
	Scalping          Strategy = "scalping"
	Swing             Strategy = "swing"
	MeanReversion     Strategy = "mean_reversion"
)

// Strategies lists the catalog in declaration order, which is also the
// tie-break order for "most used" statistics.
var Strategies = []Strategy{
	Breakout, Pullback, Momentum, Reversal, GapFill, SupportResistance,
	NewsDriven, Technical, Scalping, Swing, MeanReversion,
}

var strategyLabels = map[Strategy]string{
	Breakout:          "Breakout",
	Pullback:          "Pullback",
	Momentum:          "Momentum",
	Reversal:          "Reversal",
	GapFill:           "Gap Fill",
	SupportResistance: "Support/Resistance",
	NewsDriven:        "News Driven",
	Technical:         "Technical",
	Scalping:          "Scalping",
	Swing:             "Swing",
	MeanReversion:     "Mean Reversion",
}

func (s Strategy) Label() string { return strategyLabels[s] }

// Rank is the catalog position, or -1.
func (s Strategy) Rank() int { return rank(Strategies, s) }

// ParseStrategy accepts a catalog key or label ("gap_fill", "Gap Fill").
func ParseStrategy(s string) (Strategy, error) {
	k := Strategy(catalogKey(s))
	if k == "" {
		return "", nil
	}
	if k.Rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
	return k, nil
}

// MarketCondition tags the market backdrop of a trade. Empty means untagged.
type MarketCondition string

const (
	Bullish   MarketCondition = "bullish"
	Bearish   MarketCondition = "bearish"
	Sideways  MarketCondition = "sideways"
	Volatile  MarketCondition = "volatile"
	LowVolume MarketCondition = "low_volume"
)

var MarketConditions = []MarketCondition{Bullish, Bearish, Sideways, Volatile, LowVolume}

var conditionLabels = map[MarketCondition]string{
	Bullish:   "Bullish",
	Bearish:   "Bearish",
	Sideways:  "Sideways",
	Volatile:  "Volatile",
	LowVolume: "Low Volume",
}

func (m MarketCondition) Label() string { return conditionLabels[m] }

func (m MarketCondition) Rank() int { return rank(MarketConditions, m) }

func ParseMarketCondition(s string) (MarketCondition, error) {
	k := MarketCondition(catalogKey(s))
	if k == "" {
		return "", nil
	}
	if k.Rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownCondition, s)
	}
	return k, nil
}

// Tag is a post-trade review label.
type Tag string

const (
	PerfectSetup     Tag = "perfect_setup"
	GoodExecution    Tag = "good_execution"
	PoorEntry        Tag = "poor_entry"
	GreatExit        Tag = "great_exit"
	LearnedSomething Tag = "learned_something"
	RepeatedMistake  Tag = "repeated_mistake"
	NewStrategy      Tag = "new_strategy"
	FOMOTrade        Tag = "fomo_trade"
)

var Tags = []Tag{
	PerfectSetup, GoodExecution, PoorEntry, GreatExit,
	LearnedSomething, RepeatedMistake, NewStrategy, FOMOTrade,
}

var tagLabels = map[Tag]string{
	PerfectSetup:     "Perfect Setup",
	GoodExecution:    "Good Execution",
	PoorEntry:        "Poor Entry",
	GreatExit:        "Great Exit",
	LearnedSomething: "Learned Something",
	RepeatedMistake:  "Repeated Mistake",
	NewStrategy:      "New Strategy",
	FOMOTrade:        "FOMO Trade",
}

func (t Tag) Label() string { return tagLabels[t] }

func (t Tag) Rank() int { return rank(Tags, t) }

func ParseTag(s string) (Tag, error) {
	k := Tag(catalogKey(s))
	if k.Rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownTag, s)
	}
	return k, nil
}

// ParseTags splits a "; " or "," separated list. Blank items are skipped.
func ParseTags(s string) ([]Tag, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' })
	var out []Tag
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			continue
		}
		t, err := ParseTag(f)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return NormalizeTags(out), nil
}

// NormalizeTags drops duplicates and unknown tags and orders the rest by catalog.
func NormalizeTags(in []Tag) []Tag {
	if len(in) == 0 {
		return nil
	}
	set := make(map[Tag]bool, len(in))
	for _, t := range in {
		set[t] = true
	}
	var out []Tag
	for _, t := range Tags {
		if set[t] {
			out = append(out, t)
		}
	}
	return out
}

// JoinTags renders tags the way the CSV backup stores them.
func JoinTags(tags []Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, "; ")
}

var keyReplacer = strings.NewReplacer(" ", "_", "/", "_", "-", "_")

func catalogKey(s string) string {
	return keyReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

func rank[T comparable](catalog []T, v T) int {
	for i, c := range catalog {
		if c == v {
			return i
		}
	}
	return -1
}
