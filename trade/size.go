package trade

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// SizeKind tells how a position size was entered.
type SizeKind uint8

const (
	SizeUnset SizeKind = iota
	SizeShares
	SizeNotional
)

// SizeSpec is a position size as the trader entered it: a share count or a
// dollar amount. It becomes a share count only once the entry price is known.
type SizeSpec struct {
	Kind SizeKind
	// Amount is shares for SizeShares and dollars for SizeNotional.
	Amount decimal.Decimal
	// Notional is the display-only dollar figure of "N shares ($M)".
	Notional decimal.NullDecimal
}

func Shares(n decimal.Decimal) SizeSpec {
	return SizeSpec{Kind: SizeShares, Amount: n}
}

func Notional(amount decimal.Decimal) SizeSpec {
	return SizeSpec{Kind: SizeNotional, Amount: amount}
}

var (
	sharesRe   = regexp.MustCompile(`(?i)^([0-9][0-9,]*(?:\.[0-9]+)?)\s*(?:shares?|shs?)?\s*(?:\(\s*\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*\))?$`)
	notionalRe = regexp.MustCompile(`^\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)$`)
)

// ParseSizeSpec reads "100", "100 shares", "10 shares ($1000)" or "$1,000".
// An empty string yields the unset spec.
func ParseSizeSpec(s string) (SizeSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SizeSpec{}, nil
	}
	if m := notionalRe.FindStringSubmatch(s); m != nil {
		amt, err := parseAmount(m[1])
		if err != nil {
			return SizeSpec{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
		}
		return Notional(amt), nil
	}
	m := sharesRe.FindStringSubmatch(s)
	if m == nil {
		return SizeSpec{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	n, err := parseAmount(m[1])
	if err != nil {
		return SizeSpec{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	spec := Shares(n)
	if m[2] != "" {
		amt, err := parseAmount(m[2])
		if err != nil {
			return SizeSpec{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
		}
		spec.Notional = decimal.NewNullDecimal(amt)
	}
	return spec, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

// Resolve converts the spec to a share count. A notional needs a positive
// entry price. Unset, zero or negative sizes are not resolvable.
func (s SizeSpec) Resolve(entry decimal.Decimal) (Size, bool) {
	if !s.Amount.IsPositive() {
		return Size{}, false
	}
	switch s.Kind {
	case SizeShares:
		return Size{Shares: s.Amount, Notional: s.Notional}, true
	case SizeNotional:
		if !entry.IsPositive() {
			return Size{}, false
		}
		return Size{
			Shares:       s.Amount.DivRound(entry, 8),
			Notional:     decimal.NewNullDecimal(s.Amount),
			FromNotional: true,
		}, true
	}
	return Size{}, false
}

// String renders the spec the way ParseSizeSpec reads it back.
func (s SizeSpec) String() string {
	switch s.Kind {
	case SizeShares:
		return Size{Shares: s.Amount, Notional: s.Notional}.String()
	case SizeNotional:
		return "$" + s.Amount.String()
	}
	return ""
}

// Size is the canonical stored position: a share count plus, when the trader
// entered dollars, the originating notional. FromNotional marks a size that
// was entered as dollars and is converted again when the entry price changes.
type Size struct {
	Shares       decimal.Decimal     `json:"shares"`
	Notional     decimal.NullDecimal `json:"notional"`
	FromNotional bool                `json:"fromNotional,omitempty"`
}

func (s Size) IsZero() bool { return s.Shares.IsZero() }

// Spec turns a stored size back into the spec it was entered as.
func (s Size) Spec() SizeSpec {
	if s.IsZero() {
		return SizeSpec{}
	}
	if s.FromNotional && s.Notional.Valid {
		return Notional(s.Notional.Decimal)
	}
	return SizeSpec{Kind: SizeShares, Amount: s.Shares, Notional: s.Notional}
}

// String renders "10" or "10 shares ($1000)"; a zero size renders as "".
func (s Size) String() string {
	if s.IsZero() {
		return ""
	}
	if s.Notional.Valid {
		return fmt.Sprintf("%s shares ($%s)", s.Shares.String(), s.Notional.Decimal.String())
	}
	return s.Shares.String()
}
