package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradebook/trade"
)

var ErrUnknownWindow = errors.New("unknown time window")

// Window is a trailing period of days ending now.
type Window string

const (
	Week    Window = "7d"
	Month   Window = "30d"
	Quarter Window = "90d"
	Year    Window = "1y"
	All     Window = "all"
)

var Windows = []Window{Week, Month, Quarter, Year, All}

var windowDays = map[Window]int{
	Week:    7,
	Month:   30,
	Quarter: 90,
	Year:    365,
}

// Days returns the window length; ok is false for All.
func (w Window) Days() (int, bool) {
	n, ok := windowDays[w]
	return n, ok
}

// ParseWindow accepts the window keys; an empty string means All.
func ParseWindow(s string) (Window, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return All, nil
	}
	for _, w := range Windows {
		if string(w) == s {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWindow, s)
}

// Filter selects the trades a Summary is computed over.
type Filter struct {
	Window   Window
	Strategy trade.Strategy // empty matches every strategy
}

// Match reports whether t passes the filter at now. A trade without a date
// only passes the All window.
func (f Filter) Match(t trade.Trade, now time.Time) bool {
	if f.Strategy != "" && t.Strategy != f.Strategy {
		return false
	}
	days, bounded := f.Window.Days()
	if !bounded {
		return true
	}
	if t.Date.IsZero() {
		return false
	}
	return daysBetween(t.Date, now) <= days
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(trade.DateOf(b).Sub(trade.DateOf(a)).Hours() / 24)
}
