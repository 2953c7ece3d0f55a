package journal

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rustyeddy/tradebook/pkg/id"
	"github.com/rustyeddy/tradebook/trade"
)

// Header is the column layout of an exported journal.
var Header = []string{
	"Date",
	"Ticker",
	"Position",
	"Entry Price",
	"Position Size",
	"Risk/Reward",
	"Stop Loss",
	"Target",
	"P&L",
	"Strategy",
	"Market Condition",
	"Hold Time",
	"Trade Tags",
	"Notes",
}

type column int

const (
	colUnknown column = iota
	colDerived
	colDate
	colTicker
	colSide
	colEntryPrice
	colSize
	colRatio
	colPnL
	colStrategy
	colCondition
	colHoldTime
	colTags
	colNotes
	colActualStopLoss
	colActualTarget
	colExpectedHoldTime
)

// headerColumns maps normalized header names to fields. Stop Loss and Target
// are exported for reading but recomputed on import.
var headerColumns = map[string]column{
	"date":             colDate,
	"ticker":           colTicker,
	"symbol":           colTicker,
	"position":         colSide,
	"side":             colSide,
	"entryprice":       colEntryPrice,
	"entry":            colEntryPrice,
	"positionsize":     colSize,
	"size":             colSize,
	"risk/reward":      colRatio,
	"riskreward":       colRatio,
	"stoploss":         colDerived,
	"target":           colDerived,
	"p&l":              colPnL,
	"pnl":              colPnL,
	"strategy":         colStrategy,
	"marketcondition":  colCondition,
	"holdtime":         colHoldTime,
	"tradetags":        colTags,
	"tags":             colTags,
	"notes":            colNotes,
	"actualstoploss":   colActualStopLoss,
	"actualtarget":     colActualTarget,
	"expectedholdtime": colExpectedHoldTime,
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(h), ""))
}

// ExportFilename is the conventional name of a journal exported on now.
func ExportFilename(now time.Time) string {
	return "trading-journal-" + now.Format(trade.DateLayout) + ".csv"
}

// ToCSV renders trades as CSV text.
func ToCSV(trades []trade.Trade) string {
	var b strings.Builder
	_ = WriteCSV(&b, trades)
	return b.String()
}

// WriteCSV writes the header and one row per trade. Every cell is quoted and
// rows are separated by a single newline.
func WriteCSV(w io.Writer, trades []trade.Trade) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, Header)
	for _, t := range trades {
		bw.WriteByte('\n')
		writeRow(bw, []string{
			trade.FormatDate(t.Date),
			t.Ticker,
			string(t.Side),
			t.EntryPrice.String(),
			t.Size.String(),
			t.Ratio.String(),
			nullString(t.ExpectedStopLoss),
			nullString(t.ExpectedTarget),
			nullString(t.PnL),
			string(t.Strategy),
			string(t.MarketCondition),
			t.HoldTime,
			trade.JoinTags(t.Tags),
			t.Notes,
		})
	}
	return bw.Flush()
}

// writeRow quotes unconditionally, which csv.Writer cannot be told to do.
func writeRow(w *bufio.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(c, `"`, `""`))
		w.WriteByte('"')
	}
}

// RowError describes a row that was skipped on import.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

type ImportOptions struct {
	Derive DeriveOptions
	// IDs mints ids for imported rows; nil uses the package generator.
	IDs *id.Generator
}

// Import is the outcome of reading a CSV journal.
type Import struct {
	Trades    []trade.Trade
	RowErrors []RowError
}

// FromCSV reads a whole CSV journal. Bad rows are reported, never fatal.
func FromCSV(text string, opts ImportOptions) Import {
	var imp Import
	rowErrs, err := DecodeCSV(strings.NewReader(text), opts, func(t trade.Trade) error {
		imp.Trades = append(imp.Trades, t)
		return nil
	})
	imp.RowErrors = rowErrs
	if err != nil {
		imp.RowErrors = append(imp.RowErrors, RowError{Line: 1, Reason: err.Error()})
	}
	return imp
}

// DecodeCSV reads CSV rows from r and hands each successfully parsed trade,
// with a fresh id and fully derived, to fn as soon as it is read. Rows that
// fail are returned as RowErrors. The error is non-nil only when the header
// cannot be read, r fails or fn returns an error.
func DecodeCSV(r io.Reader, opts ImportOptions, fn func(trade.Trade) error) ([]RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]column, len(header))
	for i, h := range header {
		cols[i] = headerColumns[normalizeHeader(h)]
	}

	mint := id.Mint
	if opts.IDs != nil {
		mint = opts.IDs.Mint
	}

	var rowErrs []RowError
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			rowErrs = append(rowErrs, RowError{Line: perr.StartLine, Reason: perr.Err.Error()})
			continue
		}
		if err != nil {
			return rowErrs, err
		}

		line, _ := cr.FieldPos(0)
		if blankRecord(rec) {
			continue
		}
		if len(rec) != len(cols) {
			rowErrs = append(rowErrs, RowError{
				Line:   line,
				Reason: fmt.Sprintf("expected %d columns, got %d", len(cols), len(rec)),
			})
			continue
		}

		t, err := rowEntry(cols, rec).Parse()
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: err.Error()})
			continue
		}
		t.ID, t.CreatedAt = mint()
		if err := fn(Derive(t, opts.Derive)); err != nil {
			return rowErrs, err
		}
	}
	return rowErrs, nil
}

func rowEntry(cols []column, rec []string) Entry {
	var e Entry
	for i, c := range cols {
		v := rec[i]
		switch c {
		case colDate:
			e.Date = v
		case colTicker:
			e.Ticker = v
		case colSide:
			e.Side = v
		case colEntryPrice:
			e.EntryPrice = v
		case colSize:
			e.Size = v
		case colRatio:
			e.Ratio = v
		case colPnL:
			e.PnL = v
		case colStrategy:
			e.Strategy = v
		case colCondition:
			e.MarketCondition = v
		case colHoldTime:
			e.HoldTime = v
		case colTags:
			e.Tags = v
		case colNotes:
			e.Notes = v
		case colActualStopLoss:
			e.ActualStopLoss = v
		case colActualTarget:
			e.ActualTarget = v
		case colExpectedHoldTime:
			e.ExpectedHoldTime = v
		}
	}
	return e
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
