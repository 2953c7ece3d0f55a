package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/stats"
	"github.com/rustyeddy/tradebook/trade"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// entryFlags binds one flag per journal.Entry field.
type entryFlags struct {
	e journal.Entry
}

func (f *entryFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.e.Date, "date", "", "trade date YYYY-MM-DD (default today)")
	fs.StringVar(&f.e.Ticker, "ticker", "", "ticker symbol")
	fs.StringVar(&f.e.Side, "side", "", "long or short")
	fs.StringVar(&f.e.EntryPrice, "entry", "", "entry price")
	fs.StringVar(&f.e.Size, "size", "", `position size: "100", "100 shares" or "$5000"`)
	fs.StringVar(&f.e.Ratio, "ratio", "", "risk/reward ratio, e.g. 1:2")
	fs.StringVar(&f.e.ActualStopLoss, "exit-stop", "", "price the stop-loss was hit at")
	fs.StringVar(&f.e.ActualTarget, "exit-target", "", "price the target was hit at")
	fs.StringVar(&f.e.PnL, "pnl", "", "recorded P&L when no exit price is known")
	fs.StringVar(&f.e.Strategy, "strategy", "", "strategy, e.g. breakout")
	fs.StringVar(&f.e.MarketCondition, "market", "", "market condition, e.g. bullish")
	fs.StringVar(&f.e.Tags, "tags", "", `tags separated by ";" or ","`)
	fs.StringVar(&f.e.ExpectedHoldTime, "expected-hold", "", "expected hold time")
	fs.StringVar(&f.e.HoldTime, "hold", "", "actual hold time")
	fs.StringVar(&f.e.Notes, "notes", "", "free-form notes")
}

// overlay copies the flags that were set on the command line onto base.
func (f *entryFlags) overlay(fs *pflag.FlagSet, base journal.Entry) journal.Entry {
	set := map[string]*string{
		"date":          &base.Date,
		"ticker":        &base.Ticker,
		"side":          &base.Side,
		"entry":         &base.EntryPrice,
		"size":          &base.Size,
		"ratio":         &base.Ratio,
		"exit-stop":     &base.ActualStopLoss,
		"exit-target":   &base.ActualTarget,
		"pnl":           &base.PnL,
		"strategy":      &base.Strategy,
		"market":        &base.MarketCondition,
		"tags":          &base.Tags,
		"expected-hold": &base.ExpectedHoldTime,
		"hold":          &base.HoldTime,
		"notes":         &base.Notes,
	}
	fs.Visit(func(fl *pflag.Flag) {
		if p, ok := set[fl.Name]; ok {
			*p = fl.Value.String()
		}
	})
	return base
}

func newAddCmd(rc *RootConfig) *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new trade",
		Example: `  tradebook add --ticker AAPL --side long --entry 150.25 --size "10 shares" --ratio 1:2
  tradebook add --ticker TSLA --side short --entry 240 --size '$5000' --exit-stop 242.4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := f.e
			if e.Date == "" {
				e.Date = trade.FormatDate(rc.Now())
			}
			s, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.book.Add(e)
			if err != nil {
				return err
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			rc.log.Info().Str("id", t.ID).Str("ticker", t.Ticker).Msg("trade added")
			printTradeLine(cmd.OutOrStdout(), "added", t)
			return nil
		},
	}
	f.bind(cmd.Flags())
	cmd.MarkFlagRequired("ticker")
	cmd.MarkFlagRequired("side")
	cmd.MarkFlagRequired("entry")
	return cmd
}

func newEditCmd(rc *RootConfig) *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a logged trade",
		Long: `Change the given fields of a trade. Levels and P&L are derived again
from the updated inputs. Pass an empty value (e.g. --exit-stop "") to clear
a field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			cur, err := s.resolveID(args[0])
			if err != nil {
				return err
			}
			e := f.overlay(cmd.Flags(), journal.EntryOf(cur))
			t, err := s.book.Update(cur.ID, e)
			if err != nil {
				return err
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			rc.log.Info().Str("id", t.ID).Msg("trade updated")
			printTradeLine(cmd.OutOrStdout(), "updated", t)
			return nil
		},
	}
	f.bind(cmd.Flags())
	return cmd
}

func newRmCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a trade",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.resolveID(args[0])
			if err != nil {
				return err
			}
			if err := s.book.Delete(t.ID); err != nil {
				return err
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			rc.log.Info().Str("id", t.ID).Msg("trade deleted")
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", t.ID, t.Ticker)
			return nil
		},
	}
}

func newListCmd(rc *RootConfig) *cobra.Command {
	var window, strategy string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List logged trades",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(window, strategy)
			if err != nil {
				return err
			}
			s, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			now := rc.Now()
			var rows []trade.Trade
			for _, t := range s.book.Trades() {
				if filter.Match(t, now) {
					rows = append(rows, t)
				}
			}
			return writeTradeTable(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", "all", "time window: 7d|30d|90d|1y|all")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "only trades of this strategy")
	return cmd
}

func newShowCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a trade as an Org-mode entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.resolveID(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
			return nil
		},
	}
}

func parseFilter(window, strategy string) (stats.Filter, error) {
	w, err := stats.ParseWindow(window)
	if err != nil {
		return stats.Filter{}, err
	}
	st, err := trade.ParseStrategy(strategy)
	if err != nil {
		return stats.Filter{}, err
	}
	return stats.Filter{Window: w, Strategy: st}, nil
}

func printTradeLine(w io.Writer, verb string, t trade.Trade) {
	fmt.Fprintf(w, "%s %s %s %s @ %s stop %s target %s pnl %s\n",
		verb, t.ID, t.Ticker, t.Side, t.EntryPrice,
		na(t.ExpectedStopLoss), na(t.ExpectedTarget), naFixed(t.PnL))
}

func writeTradeTable(w io.Writer, trades []trade.Trade) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTICKER\tSIDE\tENTRY\tSIZE\tR:R\tSTOP\tTARGET\tP&L\t%\tSTRATEGY")
	for _, t := range trades {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, trade.FormatDate(t.Date), t.Ticker, t.Side, t.EntryPrice,
			t.Size, t.Ratio, na(t.ExpectedStopLoss), na(t.ExpectedTarget),
			naFixed(t.PnL), naFixed(t.PercentChange), t.Strategy.Label())
	}
	return tw.Flush()
}

func na(d decimal.NullDecimal) string {
	if !d.Valid {
		return journal.NA
	}
	return d.Decimal.String()
}

func naFixed(d decimal.NullDecimal) string {
	if !d.Valid {
		return journal.NA
	}
	return d.Decimal.StringFixed(2)
}
