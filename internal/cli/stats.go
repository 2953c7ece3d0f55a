package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd(rc *RootConfig) *cobra.Command {
	var window, strategy, format string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize trading performance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("window") {
				window = rc.cfg.Stats.DefaultWindow
			}
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
			sum := stats.Summarize(s.book.Trades(), filter, now)
			out := cmd.OutOrStdout()
			switch format {
			case "text":
				return writeSummary(out, sum)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			case "org":
				text, err := journal.FormatSummaryOrg(journal.SummaryReport{
					Summary:    sum,
					Filter:     filter,
					Generated:  now,
					Reflection: s.data.PostTrade,
				})
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
				return nil
			}
			return fmt.Errorf("unknown format %q: want text, json or org", format)
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", "30d", "time window: 7d|30d|90d|1y|all")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "only trades of this strategy")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text|json|org")
	return cmd
}

func writeSummary(w io.Writer, s stats.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Trades\t%d (%d long, %d short)\n", s.TotalTrades, s.LongTrades, s.ShortTrades)
	fmt.Fprintf(tw, "Wins / Losses\t%d / %d\n", s.WinningTrades, s.LosingTrades)
	fmt.Fprintf(tw, "Win rate\t%.2f%%\n", s.WinRate)
	fmt.Fprintf(tw, "Total P&L\t%s\n", s.TotalPnL.StringFixed(2))
	fmt.Fprintf(tw, "Avg win / loss\t%s / %s\n", s.AvgWin.StringFixed(2), s.AvgLoss.StringFixed(2))
	fmt.Fprintf(tw, "Profit factor\t%.2f\n", s.ProfitFactor)
	fmt.Fprintf(tw, "Risk/reward\t%.2f\n", s.RiskRewardRatio)
	fmt.Fprintf(tw, "Max drawdown\t%s\n", s.MaxDrawdown.StringFixed(2))
	if s.RatedTrades > 0 {
		fmt.Fprintf(tw, "Avg planned R:R\t1:%.2f\n", s.AvgPlannedRatio)
	}
	if s.TopStrategy != "" {
		fmt.Fprintf(tw, "Top strategy\t%s\n", s.TopStrategy.Label())
	}
	if s.TopMarketCondition != "" {
		fmt.Fprintf(tw, "Top market\t%s\n", s.TopMarketCondition.Label())
	}
	if len(s.ByStrategy) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "STRATEGY\tTRADES\tWINS\tWIN RATE\tP&L")
		for _, g := range s.ByStrategy {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\t%s\n", g.Strategy.Label(), g.TradeCount, g.WinCount, g.WinRate, g.TotalPnL.StringFixed(2))
		}
	}
	return tw.Flush()
}
