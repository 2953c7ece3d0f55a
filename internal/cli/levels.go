package cli

import (
	"fmt"

	"github.com/rustyeddy/tradebook/risk"
	"github.com/rustyeddy/tradebook/trade"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newLevelsCmd(rc *RootConfig) *cobra.Command {
	var entry, ratio, side, riskPct, equity string
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Compute stop-loss and target for an entry",
		Long: `Compute the stop-loss and target of a planned trade. The stop is one
risk unit (entry * risk-pct) against the position, the target ratio units in
its favour. With --equity the share count risking risk-pct of the account is
suggested as well.`,
		Example: "  tradebook levels --entry 100 --ratio 1:2 --side long",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := risk.ParseEntry(entry)
			if !ok {
				return fmt.Errorf("entry price must be a positive number: %q", entry)
			}
			r, err := trade.ParseRatio(ratio)
			if err != nil {
				return err
			}
			sd, err := trade.ParseSide(side)
			if err != nil {
				return err
			}
			pct := rc.cfg.Risk.RiskPctDecimal()
			if riskPct != "" {
				if pct, err = decimal.NewFromString(riskPct); err != nil {
					return fmt.Errorf("risk-pct: %w", err)
				}
			}

			levels, ok := risk.DeriveLevelsPrecision(p, r, sd, pct, rc.cfg.Risk.Precision)
			if !ok {
				return fmt.Errorf("levels not computable for entry %s ratio %q side %s", p, ratio, sd)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "stop-loss: %s\n", levels.StopLoss)
			fmt.Fprintf(out, "target:    %s\n", levels.Target)
			fmt.Fprintf(out, "reward:    %s\n", r.Label())
			fmt.Fprintf(out, "r/r:       1:%s\n", risk.RR(p, levels.StopLoss, levels.Target))
			if levels.Invalid() {
				fmt.Fprintln(out, "warning:   a level is at or below zero")
			}

			eq := decimal.NewFromFloat(rc.cfg.Risk.Equity)
			if equity != "" {
				if eq, err = decimal.NewFromString(equity); err != nil {
					return fmt.Errorf("equity: %w", err)
				}
			}
			if shares, ok := risk.SharesForRisk(eq, pct, p, levels.StopLoss); ok {
				atRisk := risk.AmountAtRisk(shares, p, levels.StopLoss)
				fmt.Fprintf(out, "shares:    %s\n", shares)
				fmt.Fprintf(out, "at risk:   %s\n", atRisk.StringFixed(2))
				if share, ok := risk.RiskPct(atRisk, eq); ok {
					fmt.Fprintf(out, "of equity: %s%%\n", share.Shift(2).StringFixed(2))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&entry, "entry", "e", "", "entry price")
	cmd.Flags().StringVarP(&ratio, "ratio", "r", "1:2", "risk/reward ratio")
	cmd.Flags().StringVarP(&side, "side", "s", "long", "long or short")
	cmd.Flags().StringVar(&riskPct, "risk-pct", "", "risk per trade as a fraction of entry (default from config)")
	cmd.Flags().StringVar(&equity, "equity", "", "account equity for share sizing (default from config)")
	cmd.MarkFlagRequired("entry")
	return cmd
}
