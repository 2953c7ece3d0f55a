package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/trade"
	"github.com/spf13/cobra"
)

func newExportCmd(rc *RootConfig) *cobra.Command {
	var output, window, strategy string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades to CSV",
		Long: `Write trades as CSV. The default file name is
trading-journal-YYYY-MM-DD.csv in the current directory; use -o - for stdout.`,
		Args: cobra.NoArgs,
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

			if output == "-" {
				if err := journal.WriteCSV(cmd.OutOrStdout(), rows); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			}
			if output == "" {
				output = journal.ExportFilename(now)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := journal.WriteCSV(f, rows); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			rc.log.Info().Str("file", output).Int("trades", len(rows)).Msg("exported")
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d trades to %s\n", len(rows), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout")
	cmd.Flags().StringVarP(&window, "window", "w", "all", "time window: 7d|30d|90d|1y|all")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "only trades of this strategy")
	return cmd
}

func newImportCmd(rc *RootConfig) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from CSV",
		Long: `Append the trades of a CSV file to the journal. Each row gets a new id.
Rows that cannot be parsed are reported and skipped; use - to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			s, err := rc.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			var imported int
			rowErrs, err := journal.DecodeCSV(r, journal.ImportOptions{Derive: rc.deriveOptions()}, func(t trade.Trade) error {
				s.book.Append(t)
				imported++
				return nil
			})
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			for _, re := range rowErrs {
				rc.log.Warn().Int("line", re.Line).Str("reason", re.Reason).Msg("row skipped")
				fmt.Fprintf(out, "skipped %s\n", re)
			}
			if dryRun {
				fmt.Fprintf(out, "would import %d trades (%d rows skipped)\n", imported, len(rowErrs))
				return nil
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "imported %d trades (%d rows skipped)\n", imported, len(rowErrs))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "parse and report without saving")
	return cmd
}
