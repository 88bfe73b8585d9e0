// Package cli implements the settleup command line: load a ledger file, then
// print or export its settlement, balances or summary.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/ledger"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/logging"
)

type options struct {
	input    string
	output   string
	people   string
	logLevel string
}

// NewRootCommand builds the settleup command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "settleup",
		Short: "Settle shared expenses from a ledger file",
		Long: `settleup reads a shared-expense ledger (.csv, .json or .yaml) and works out
who owes whom. Each row names a payer, an amount and the people sharing it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), logging.ParseLevel(opts.logLevel)))
			if opts.input == "" {
				return fmt.Errorf("--input is required")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.input, "input", "i", "", "ledger file (.csv, .json, .yaml)")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "write a CSV export to this file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newSettleCommand(opts), newBalancesCommand(opts), newSummaryCommand(opts))
	return cmd
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func newSettleCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "settle",
		Short: "Print the payments that settle every balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := LoadLedger(opts.input)
			if err != nil {
				return err
			}

			settlement := calculator.CalculateSettlement(rows)
			for _, issue := range settlement.Skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %v\n", issue)
			}
			slog.Info("Settlement calculated", "rows", len(rows), "status", settlement.Status, "transactions", len(settlement.Transactions))
			fmt.Fprintln(cmd.OutOrStdout(), settlement.Message())

			if opts.output == "" {
				return nil
			}
			return writeFile(opts.output, func(w io.Writer) error {
				return WriteTransactionsCSV(w, settlement.Transactions)
			})
		},
	}
}

func newBalancesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Print each person's net balance (positive means they are owed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := LoadLedger(opts.input)
			if err != nil {
				return err
			}

			balances, issues := calculator.AccumulateBalances(rows)
			for _, issue := range issues {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %v\n", issue)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range balances.Names() {
				fmt.Fprintf(tw, "%s\t%s\n", name, signedCents(balances[name]))
			}
			return tw.Flush()
		},
	}
}

func newSummaryCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print total paid, total owed and difference per person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := LoadLedger(opts.input)
			if err != nil {
				return err
			}

			summary := calculator.GenerateSummary(rows, summaryPeople(opts.people, rows))
			if err := printSummary(cmd.OutOrStdout(), summary); err != nil {
				return err
			}

			if opts.output == "" {
				return nil
			}
			return writeFile(opts.output, func(w io.Writer) error {
				return WriteSummaryCSV(w, summary)
			})
		},
	}
	cmd.Flags().StringVar(&opts.people, "people", "", "comma-separated people to summarize (default: everyone in the ledger)")
	return cmd
}

func summaryPeople(flag string, rows []models.Expense) []string {
	if people := ledger.ParseNames(flag); len(people) > 0 {
		return people
	}
	return ledger.People(rows)
}

func printSummary(w io.Writer, summary calculator.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Person\tTotal Paid\tTotal Owed\tDifference\t")
	for _, p := range summary.People {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", p.Name, cents(p.TotalPaid), cents(p.TotalOwed), signedCents(p.Difference))
	}
	fmt.Fprintf(tw, "Check\t\t\t%s\t\n", signedCents(summary.Check()))
	return tw.Flush()
}

func signedCents(v float64) string {
	s := cents(v)
	if !strings.HasPrefix(s, "-") && s != "0.00" {
		return "+" + s
	}
	return s
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	slog.Info("Wrote export", "path", path)
	return nil
}
