package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerbook/internal/companies"
	"github.com/cleared-dev/ledgerbook/internal/report"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print accounting reports",
	}
	cmd.AddCommand(newTrialBalanceCommand())
	return cmd
}

func newTrialBalanceCommand() *cobra.Command {
	var companyID uint
	var xlsxPath string
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Trial balance for one company",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, _, err := openStore(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			db := st.Read(ctx)
			if _, err := companies.NewService().Get(db, companyID); err != nil {
				return err
			}
			tb, err := report.Compute(db, companyID)
			if err != nil {
				return err
			}

			switch {
			case xlsxPath != "":
				f, err := os.Create(xlsxPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", xlsxPath, err)
				}
				if err := report.WriteXLSX(f, tb); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", xlsxPath)
				return nil
			case asCSV:
				return report.WriteCSV(cmd.OutOrStdout(), tb)
			default:
				return printTrialBalance(cmd.OutOrStdout(), tb)
			}
		},
	}

	cmd.Flags().UintVar(&companyID, "company", 0, "company id")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write an XLSX workbook to this path")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV to stdout")
	cmd.MarkFlagsMutuallyExclusive("xlsx", "csv")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func printTrialBalance(w io.Writer, tb report.TrialBalance) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CODE\tNAME\tTYPE\tDEBIT\tCREDIT\tBALANCE\t")
	for _, r := range tb.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Code, r.Name, r.Type, r.DebitTotal.StringFixed(2), r.CreditTotal.StringFixed(2), r.Balance.StringFixed(2))
	}
	fmt.Fprintf(tw, "\tTotal\t\t%s\t%s\t%s\t\n",
		tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2), tb.TotalBalance.StringFixed(2))
	return tw.Flush()
}
