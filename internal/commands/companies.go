package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/companies"
)

func newCompaniesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "List or create companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			st, _, err := openStore(cmd.Context(), cmd, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			list, err := companies.NewService().List(st.Read(cmd.Context()))
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTAX ID")
			for _, c := range list {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.TaxID)
			}
			return tw.Flush()
		},
	}
	cmd.AddCommand(newCompanyCreateCommand())
	return cmd
}

func newCompanyCreateCommand() *cobra.Command {
	var in companies.Input

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			st, _, err := openStore(cmd.Context(), cmd, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			in.Name = args[0]
			svc := companies.NewService()
			return st.Do(cmd.Context(), func(tx *gorm.DB) error {
				c, err := svc.Create(tx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created company %d %s\n", c.ID, c.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.TaxID, "tax-id", "", "tax identification number")
	cmd.Flags().StringVar(&in.Address, "address", "", "postal address")
	return cmd
}
