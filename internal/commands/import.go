package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/cleared-dev/ledgerbook/internal/accounts"
	"github.com/cleared-dev/ledgerbook/internal/activity"
	"github.com/cleared-dev/ledgerbook/internal/bank"
	"github.com/cleared-dev/ledgerbook/internal/companies"
	"github.com/cleared-dev/ledgerbook/internal/config"
	"github.com/cleared-dev/ledgerbook/internal/importer"
	"github.com/cleared-dev/ledgerbook/internal/journal"
	"github.com/cleared-dev/ledgerbook/internal/model"
)

func newImportCommand() *cobra.Command {
	var companyID uint

	cmd := &cobra.Command{
		Use:       "import {accounts|journal|bank} FILE",
		Short:     "Import a CSV or XLSX file into a company",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"accounts", "journal", "bank"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := importer.ParseKind(args[0])
			if err != nil {
				return err
			}
			path := args[1]

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, logger, err := openStore(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			company, err := companies.NewService().Get(st.Read(ctx), companyID)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()

			tbl, err := importer.DefaultRegistry().ReadFile(filepath.Base(path), f)
			if err != nil {
				return err
			}

			svc := importer.NewService(accounts.NewService(), journal.NewService(), bank.NewService())
			action := "import." + string(kind)
			var res importer.Result
			err = st.Do(ctx, func(tx *gorm.DB) error {
				var err error
				res, err = svc.Import(tx, kind, company.ID, tbl)
				return err
			})
			level, message := res.Level(), res.Message()
			if err != nil {
				level, message = model.LevelDanger, err.Error()
			}
			if _, rerr := activity.Record(st.Read(ctx), company.ID, action, level, message); rerr != nil {
				config.LogError(logger, "commands", "import", action, map[string]any{"company_id": company.ID}, rerr)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, message)
			for _, e := range res.Errors {
				fmt.Fprintf(out, "  %s\n", e)
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&companyID, "company", 0, "company id")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}
