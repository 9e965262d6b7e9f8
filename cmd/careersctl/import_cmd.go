package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/config"
	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/store"
)

type importOutput struct {
	Command    string              `json:"command"`
	DurationMS int64               `json:"duration_ms"`
	Applied    bool                `json:"applied"`
	Imported   int                 `json:"imported"`
	Result     core.ImportSnapshot `json:"result"`
}

func newImportCmd() *cobra.Command {
	var (
		companyID string
		apply     bool
		flags     importFlags
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a job CSV into a company's job list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			dbCfg, err := config.LoadPart[config.DatabaseConfig]()
			if err != nil {
				return err
			}
			if dbCfg.URL == "" {
				return errors.New("DATABASE_URL is required")
			}

			ctx := cmd.Context()
			st, closeStore, err := store.Open(ctx, dbCfg)
			if err != nil {
				return err
			}
			defer closeStore()

			if _, err := st.CompanyByID(ctx, companyID); err != nil {
				return fmt.Errorf("company %s: %w", companyID, err)
			}

			start := time.Now()
			im, err := runImport(ctx, args[0], companyID, opts)
			if err != nil {
				return err
			}
			if err := im.Err(); err != nil {
				_ = writeJSON(cmd.OutOrStdout(), importOutput{Command: "import", Result: im.Snapshot(flags.preview)})
				return err
			}

			out := importOutput{Command: "import", Applied: apply, Result: im.Snapshot(flags.preview)}
			if apply {
				n, err := im.Confirm(ctx, st)
				if err != nil {
					return err
				}
				out.Imported = n
				slog.InfoContext(ctx, "jobs imported", "company_id", companyID, "count", n)
			}
			out.DurationMS = time.Since(start).Milliseconds()
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "Company ID (required)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Insert the jobs (default dry-run)")
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("company")
	return cmd
}
