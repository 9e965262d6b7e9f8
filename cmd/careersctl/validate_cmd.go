package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Jainshashank7125/whitecarrort-ats-branded/internal/core"
)

type importFlags struct {
	mode     string
	template string
	maxSize  int64
	preview  int
}

func (f *importFlags) register(cmd *cobra.Command) {
	def := core.DefaultImportOptions()
	cmd.Flags().StringVar(&f.mode, "mode", string(def.Mode), "Validation mode: all or first_row")
	cmd.Flags().StringVar(&f.template, "template", string(def.Template), "Description template: short or long")
	cmd.Flags().Int64Var(&f.maxSize, "max-size", def.MaxFileSize, "Largest accepted file in bytes")
	cmd.Flags().IntVar(&f.preview, "preview", core.PreviewRows, "Mapped jobs to print")
}

func (f *importFlags) options() (core.ImportOptions, error) {
	mode := core.ValidationMode(f.mode)
	if mode != core.ValidateAllRows && mode != core.ValidateFirstRow {
		return core.ImportOptions{}, fmt.Errorf("invalid --mode %q", f.mode)
	}
	tmpl := core.DescriptionTemplate(f.template)
	if tmpl != core.DescriptionShort && tmpl != core.DescriptionLong {
		return core.ImportOptions{}, fmt.Errorf("invalid --template %q", f.template)
	}
	return core.ImportOptions{MaxFileSize: f.maxSize, Mode: mode, Template: tmpl}, nil
}

// runImport pushes path through a fresh importer for companyID. The
// importer is returned in whatever state the file left it.
func runImport(ctx context.Context, path, companyID string, opts core.ImportOptions) (*core.Importer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	im := core.NewImporter(companyID, opts, nil)
	_ = im.Select(ctx, core.FileInput{
		Name: filepath.Base(path),
		Size: info.Size(),
		Body: file,
	})
	return im, nil
}

func newValidateCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Parse and validate a job CSV without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			im, err := runImport(cmd.Context(), args[0], "", opts)
			if err != nil {
				return err
			}

			snap := im.Snapshot(flags.preview)
			if err := writeJSON(cmd.OutOrStdout(), snap); err != nil {
				return err
			}
			return im.Err()
		},
	}

	flags.register(cmd)
	return cmd
}
