// cmd/diet-registry/export.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mcp-diet-registry/internal/catalog"
	"mcp-diet-registry/internal/export"
	"mcp-diet-registry/internal/metrics"
	"mcp-diet-registry/internal/models"
	"mcp-diet-registry/internal/storage"
)

type exportFlags struct {
	dimension string
	format    string
	out       string
	record    bool
}

func newExportCmd(a *app) *cobra.Command {
	var f exportFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Build one export and write it to a file",
		Example: `  diet-registry export --dimension group --out grupos.csv
  diet-registry export --dimension ultraprocessed --format xlsx --out clasificacion.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.export(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.dimension, "dimension", "d", "", "Export dimension (group, subgroup, ultraprocessed, adequacy)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: csv or xlsx (default from config)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output file (default <dimension><ext>)")
	cmd.Flags().BoolVar(&f.record, "record", false, "Record the run in the export history database")
	_ = cmd.MarkFlagRequired("dimension")
	return cmd
}

func (a *app) export(cmd *cobra.Command, f exportFlags) error {
	dim, err := catalog.ParseDimension(f.dimension)
	if err != nil {
		return err
	}
	if f.format == "" {
		f.format = a.cfg.Export.Format
	}
	format, err := export.ParseFormat(f.format)
	if err != nil {
		return err
	}

	cat := catalog.Default()
	if a.cfg.Export.CatalogFile != "" {
		if cat, err = catalog.LoadFile(a.cfg.Export.CatalogFile); err != nil {
			return err
		}
	}

	var store export.RunStore
	if f.record {
		s, err := storage.NewSQLiteStorage(a.cfg.Storage.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer s.Close()
		store = s
	}

	exporter := export.NewExporter(a.client(), cat, export.Options{
		DateLayout: a.cfg.Export.DateLayout,
		Location:   a.cfg.Location(),
	}, a.log)
	svc := export.NewService(exporter, store, metrics.NewMetrics(), a.log)

	run, err := svc.Execute(cmd.Context(), dim, format)
	if run == nil {
		return err
	}
	if run.Status != models.RunSucceeded {
		fmt.Fprintln(cmd.ErrOrStderr(), run.Message)
		return err
	}

	out := f.out
	if out == "" {
		out = string(dim) + format.Extension()
	}
	if err := os.WriteFile(out, run.Artifact, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, %d columns\n", out, run.Rows, run.Columns)
	return nil
}
