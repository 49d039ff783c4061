package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mica/internal/formatter"
	"github.com/urfave/cli/v3"
)

// CatalogExport renders the catalog in --format, to stdout or to --output.
func (r *Runner) CatalogExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	catalog, err := r.Catalog()
	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteExport(catalog, format, output)
		if err != nil {
			return err
		}
		r.logger.Info("catalog exported", "path", path, "format", format)
		return r.writePlain("✓ Catalog exported to %s (%s)\n", path, formatter.Summary(catalog))
	}

	data, err := formatter.Export(catalog, format)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
