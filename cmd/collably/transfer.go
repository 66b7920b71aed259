package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/collably/pkg/apierrors"
	"github.com/Ramsey-B/collably/pkg/spreadsheet"
	"github.com/Ramsey-B/collably/pkg/transfer"
)

const (
	resourceBrands   = "brands"
	resourceProducts = "products"
)

// fileFormat prefers an explicit --format and falls back to the file extension
func fileFormat(explicit, path string) (spreadsheet.Format, error) {
	if explicit != "" {
		return spreadsheet.ParseFormat(explicit)
	}
	return spreadsheet.FormatFromName(path)
}

func writeTable(path string, format spreadsheet.Format, t spreadsheet.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := spreadsheet.Write(file, format, t); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func readTable(path string, format spreadsheet.Format) (spreadsheet.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return spreadsheet.Table{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	return spreadsheet.Read(file, format)
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:       "export brands|products",
		Short:     "Export brands or products to a spreadsheet",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{resourceBrands, resourceProducts},
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			resource := args[0]
			if out == "" {
				out = resource + ".xlsx"
			}
			f, err := fileFormat(format, out)
			if err != nil {
				return err
			}

			t, count, err := exportTable(cmd.Context(), a, resource)
			if err != nil {
				return err
			}
			if err := writeTable(out, f, t); err != nil {
				return err
			}

			a.Logger.WithFields(map[string]interface{}{
				"resource": resource,
				"rows":     count,
				"file":     out,
			}).Info("Export written")
			return newPrinter(cmd, opts).message(fmt.Sprintf("Exported %d %s to %s", count, resource, out))
		}),
	}

	cmd.Flags().StringVar(&format, "format", "", "xlsx or csv (defaults to the --out extension)")
	cmd.Flags().StringVar(&out, "out", "", "output file (defaults to <resource>.xlsx)")
	return cmd
}

func exportTable(ctx context.Context, a *app, resource string) (spreadsheet.Table, int, error) {
	brands, err := a.Dashboard.FetchAllBrands(ctx)
	if err != nil {
		return spreadsheet.Table{}, 0, err
	}
	if resource == resourceBrands {
		return transfer.ExportBrands(brands), len(brands), nil
	}

	products, err := a.Dashboard.FetchAllProducts(ctx)
	if err != nil {
		return spreadsheet.Table{}, 0, err
	}
	return transfer.ExportProducts(products, brands), len(products), nil
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	var format, brandID string

	cmd := &cobra.Command{
		Use:   "import brands|products FILE",
		Short: "Create brands or products from a spreadsheet, one row at a time",
		Args:  cobra.ExactArgs(2),
		RunE: action(opts, func(cmd *cobra.Command, args []string, a *app) error {
			resource, path := args[0], args[1]
			f, err := fileFormat(format, path)
			if err != nil {
				return err
			}
			t, err := readTable(path, f)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var report transfer.Report
			switch resource {
			case resourceBrands:
				report = a.Importer.ImportBrands(ctx, a.Dashboard, t, a.Config.ImportDefaultBrandPassword)
			case resourceProducts:
				brands, err := a.Dashboard.FetchAllBrands(ctx)
				if err != nil {
					return err
				}
				if brandID == "" {
					if brandID, err = a.Dashboard.Session().BrandID(ctx); err != nil {
						return err
					}
				}
				report = a.Importer.ImportProducts(ctx, a.Dashboard, t, brands, brandID)
			default:
				return apierrors.Newf(apierrors.KindValidation, "cannot import %q (want brands or products)", resource)
			}

			return printReport(newPrinter(cmd, opts), report)
		}),
	}

	cmd.Flags().StringVar(&format, "format", "", "xlsx or csv (defaults to the file extension)")
	cmd.Flags().StringVar(&brandID, "brand-id", "", "brand for product rows without a brand name (defaults to the logged-in brand)")
	return cmd
}

func printReport(p printer, report transfer.Report) error {
	if p.format != outputTable {
		return p.print(report, nil)
	}
	if _, err := fmt.Fprintln(p.w, report.Summary()); err != nil {
		return err
	}
	if len(report.Errors) == 0 {
		return nil
	}
	fmt.Fprintln(p.w)
	t := table{headers: []string{"ROW", "OUTCOME", "MESSAGE"}}
	for _, e := range report.Errors {
		t.rows = append(t.rows, []string{strconv.Itoa(e.Row), e.Outcome, e.Message})
	}
	return p.table(t)
}

func newTemplateCommand(opts *rootOptions) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:       "template products",
		Short:     "Write the product import template",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{resourceProducts},
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := fileFormat(format, out)
			if err != nil {
				return err
			}
			if err := writeTable(out, f, transfer.ProductTemplate()); err != nil {
				return err
			}
			return newPrinter(cmd, opts).message(fmt.Sprintf("Template written to %s (columns: %d)", out, len(transfer.ProductColumns)))
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "xlsx or csv (defaults to the --out extension)")
	cmd.Flags().StringVar(&out, "out", "product_import_template.xlsx", "output file")
	return cmd
}
