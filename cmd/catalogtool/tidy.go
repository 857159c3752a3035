package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"salespulse/internal/catalog"
	"salespulse/internal/console"
	"salespulse/internal/files"
	"salespulse/internal/validation"
)

func (c *command) tidy(ctx context.Context, args []string) error {
	fs := c.flagSet("tidy")
	dir := catalogDirFlag(fs)
	dryRun := fs.Bool("dry-run", false, "report changes without rewriting files")
	if err := parse(fs, args); err != nil {
		return err
	}

	if err := validation.NewFileValidator(c.logger).ValidateDirectory(*dir, "catalog"); err != nil {
		return err
	}
	catalogFiles, err := files.NewDiscovery(*dir).FindCatalogFiles(*dir)
	if err != nil {
		return err
	}

	var rows [][]string
	changed := 0
	for _, f := range catalogFiles {
		if err := ctx.Err(); err != nil {
			return err
		}

		products, err := catalog.ReadProductFile(f.Path)
		if err != nil {
			return err
		}
		result := catalog.Tidy(products)

		status := "unchanged"
		if !slices.Equal(products, result.Products) {
			changed++
			status = "would rewrite"
			if !*dryRun {
				if err := catalog.WriteProductFile(f.Path, result.Products); err != nil {
					return fmt.Errorf("rewrite %s: %w", f.Name, err)
				}
				status = "rewritten"
			}
		}
		rows = append(rows, []string{f.Name, strconv.Itoa(len(result.Products)), strconv.Itoa(result.Families), status})
	}

	fmt.Fprintln(c.stdout, console.Table([]string{"File", "Products", "Families", "Status"}, rows))
	if *dryRun {
		fmt.Fprintln(c.stdout, console.Warning(fmt.Sprintf("dry run: %d of %d files would change", changed, len(catalogFiles))))
		return nil
	}
	fmt.Fprintln(c.stdout, console.Success(fmt.Sprintf("%d of %d files rewritten", changed, len(catalogFiles))))
	return nil
}
