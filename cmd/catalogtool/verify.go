package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"salespulse/internal/catalog"
	"salespulse/internal/console"
)

func (c *command) verify(ctx context.Context, args []string) error {
	fs := c.flagSet("verify")
	dir := catalogDirFlag(fs)
	strict := fs.Bool("strict", false, "exit 1 when a product is listed by several companies")
	if err := parse(fs, args); err != nil {
		return err
	}

	raw, err := catalog.NewLoader(c.logger).LoadRaw(ctx, *dir)
	if err != nil {
		return err
	}
	cat := catalog.New(raw)

	rows := make([][]string, 0, len(raw.Companies))
	for _, cp := range raw.Companies {
		rows = append(rows, []string{cp.Company, filepath.Base(cp.Source), strconv.Itoa(len(cp.Products))})
	}
	fmt.Fprintln(c.stdout, console.Table([]string{"Company", "File", "Products"}, rows))
	fmt.Fprintf(c.stdout, "%d companies, %d products\n", len(raw.Companies), raw.ProductCount())

	conflicts := cat.Conflicts()
	if len(conflicts) == 0 {
		fmt.Fprintln(c.stdout, console.Success("no product is listed by more than one company"))
		return nil
	}

	items := make([]string, 0, len(conflicts))
	for _, cf := range conflicts {
		items = append(items, fmt.Sprintf("%s: %s", cf.Product, strings.Join(cf.Companies, ", ")))
	}
	fmt.Fprintln(c.stdout, console.List("Listed by several companies (the first one wins)", items))

	if *strict {
		return errFindings
	}
	return nil
}
