package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"salespulse/internal/catalog"
	"salespulse/internal/console"
	"salespulse/internal/dataprocessing"
	apperrors "salespulse/internal/errors"
	"salespulse/internal/validation"
	"salespulse/pkg/contracts/domain"
)

// Reasons a missing product is not added
const (
	reasonNoCompany     = "no company given"
	reasonUnknown       = "no catalog file for company"
	reasonAlreadyListed = "already listed"
)

const companyColumn = "COMPANY"

type missingProduct struct {
	Product string
	Company string
}

type skippedProduct struct {
	missingProduct
	Reason string
}

func (c *command) addMissing(ctx context.Context, args []string) error {
	fs := c.flagSet("add-missing")
	dir := catalogDirFlag(fs)
	in := fs.String("in", "", "CSV or Excel file with ITNAME and Company columns")
	threshold := fs.Float64("threshold", catalog.DefaultSimilarityThreshold, "lowest name similarity accepted when matching companies")
	dryRun := fs.Bool("dry-run", false, "report changes without writing catalog files")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *in == "" {
		return &usageError{msg: "add-missing: -in is required"}
	}
	if *threshold <= 0 || *threshold > 1 {
		return &usageError{msg: fmt.Sprintf("add-missing: -threshold must be in (0,1], got %g", *threshold)}
	}

	if err := validation.NewFileValidator(c.logger).ValidateSalesFile(*in); err != nil {
		return err
	}
	entries, err := readMissingProducts(ctx, *in)
	if err != nil {
		return err
	}

	raw, err := catalog.NewLoader(c.logger).LoadRaw(ctx, *dir)
	if err != nil {
		return err
	}
	byCompany := make(map[string]domain.CompanyProducts, len(raw.Companies))
	names := make([]string, 0, len(raw.Companies))
	for _, cp := range raw.Companies {
		byCompany[cp.Company] = cp
		names = append(names, cp.Company)
	}

	pending := make(map[string][]string)
	var skipped []skippedProduct
	for _, e := range entries {
		if e.Company == "" {
			skipped = append(skipped, skippedProduct{e, reasonNoCompany})
			continue
		}
		company, ok := catalog.MatchName(e.Company, names, *threshold)
		if !ok {
			skipped = append(skipped, skippedProduct{e, reasonUnknown})
			continue
		}
		pending[company] = append(pending[company], e.Product)
	}

	companies := make([]string, 0, len(pending))
	for company := range pending {
		companies = append(companies, company)
	}
	sort.Strings(companies)

	var rows [][]string
	added, duplicates := 0, 0
	for _, company := range companies {
		cp := byCompany[company]

		// cp.Products spans every catalog file of the company, cp.Source
		// is only the first of them.
		result := previewAppend(cp.Products, pending[company])
		if !*dryRun && len(result.Added) > 0 {
			written, err := catalog.AppendProducts(cp.Source, result.Added)
			if err != nil {
				return fmt.Errorf("update %s: %w", company, err)
			}
			result.Added = written.Added
			result.Duplicate = append(result.Duplicate, written.Duplicate...)
		}

		for _, p := range result.Duplicate {
			skipped = append(skipped, skippedProduct{missingProduct{p, company}, reasonAlreadyListed})
		}
		added += len(result.Added)
		duplicates += len(result.Duplicate)
		rows = append(rows, []string{company, strconv.Itoa(len(result.Added)), strconv.Itoa(len(result.Duplicate))})
	}

	if len(rows) > 0 {
		fmt.Fprintln(c.stdout, console.Table([]string{"Company", "Added", "Already listed"}, rows))
	}
	verb := "added"
	if *dryRun {
		verb = "would be added"
	}
	fmt.Fprintln(c.stdout, console.Success(fmt.Sprintf("%d products %s, %d already listed", added, verb, duplicates)))
	c.printSkipped(skipped)
	return nil
}

func (c *command) printSkipped(skipped []skippedProduct) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintln(c.stdout, console.Warning(fmt.Sprintf("%d products not added", len(skipped))))

	byReason := make(map[string][]string)
	var reasons []string
	for _, s := range skipped {
		if _, ok := byReason[s.Reason]; !ok {
			reasons = append(reasons, s.Reason)
		}
		company := s.Company
		if company == "" {
			company = "no company"
		}
		byReason[s.Reason] = append(byReason[s.Reason], fmt.Sprintf("%s (%s)", s.Product, company))
	}
	for _, reason := range reasons {
		fmt.Fprintln(c.stdout, console.List(reason, byReason[reason]))
	}
}

// previewAppend computes what AppendProducts would do to existing
func previewAppend(existing, products []string) catalog.AppendResult {
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[strings.ToLower(p)] = true
	}

	var result catalog.AppendResult
	for _, p := range products {
		key := strings.ToLower(p)
		if known[key] {
			result.Duplicate = append(result.Duplicate, p)
			continue
		}
		known[key] = true
		result.Added = append(result.Added, p)
	}
	return result
}

// readMissingProducts reads the product/company pairs of path. The product
// column accepts the same headers as a sales file.
func readMissingProducts(ctx context.Context, path string) ([]missingProduct, error) {
	rows, err := dataprocessing.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &apperrors.EmptyDatasetError{Source: path}
	}

	productAliases := itemNameAliases()
	productKey, ok := findColumn(rows[0], productAliases)
	if !ok {
		return nil, &apperrors.MissingColumnError{Field: domain.ColumnItemName, Aliases: productAliases, Available: columnNames(rows[0])}
	}
	companyKey, ok := findColumn(rows[0], []string{companyColumn})
	if !ok {
		return nil, &apperrors.MissingColumnError{Field: companyColumn, Aliases: []string{companyColumn}, Available: columnNames(rows[0])}
	}

	var out []missingProduct
	for _, row := range rows {
		product := cell(row, productKey)
		if product == "" {
			continue
		}
		out = append(out, missingProduct{Product: product, Company: cell(row, companyKey)})
	}
	return out, nil
}

func itemNameAliases() []string {
	for _, spec := range dataprocessing.Columns {
		if spec.Field == domain.ColumnItemName {
			return spec.Aliases
		}
	}
	return []string{domain.ColumnItemName}
}

func findColumn(row domain.RawRow, aliases []string) (string, bool) {
	for _, alias := range aliases {
		for key := range row {
			if strings.EqualFold(strings.TrimSpace(key), alias) {
				return key, true
			}
		}
	}
	return "", false
}

func columnNames(row domain.RawRow) []string {
	names := make([]string, 0, len(row))
	for key := range row {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

func cell(row domain.RawRow, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
