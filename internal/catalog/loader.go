package catalog

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	apperrors "salespulse/internal/errors"
	"salespulse/internal/files"
	"salespulse/pkg/contracts/domain"
)

// HeaderProductName is the optional header of a catalog file
const HeaderProductName = "Product Name"

const utf8BOM = "\ufeff"

// Loader reads a catalog directory
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "catalog"))}
}

// Load reads every catalog CSV in dir. An empty dir yields an empty catalog;
// a dir that does not exist is a FileNotFoundError.
func (l *Loader) Load(ctx context.Context, dir string) (*Catalog, error) {
	raw, err := l.LoadRaw(ctx, dir)
	if err != nil {
		return nil, err
	}
	cat := New(raw)
	l.logger.InfoContext(ctx, "Catalog loaded",
		slog.String("dir", dir),
		slog.Int("companies", len(raw.Companies)),
		slog.Int("products", cat.ProductCount()))
	return cat, nil
}

// LoadRaw reads dir without compiling it
func (l *Loader) LoadRaw(ctx context.Context, dir string) (domain.CompanyCatalog, error) {
	var out domain.CompanyCatalog
	if dir == "" {
		l.logger.WarnContext(ctx, "No catalog directory configured, every product will be classified as Other")
		return out, nil
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return out, &apperrors.FileNotFoundError{Path: dir, Kind: "catalog"}
	}

	catalogFiles, err := files.NewDiscovery(dir).FindCatalogFiles(dir)
	if err != nil {
		return out, apperrors.NewStorageError("read catalog directory", err)
	}
	if len(catalogFiles) == 0 {
		l.logger.WarnContext(ctx, "Catalog directory has no CSV files", slog.String("dir", dir))
	}

	// A company may have both a _Products.csv and a _Product_Names.csv.
	index := make(map[string]int)
	for _, f := range catalogFiles {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		products, err := ReadProductFile(f.Path)
		if err != nil {
			return out, apperrors.NewParsingError(fmt.Sprintf("read catalog file %s", f.Name), err)
		}
		l.logger.DebugContext(ctx, "Catalog file read",
			slog.String("file", f.Name),
			slog.String("company", f.Label),
			slog.Int("products", len(products)))
		if i, ok := index[f.Label]; ok {
			out.Companies[i].Products = mergeProducts(out.Companies[i].Products, products)
			continue
		}
		index[f.Label] = len(out.Companies)
		out.Companies = append(out.Companies, domain.CompanyProducts{
			Company:  f.Label,
			Source:   f.Path,
			Products: products,
		})
	}

	return out, nil
}

// mergeProducts appends the names of extra not already in products
func mergeProducts(products, extra []string) []string {
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		seen[p] = true
	}
	for _, p := range extra {
		if !seen[p] {
			seen[p] = true
			products = append(products, p)
		}
	}
	return products
}

// ReadProductFile returns the product names in one catalog file in file
// order. The first column is used, blanks are skipped and repeats dropped.
func ReadProductFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &apperrors.FileNotFoundError{Path: path, Kind: "catalog"}
		}
		return nil, err
	}
	defer f.Close()

	return ReadProducts(f)
}

// ReadProducts parses catalog CSV content
func ReadProducts(r io.Reader) ([]string, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var products []string
	seen := make(map[string]bool)
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if first {
			first = false
			name = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
			if strings.EqualFold(name, HeaderProductName) {
				continue
			}
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		products = append(products, name)
	}
	return products, nil
}
