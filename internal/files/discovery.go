package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Default batch inputs exported by the billing system
const (
	PesticidesFile  = "SALANAL_PS.XLS"
	FertilizersFile = "SALANAL_FS.XLS"
)

// BatchInput is a default input together with the label its report is filed under
type BatchInput struct {
	Name  string
	Label string
}

// DefaultBatchInputs lists the files a run with no explicit input looks for
var DefaultBatchInputs = []BatchInput{
	{Name: PesticidesFile, Label: "Pesticides"},
	{Name: FertilizersFile, Label: "Fertilizers"},
}

// Catalog file suffixes. The company name is whatever precedes them.
var CatalogSuffixes = []string{"_Product_Names.csv", "_Products.csv"}

var salesExtensions = map[string]bool{
	".xls":  true,
	".xlsx": true,
	".csv":  true,
}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Label   string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}

// IsSalesFile reports whether name has an extension a sales reader handles
func IsSalesFile(name string) bool {
	return salesExtensions[strings.ToLower(filepath.Ext(name))]
}

// FindSalesFiles finds all .xls, .xlsx and .csv files in dir, sorted by name.
// Lock files left behind by spreadsheet editors are skipped.
func (d *Discovery) FindSalesFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~$") || !IsSalesFile(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Label:   strings.TrimSuffix(name, filepath.Ext(name)),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// FindBatchInputs returns the default batch inputs present in dir, in
// DefaultBatchInputs order. File names match case-insensitively.
func (d *Discovery) FindBatchInputs(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	byName := make(map[string]os.DirEntry, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			byName[strings.ToUpper(entry.Name())] = entry
		}
	}

	var files []FileInfo
	for _, input := range DefaultBatchInputs {
		entry, ok := byName[strings.ToUpper(input.Name)]
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Label:   input.Label,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// FindCatalogFiles finds the company catalog CSV files in dir, sorted by
// file name. Any CSV file is accepted; the suffixes only shape the company name.
func (d *Discovery) FindCatalogFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Label:   CompanyFromFileName(name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// companyAliases fixes names whose files were saved without separators
var companyAliases = map[string]string{
	"BestAgrolife":    "Best Agrolife",
	"NovaAgriScience": "Nova Agri Science",
}

// CompanyFromFileName derives a company name from a catalog file name:
// "T_Stanes_Products.csv" becomes "T Stanes".
func CompanyFromFileName(name string) string {
	base := filepath.Base(name)
	for _, suffix := range CatalogSuffixes {
		if strings.HasSuffix(base, suffix) {
			base = strings.TrimSuffix(base, suffix)
			break
		}
	}
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".csv") {
		base = strings.TrimSuffix(base, ext)
	}
	company := strings.TrimSpace(strings.ReplaceAll(base, "_", " "))
	if alias, ok := companyAliases[company]; ok {
		return alias
	}
	return company
}

// CatalogFileName returns the file name a new company's catalog is saved under
func CatalogFileName(company string) string {
	return strings.ReplaceAll(strings.TrimSpace(company), " ", "_") + "_Products.csv"
}
