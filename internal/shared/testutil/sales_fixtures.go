package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"salespulse/pkg/contracts/domain"
)

// SalesCSV is a two line billing export: net 5040, GST 907.2, gross 5947.2
const SalesCSV = "HSNCODE,ITNAME,QTY,TAXBLEAMT,GST\n" +
	"3808,Agas 250gms,1,600,18\n" +
	"3808,Alecto 50 Ml,3,4440,18\n"

// SalesRows returns the rows of SalesCSV as decoded from a request body
func SalesRows() []domain.RawRow {
	return []domain.RawRow{
		{"HSNCODE": "3808", "ITNAME": "Agas 250gms", "QTY": "1", "TAXBLEAMT": "600", "GST": "18"},
		{"HSNCODE": "3808", "ITNAME": "Alecto 50 Ml", "QTY": "3", "TAXBLEAMT": "4440", "GST": "18"},
	}
}

// WriteFile writes content to path, creating parent directories
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteCatalog creates a catalog directory with one <Company>_Products.csv
// per entry and returns its path.
func WriteCatalog(t *testing.T, companies map[string][]string) string {
	t.Helper()
	dir := t.TempDir()
	for company, products := range companies {
		name := strings.ReplaceAll(company, " ", "_") + "_Products.csv"
		WriteFile(t, filepath.Join(dir, name), "Product Name\n"+strings.Join(products, "\n")+"\n")
	}
	return dir
}
