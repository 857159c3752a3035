package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"salespulse/internal/files"
)

// packSizePattern matches a trailing pack size such as "250ml", "1 Lt" or "500gms"
var packSizePattern = regexp.MustCompile(`(?i)\s*(\d+(?:\.\d+)?)\s*(ml|lt|ltr|l|kg|kgs|gms|gm|gr|g)\s*$`)

// PackSize is a pack size normalised to millilitres or grams
type PackSize struct {
	Value float64
	Unit  string // "ml" or "gms"
}

// BaseName strips a trailing pack size: "Aniloguard 1 Lt" -> "Aniloguard"
func BaseName(product string) string {
	return strings.TrimSpace(packSizePattern.ReplaceAllString(strings.TrimSpace(product), ""))
}

// ParsePackSize extracts the trailing pack size of product
func ParsePackSize(product string) (PackSize, bool) {
	m := packSizePattern.FindStringSubmatch(strings.TrimSpace(product))
	if m == nil {
		return PackSize{}, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return PackSize{}, false
	}
	switch strings.ToLower(m[2]) {
	case "lt", "ltr", "l":
		return PackSize{Value: value * 1000, Unit: "ml"}, true
	case "ml":
		return PackSize{Value: value, Unit: "ml"}, true
	case "kg", "kgs":
		return PackSize{Value: value * 1000, Unit: "gms"}, true
	default:
		return PackSize{Value: value, Unit: "gms"}, true
	}
}

// TidyResult describes what Tidy changed
type TidyResult struct {
	Products          []string
	DuplicatesRemoved int
	Families          int
}

// Tidy drops repeated names and groups pack sizes of the same product:
// families sorted by base name, sizes ascending inside a family, products
// without a recognisable size last.
func Tidy(products []string) TidyResult {
	seen := make(map[string]bool)
	families := make(map[string][]string)
	var result TidyResult

	for _, p := range products {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if seen[p] {
			result.DuplicatesRemoved++
			continue
		}
		seen[p] = true
		base := BaseName(p)
		families[base] = append(families[base], p)
	}

	bases := make([]string, 0, len(families))
	for base := range families {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	for _, base := range bases {
		group := families[base]
		sort.SliceStable(group, func(i, j int) bool {
			return packLess(group[i], group[j])
		})
		result.Products = append(result.Products, group...)
	}
	result.Families = len(families)
	return result
}

func packLess(a, b string) bool {
	sa, okA := ParsePackSize(a)
	sb, okB := ParsePackSize(b)
	switch {
	case okA && okB:
		if sa.Unit != sb.Unit {
			return sa.Unit < sb.Unit
		}
		return sa.Value < sb.Value
	case okA:
		return true
	default:
		return false
	}
}

// WriteProductFile rewrites a catalog file with the "Product Name" header
func WriteProductFile(path string, products []string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{HeaderProductName}); err != nil {
		return err
	}
	for _, p := range products {
		if err := w.Write([]string{p}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	_, err := files.NewManager("", nil).WriteFile(path, buf.Bytes())
	return err
}

// AppendResult describes an AppendProducts call
type AppendResult struct {
	Added     []string
	Duplicate []string
}

// AppendProducts adds products missing from the catalog file at path,
// creating the file when needed. Existing entries keep their order.
func AppendProducts(path string, products []string) (AppendResult, error) {
	var result AppendResult

	var existing []string
	if _, err := os.Stat(path); err == nil {
		if existing, err = ReadProductFile(path); err != nil {
			return result, err
		}
	}

	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[strings.ToLower(p)] = true
	}

	merged := existing
	for _, p := range products {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if known[key] {
			result.Duplicate = append(result.Duplicate, p)
			continue
		}
		known[key] = true
		merged = append(merged, p)
		result.Added = append(result.Added, p)
	}

	if len(result.Added) == 0 {
		return result, nil
	}
	return result, WriteProductFile(path, merged)
}
