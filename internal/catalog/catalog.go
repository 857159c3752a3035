package catalog

import (
	"sort"
	"strings"

	"salespulse/pkg/contracts/domain"
)

// needle is one searchable catalog product
type needle struct {
	text    string // lowercased, trimmed product name
	product string
	company string
	order   int
}

// Catalog is a compiled, read-only product to company lookup. It is safe
// for concurrent use.
type Catalog struct {
	source  domain.CompanyCatalog
	needles []needle
	exact   map[string]needle
}

// New compiles a catalog. Companies keep the order they have in c.
func New(c domain.CompanyCatalog) *Catalog {
	cat := &Catalog{
		source: c,
		exact:  make(map[string]needle),
	}

	order := 0
	for _, cp := range c.Companies {
		for _, product := range cp.Products {
			text := strings.ToLower(strings.TrimSpace(product))
			if text == "" {
				continue
			}
			n := needle{text: text, product: product, company: cp.Company, order: order}
			order++
			cat.needles = append(cat.needles, n)
			if _, seen := cat.exact[text]; !seen {
				cat.exact[text] = n
			}
		}
	}

	sort.SliceStable(cat.needles, func(i, j int) bool {
		if len(cat.needles[i].text) != len(cat.needles[j].text) {
			return len(cat.needles[i].text) > len(cat.needles[j].text)
		}
		return cat.needles[i].order < cat.needles[j].order
	})

	return cat
}

// Empty returns a catalog that classifies everything as Other
func Empty() *Catalog {
	return New(domain.CompanyCatalog{})
}

// Classify returns the company owning the longest catalog product contained
// in itemName, or domain.CompanyOther.
func (c *Catalog) Classify(itemName string) string {
	if match, ok := c.Match(itemName); ok {
		return match.Company
	}
	return domain.CompanyOther
}

// Match is a successful lookup
type Match struct {
	Company string
	Product string
}

// Match returns the catalog entry that claims itemName
func (c *Catalog) Match(itemName string) (Match, bool) {
	item := strings.ToLower(strings.TrimSpace(itemName))
	if item == "" {
		return Match{}, false
	}
	if n, ok := c.exact[item]; ok {
		return Match{Company: n.company, Product: n.product}, true
	}
	for _, n := range c.needles {
		if len(n.text) > len(item) {
			continue
		}
		if strings.Contains(item, n.text) {
			return Match{Company: n.company, Product: n.product}, true
		}
	}
	return Match{}, false
}

// ClassifyAll attributes every record to a company, preserving order
func (c *Catalog) ClassifyAll(records []domain.SalesRecord) []domain.ClassifiedRecord {
	out := make([]domain.ClassifiedRecord, len(records))
	for i, r := range records {
		out[i] = domain.ClassifiedRecord{SalesRecord: r, Company: c.Classify(r.ItemName)}
	}
	return out
}

// Companies returns the company names in catalog order
func (c *Catalog) Companies() []string {
	names := make([]string, len(c.source.Companies))
	for i, cp := range c.source.Companies {
		names[i] = cp.Company
	}
	return names
}

// Products returns the product list of company, or nil
func (c *Catalog) Products(company string) []string {
	for _, cp := range c.source.Companies {
		if cp.Company == company {
			return append([]string(nil), cp.Products...)
		}
	}
	return nil
}

// ProductCount returns the number of searchable products
func (c *Catalog) ProductCount() int {
	return len(c.needles)
}

// Snapshot returns a copy of the catalog contents
func (c *Catalog) Snapshot() domain.CompanyCatalog {
	out := domain.CompanyCatalog{Companies: make([]domain.CompanyProducts, len(c.source.Companies))}
	for i, cp := range c.source.Companies {
		out.Companies[i] = domain.CompanyProducts{
			Company:  cp.Company,
			Source:   cp.Source,
			Products: append([]string(nil), cp.Products...),
		}
	}
	return out
}

// Conflict is a product name listed by more than one company
type Conflict struct {
	Product   string
	Companies []string
}

// Conflicts lists products claimed by several companies, sorted by product.
// Only the first company in catalog order ever wins such a product.
func (c *Catalog) Conflicts() []Conflict {
	owners := make(map[string][]string)
	display := make(map[string]string)
	for _, cp := range c.source.Companies {
		seen := make(map[string]bool)
		for _, product := range cp.Products {
			key := strings.ToLower(strings.TrimSpace(product))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			owners[key] = append(owners[key], cp.Company)
			if _, ok := display[key]; !ok {
				display[key] = strings.TrimSpace(product)
			}
		}
	}

	var conflicts []Conflict
	for key, companies := range owners {
		if len(companies) > 1 {
			conflicts = append(conflicts, Conflict{Product: display[key], Companies: companies})
		}
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].Product < conflicts[j].Product
	})
	return conflicts
}
