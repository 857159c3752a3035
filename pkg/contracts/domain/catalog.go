package domain

// CompanyProducts lists the product names one company claims, in file order.
type CompanyProducts struct {
	Company  string   `json:"company"`
	Source   string   `json:"source,omitempty"`
	Products []string `json:"products"`
}

// CompanyCatalog is the loaded company to product mapping, ordered by company.
type CompanyCatalog struct {
	Companies []CompanyProducts `json:"companies"`
}

// ProductCount returns the number of product entries across all companies
func (c CompanyCatalog) ProductCount() int {
	n := 0
	for _, cp := range c.Companies {
		n += len(cp.Products)
	}
	return n
}
