package domain

// CompanyOther is the label for products no catalog company claims.
const CompanyOther = "Other"

// Canonical column names of a sales row
const (
	ColumnHSNCode       = "HSNCODE"
	ColumnItemName      = "ITNAME"
	ColumnQuantity      = "QTY"
	ColumnTaxableAmount = "TAXBLEAMT"
	ColumnGSTRate       = "GST"
)

// RawRow is one input row keyed by its column header as found in the source.
// Values are strings from files or JSON scalars from HTTP payloads.
type RawRow map[string]interface{}

// SalesRecord is one canonical sales line
type SalesRecord struct {
	HSNCode       string  `json:"hsn_code,omitempty"`
	ItemName      string  `json:"item_name" validate:"required"`
	Quantity      float64 `json:"quantity" validate:"gte=0"`
	TaxableAmount float64 `json:"taxable_amount" validate:"gte=0"`
	GSTRate       float64 `json:"gst_rate" validate:"gte=0,lte=100"`
}

// GSTAmount returns the tax charged on the line
func (r SalesRecord) GSTAmount() float64 {
	return r.TaxableAmount * r.GSTRate / 100
}

// GrossAmount returns the line total including GST
func (r SalesRecord) GrossAmount() float64 {
	return r.TaxableAmount * (1 + r.GSTRate/100)
}

// PricePerUnit returns net revenue per unit; ok is false when no units were sold.
func (r SalesRecord) PricePerUnit() (price float64, ok bool) {
	if r.Quantity == 0 {
		return 0, false
	}
	return r.TaxableAmount / r.Quantity, true
}

// ClassifiedRecord is a SalesRecord with the company it was attributed to
type ClassifiedRecord struct {
	SalesRecord
	Company string `json:"company"`
}
