// Package catalog loads the company product lists and attributes sales lines
// to companies.
//
// A catalog directory holds one CSV per company (<Company>_Products.csv or
// <Company>_Product_Names.csv) with an optional "Product Name" header. The
// loaded lists are compiled once into an immutable Catalog:
//
//	cat, err := catalog.NewLoader(logger).Load(ctx, "Company Wise Products")
//	company := cat.Classify("Alecto 50 Ml") // "Adama", or "Other"
//
// Classification is a case-insensitive substring search where the longest
// catalog product contained in the item name wins. Equal lengths resolve to
// the company whose file sorts first, then to file order.
//
// The package also carries the maintenance helpers used by catalogtool:
// pack-size aware tidying and Levenshtein based name suggestions.
package catalog
