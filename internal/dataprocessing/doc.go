// Package dataprocessing turns raw sales exports into a SalesAnalysis.
//
// # Architecture
//
// The package is organized into four steps that run in order:
//
// 1. Parser: reads .xls, .xlsx and .csv files, or the JSON rows of an
// analyze request, into header-keyed rows
// 2. Normalizer: resolves column aliases (NAMT for TAXBLEAMT, PER for GST)
// and parses numeric cells into SalesRecord values
// 3. Classification: the catalog package attributes each item to a company
// 4. Aggregator: product, company and GST-rate summaries, rankings,
// performer lists and unmatched products
//
// Processor wires the steps together and is the only entry point the
// command line and HTTP front ends use.
//
// # Usage
//
//	cat, err := catalog.NewLoader(logger).Load(ctx, "Company Wise Products")
//	if err != nil {
//	    return err
//	}
//	proc := dataprocessing.NewProcessor(cat, dataprocessing.WithTopN(10))
//	analysis, err := proc.AnalyzeFile(ctx, "SALANAL_PS.XLS")
//
// Money is accumulated with shopspring/decimal so sums do not drift with
// the number of lines; summaries expose float64 values.
package dataprocessing
