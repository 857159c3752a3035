// Package files locates sales inputs and company catalog files on disk and
// writes finished reports.
//
// Discovery finds .xls, .xlsx and .csv sales exports, the default batch
// inputs (SALANAL_PS.XLS, SALANAL_FS.XLS) and the per-company catalog CSVs,
// and derives company names from catalog file names. Manager writes report
// artifacts atomically below an output directory.
//
// Example usage:
//
//	discovery := files.NewDiscovery(wd)
//	inputs, err := discovery.FindBatchInputs(".")
//
//	manager := files.NewManager(outputDir, logger)
//	path, err := manager.WriteFile("Sales_Analysis_20250101_120000.pdf", pdf)
package files
