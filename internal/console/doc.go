// Package console renders the terminal output of the command line tools:
// the run summary printed after an analysis, batch outcomes and the tables
// of the catalog tool. Styling degrades to plain text when stdout is not a
// terminal.
package console
