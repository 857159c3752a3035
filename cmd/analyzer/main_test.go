package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/shared/testutil"
	"salespulse/pkg/contracts"
)

const salesCSV = testutil.SalesCSV

var writeFile = testutil.WriteFile

func catalogDir(t *testing.T) string {
	return testutil.WriteCatalog(t, map[string][]string{"Adama": {"Alecto"}})
}

func TestRun_SingleFile(t *testing.T) {
	in := filepath.Join(t.TempDir(), "sales.csv")
	writeFile(t, in, salesCSV)
	out := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-in", in,
		"-catalog", catalogDir(t),
		"-out", out,
		"-format", "json,xlsx,csv",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.FileExists(t, filepath.Join(out, "Analysis_Summary.xlsx"))
	assert.FileExists(t, filepath.Join(out, "Company_Analysis.csv"))
	matches, err := filepath.Glob(filepath.Join(out, "Sales_Analysis_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	summary := stdout.String()
	assert.Contains(t, summary, "5,040.00")
	assert.Contains(t, summary, "5,947.20")
	assert.Contains(t, summary, "Adama")
}

func TestRun_Batch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "north.csv"), salesCSV)
	writeFile(t, filepath.Join(dir, "south.csv"), "ITNAME,QTY,TAXBLEAMT\nAgas,1,600\n")
	out := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-dir", dir,
		"-catalog", catalogDir(t),
		"-out", out,
		"-format", "csv",
	}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.FileExists(t, filepath.Join(out, "north", "Company_Analysis.csv"))
	assert.NoDirExists(t, filepath.Join(out, "south"))
	assert.Contains(t, stdout.String(), "1 of 2 inputs failed")
	assert.Contains(t, stdout.String(), "GST")
}

func TestRun_Failures(t *testing.T) {
	in := filepath.Join(t.TempDir(), "sales.csv")
	writeFile(t, in, salesCSV)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown flag", []string{"-bogus"}, 2},
		{"stray argument", []string{"extra"}, 2},
		{"unsupported format", []string{"-in", in, "-format", "docx"}, 1},
		{"missing input", []string{"-in", filepath.Join(t.TempDir(), "nope.csv")}, 1},
		{"empty sales dir", []string{"-dir", t.TempDir()}, 1},
		{"negative top", []string{"-in", in, "-top", "-1"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-catalog", catalogDir(t), "-out", t.TempDir()}, tt.args...)
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(context.Background(), args, &stdout, &stderr))
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-version"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "analyzer "+contracts.Version)
	assert.Empty(t, stderr.String())
}

func TestSplitFormats(t *testing.T) {
	assert.Equal(t, []string{"pdf", "xlsx"}, splitFormats(" PDF, xlsx,,pdf "))
	assert.Empty(t, splitFormats(" , "))
}
