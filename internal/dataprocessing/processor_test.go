package dataprocessing

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"salespulse/internal/catalog"
	apperrors "salespulse/internal/errors"
	"salespulse/pkg/contracts/domain"
)

type ProcessorTestSuite struct {
	suite.Suite
	processor *Processor
	fixedNow  time.Time
}

func (s *ProcessorTestSuite) SetupTest() {
	s.fixedNow = time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	cat := catalog.New(domain.CompanyCatalog{Companies: []domain.CompanyProducts{
		{Company: "Adama", Products: []string{"Alecto"}},
		{Company: "Other Co", Products: []string{"Alecto 50"}},
	}})
	s.processor = NewProcessor(cat, WithTopN(5), WithClock(func() time.Time { return s.fixedNow }))
}

func (s *ProcessorTestSuite) TestAnalyzeRows() {
	rows := []domain.RawRow{
		{"HSNCODE": "3808", "ITNAME": "Agas 250gms", "QTY": "1", "TAXBLEAMT": "600", "GST": "18"},
		{"HSNCODE": "3808", "ITNAME": "Alecto 50 Ml", "QTY": "3", "TAXBLEAMT": "4440", "GST": "18"},
		{"HSNCODE": "3808", "ITNAME": "Alecto 100 Ml", "QTY": "1", "TAXBLEAMT": "2000", "GST": "18"},
	}

	a, err := s.processor.Analyze(context.Background(), "request", rows)
	s.Require().NoError(err)

	s.NotEmpty(a.ID)
	s.Equal("request", a.Source)
	s.Equal(s.fixedNow, a.GeneratedAt)
	s.Equal(3, a.Totals.DistinctProducts)
	s.InDelta(7040, a.Totals.NetRevenue, 1e-9)

	companies := map[string]string{}
	for _, p := range a.Products {
		companies[p.ItemName] = p.Company
	}
	s.Equal("Other Co", companies["Alecto 50 Ml"], "longest catalog product wins")
	s.Equal("Adama", companies["Alecto 100 Ml"])
	s.Equal(domain.CompanyOther, companies["Agas 250gms"])

	s.Require().Len(a.Unmatched, 1)
	s.Equal("Agas 250gms", a.Unmatched[0].ItemName)
}

func (s *ProcessorTestSuite) TestAnalyzeEmpty() {
	for _, rows := range [][]domain.RawRow{nil, {{"ITNAME": "", "QTY": "", "TAXBLEAMT": "", "GST": ""}}} {
		_, err := s.processor.Analyze(context.Background(), "empty.csv", rows)

		var empty *apperrors.EmptyDatasetError
		s.Require().ErrorAs(err, &empty)
		s.Equal("empty.csv", empty.Source)
	}
}

func (s *ProcessorTestSuite) TestAnalyzeMissingColumn() {
	_, err := s.processor.Analyze(context.Background(), "request", []domain.RawRow{{"ITNAME": "x", "QTY": "1"}})

	var missing *apperrors.MissingColumnError
	s.ErrorAs(err, &missing)
}

func (s *ProcessorTestSuite) TestAnalyzeCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.processor.Analyze(ctx, "request", []domain.RawRow{{"ITNAME": "x", "QTY": "1", "TAXBLEAMT": "1", "GST": "0"}})
	s.ErrorIs(err, context.Canceled)
}

func (s *ProcessorTestSuite) TestAnalyzeFile() {
	path := filepath.Join(s.T().TempDir(), "SALANAL_PS.xlsx")
	writeWorkbook(s.T(), path, 1, [][]interface{}{
		{"HSNCODE", "ITNAME", "QTY", "NAMT", "PER"},
		{"3808", "Alecto 50 Ml", 3, 4440, 18},
	})

	a, err := s.processor.AnalyzeFile(context.Background(), path)
	s.Require().NoError(err)
	s.Equal("SALANAL_PS.xlsx", a.Source)
	s.Equal(1, a.Totals.Records)
	s.InDelta(799.2, a.Totals.GSTAmount, 1e-9)
}

func (s *ProcessorTestSuite) TestAnalyzeFileMissing() {
	_, err := s.processor.AnalyzeFile(context.Background(), filepath.Join(s.T().TempDir(), "nope.xls"))

	var notFound *apperrors.FileNotFoundError
	s.ErrorAs(err, &notFound)
}

func TestProcessorTestSuite(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}

func TestNewProcessorNilCatalog(t *testing.T) {
	p := NewProcessor(nil)
	require.NotNil(t, p.Catalog())

	a, err := p.Analyze(context.Background(), "x", []domain.RawRow{{"ITNAME": "Agas", "QTY": 1, "TAXBLEAMT": 10, "GST": 5}})
	require.NoError(t, err)
	assert.Equal(t, domain.CompanyOther, a.Products[0].Company)
}

func TestSourceKind(t *testing.T) {
	assert.Equal(t, "xls", sourceKind("SALANAL_PS.XLS"))
	assert.Equal(t, "csv", sourceKind("a.csv"))
	assert.Equal(t, "json", sourceKind("request"))
}
