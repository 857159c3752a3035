package report

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func TestHTMLRenderer_Sections(t *testing.T) {
	out, err := NewHTMLRenderer("Pesticides Sales", 15).Render(context.Background(), testAnalysis())
	require.NoError(t, err)
	html := string(out)

	for _, want := range []string{
		"<title>Pesticides Sales</title>",
		"Source: SALANAL_PS.XLS",
		"Executive Summary",
		"5,040.00",
		"5,947.20",
		"Leading company: <strong>Adama (88.10% of net revenue)</strong>",
		"Top 2 Products by Net Revenue",
		"Top 2 Products by Quantity",
		"Top 2 Companies by Net Revenue",
		"GST Breakdown",
		"Company Analysis",
		"Bottom Performers",
		"Lowest Price per Unit",
		"Unmatched Products",
		"64.00%",
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "Every product matched a catalog company.")
}

func TestHTMLRenderer_EscapesNames(t *testing.T) {
	a := testAnalysis()
	a.Products[0].ItemName = `<script>alert("x")</script>`
	a.Performers.TopByRevenue[0].ItemName = a.Products[0].ItemName

	out, err := NewHTMLRenderer("Report", 15).Render(context.Background(), a)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "&lt;script&gt;")
}

func TestHTMLRenderer_ChartLimit(t *testing.T) {
	a := &domain.SalesAnalysis{Source: "big.csv"}
	for i := 0; i < 30; i++ {
		a.Products = append(a.Products, domain.ProductSummary{
			ItemName: fmt.Sprintf("Product %02d", i), NetRevenue: float64(100 - i),
			Quantity: float64(i), RevenueRank: i + 1, QuantityRank: 30 - i,
		})
	}

	out, err := NewHTMLRenderer("Report", 5).Render(context.Background(), a)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "Top 5 Products by Net Revenue")
	assert.Equal(t, 10, strings.Count(html, "<rect"), "two product charts of five bars")
	assert.Contains(t, html, "Product 29", "quantity chart leads with the highest quantity")
}

func TestHTMLRenderer_EmptyAnalysis(t *testing.T) {
	out, err := NewHTMLRenderer("Report", 0).Render(context.Background(), &domain.SalesAnalysis{})
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "No GST rates recorded.")
	assert.Contains(t, html, "Every product matched a catalog company.")
	assert.NotContains(t, html, "<rect")
	assert.NotContains(t, html, "Leading company")
}
