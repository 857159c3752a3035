package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Alecto", "ALECTO "))
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 1-1.0/6, Similarity("Alecto", "Alecta"), 1e-9)
}

func TestSuggest(t *testing.T) {
	cat := testCatalog(
		domain.CompanyProducts{Company: "Adama", Products: []string{"Alecto 50 Ml"}},
		domain.CompanyProducts{Company: "Rallis", Products: []string{"Taqat 250gms"}},
	)

	s, ok := cat.Suggest("Alekto 50 Ml", DefaultSimilarityThreshold)
	require.True(t, ok)
	assert.Equal(t, "Alecto 50 Ml", s.Product)
	assert.Equal(t, "Adama", s.Company)
	assert.InDelta(t, 1-1.0/12, s.Similarity, 1e-9)

	_, ok = cat.Suggest("Completely different", DefaultSimilarityThreshold)
	assert.False(t, ok)
}

func TestMatchName(t *testing.T) {
	companies := []string{"Best Agrolife", "Nova Agri Science", "Nova Agri Tech", "T Stanes", "PI"}

	tests := []struct {
		name     string
		expected string
		ok       bool
	}{
		{"pi", "PI", true},
		{"Tstanes", "T Stanes", true},
		{"Bestagro", "Best Agrolife", true},
		{"Nova science", "Nova Agri Science", true},
		{"Zuari", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchName(tt.name, companies, DefaultSimilarityThreshold)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}
