package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		product  string
		expected string
	}{
		{"Aniloguard 1 Lt", "Aniloguard"},
		{"Bakeel 250ml", "Bakeel"},
		{"Guru 500gms", "Guru"},
		{"Alecto 50 Ml", "Alecto"},
		{"Nova Potash 1kg", "Nova Potash"},
		{"Nova Feret 19;19;19 25kg", "Nova Feret 19;19;19"},
		{"Tricolor", "Tricolor"},
	}

	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			assert.Equal(t, tt.expected, BaseName(tt.product))
		})
	}
}

func TestParsePackSize(t *testing.T) {
	size, ok := ParsePackSize("Aniloguard 1 Lt")
	require.True(t, ok)
	assert.Equal(t, PackSize{Value: 1000, Unit: "ml"}, size)

	size, ok = ParsePackSize("Nova Potash 2.5kg")
	require.True(t, ok)
	assert.Equal(t, PackSize{Value: 2500, Unit: "gms"}, size)

	size, ok = ParsePackSize("Guru 500gms")
	require.True(t, ok)
	assert.Equal(t, PackSize{Value: 500, Unit: "gms"}, size)

	_, ok = ParsePackSize("Tricolor")
	assert.False(t, ok)
}

func TestTidy(t *testing.T) {
	result := Tidy([]string{
		"Bakeel 1 Lt",
		"Aniloguard 500ml",
		"Bakeel 250ml",
		"Bakeel",
		"Aniloguard 500ml",
		"",
		"Aniloguard 100ml",
	})

	assert.Equal(t, []string{
		"Aniloguard 100ml",
		"Aniloguard 500ml",
		"Bakeel 250ml",
		"Bakeel 1 Lt",
		"Bakeel",
	}, result.Products)
	assert.Equal(t, 1, result.DuplicatesRemoved)
	assert.Equal(t, 2, result.Families)
}

func TestWriteProductFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Adama_Products.csv")

	require.NoError(t, WriteProductFile(path, []string{"Alecto", "Agas, 250gms"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Product Name\nAlecto\n\"Agas, 250gms\"\n", string(data))

	products, err := ReadProductFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alecto", "Agas, 250gms"}, products)
}

func TestWriteProductFile_ReplacesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Adama_Products.csv")
	require.NoError(t, os.WriteFile(path, []byte("Product Name\nOld\n"), 0600))

	require.NoError(t, WriteProductFile(path, []string{"Alecto"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary file left behind")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	products, err := ReadProductFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alecto"}, products)
}

func TestAppendProducts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Adama_Products.csv")
	require.NoError(t, os.WriteFile(path, []byte("Product Name\nAlecto\n"), 0644))

	result, err := AppendProducts(path, []string{"ALECTO", "Agas 250gms", " ", "Agas 250gms"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Agas 250gms"}, result.Added)
	assert.Equal(t, []string{"ALECTO", "Agas 250gms"}, result.Duplicate)

	products, err := ReadProductFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alecto", "Agas 250gms"}, products)
}

func TestAppendProducts_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Dhanuka_Products.csv")

	result, err := AppendProducts(path, []string{"Areva"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Areva"}, result.Added)

	products, err := ReadProductFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Areva"}, products)
}
