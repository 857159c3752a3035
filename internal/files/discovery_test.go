package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func TestNewDiscovery(t *testing.T) {
	discovery := NewDiscovery("/test/base")

	assert.NotNil(t, discovery)
	assert.Equal(t, "/test/base", discovery.basePath)
}

func TestFindSalesFiles(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "all supported extensions",
			files:    []string{"b.xlsx", "a.XLS", "c.csv"},
			expected: []string{"a.XLS", "b.xlsx", "c.csv"},
		},
		{
			name:     "mixed file types",
			files:    []string{"report.xlsx", "notes.txt", "doc.pdf"},
			expected: []string{"report.xlsx"},
		},
		{
			name:     "editor lock files skipped",
			files:    []string{"~$report.xlsx", "report.xlsx"},
			expected: []string{"report.xlsx"},
		},
		{
			name:     "empty directory",
			files:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.files...)
			require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0755))

			found, err := NewDiscovery(dir).FindSalesFiles(".")
			require.NoError(t, err)

			var names []string
			for _, f := range found {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFindSalesFiles_MissingDirectory(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).FindSalesFiles("does-not-exist")
	assert.Error(t, err)
}

func TestFindBatchInputs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "salanal_fs.xls", "SALANAL_PS.XLS", "other.xlsx")

	found, err := NewDiscovery("/unused").FindBatchInputs(dir)
	require.NoError(t, err)
	require.Len(t, found, 2)

	assert.Equal(t, "SALANAL_PS.XLS", found[0].Name)
	assert.Equal(t, "Pesticides", found[0].Label)
	assert.Equal(t, "salanal_fs.xls", found[1].Name)
	assert.Equal(t, "Fertilizers", found[1].Label)
}

func TestFindCatalogFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Syngenta_Products.csv", "Adama_Products.csv", "readme.txt", "Nova_Agri_TechProduct_Names.csv")

	found, err := NewDiscovery(dir).FindCatalogFiles(".")
	require.NoError(t, err)
	require.Len(t, found, 3)

	assert.Equal(t, "Adama", found[0].Label)
	assert.Equal(t, "Nova Agri TechProduct Names", found[1].Label)
	assert.Equal(t, "Syngenta", found[2].Label)
}

func TestCompanyFromFileName(t *testing.T) {
	tests := []struct {
		file     string
		expected string
	}{
		{"Adama_Products.csv", "Adama"},
		{"T_Stanes_Products.csv", "T Stanes"},
		{"Nova_Agri_Tech_Product_Names.csv", "Nova Agri Tech"},
		{"BestAgrolife_Products.csv", "Best Agrolife"},
		{"NovaAgriScience_Products.csv", "Nova Agri Science"},
		{"Loose.csv", "Loose"},
		{"/abs/dir/PI_Products.csv", "PI"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompanyFromFileName(tt.file))
		})
	}
}

func TestCatalogFileName(t *testing.T) {
	assert.Equal(t, "T_Stanes_Products.csv", CatalogFileName(" T Stanes "))
	assert.Equal(t, "T Stanes", CompanyFromFileName(CatalogFileName("T Stanes")))
}
