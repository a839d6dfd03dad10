package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_GetSet(t *testing.T) {
	table := New([]string{"order_id", "quantity"})
	table.Append([]string{"A1", "2"})

	assert.Equal(t, "A1", table.Get(0, "order_id"))
	assert.Equal(t, "", table.Get(0, "inexistente"))

	table.Set(0, "quantity", "3")
	assert.Equal(t, "3", table.Get(0, "quantity"))

	// Set em coluna desconhecida é ignorado
	table.Set(0, "inexistente", "x")
	assert.Equal(t, []string{"A1", "3"}, table.Rows[0])
}

func TestTable_AppendCompletaCelulasFaltantes(t *testing.T) {
	table := New([]string{"a", "b", "c"})
	table.Append([]string{"1"})

	assert.Equal(t, []string{"1", "", ""}, table.Rows[0])
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		cell  string
		want  float64
		valid bool
	}{
		{"100.50", 100.50, true},
		{" 2 ", 2, true},
		{"-3", -3, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseFloat(tt.cell)
		assert.Equal(t, tt.valid, ok, tt.cell)
		assert.Equal(t, tt.want, got, tt.cell)
	}
}

func TestReadWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.csv")

	table := New([]string{"order_id", "date", "region"})
	table.Append([]string{"A1", "2024-01-05", "sul"})
	table.Append([]string{"A2", "2024-01-06", ""})

	require.NoError(t, WriteCSV(table, path))

	loaded, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, table.Header, loaded.Header)
	assert.Equal(t, table.Rows, loaded.Rows)

	// Nenhum arquivo temporário deve sobrar no diretório
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadCSV_ArquivoInexistente(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nao-existe.csv"))
	assert.True(t, os.IsNotExist(err))
}
