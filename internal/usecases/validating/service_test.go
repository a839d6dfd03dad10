package validating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-pipeline/internal/dataset"
	"github.com/vfg2006/sales-pipeline/internal/domain"
)

func newTable(rows ...[]string) *dataset.Table {
	t := dataset.New(domain.RequiredColumns)
	for _, row := range rows {
		t.Append(row)
	}
	return t
}

func validRow(orderID string) []string {
	return []string{orderID, "2024-01-05", "Maria Souza", "Phone", "2", "100.00", "200.00"}
}

func TestService_Validate(t *testing.T) {
	service := NewService()

	tests := []struct {
		name     string
		table    *dataset.Table
		validate func(t *testing.T, report domain.ValidationReport)
	}{
		{
			name:  "Tabela válida não reporta problemas",
			table: newTable(validRow("A1"), validRow("A2")),
			validate: func(t *testing.T, report domain.ValidationReport) {
				assert.True(t, report.Valid)
				assert.Empty(t, report.Issues)
			},
		},
		{
			name:  "Tabela vazia reporta exatamente um problema e retorna imediatamente",
			table: newTable(),
			validate: func(t *testing.T, report domain.ValidationReport) {
				assert.False(t, report.Valid)
				assert.Equal(t, []string{"DataFrame is empty"}, report.Issues)
			},
		},
		{
			name: "Colunas ausentes são nomeadas e as demais checagens continuam",
			table: func() *dataset.Table {
				table := dataset.New([]string{"order_id", "date", "customer_name", "product", "quantity", "price_per_unit"})
				table.Append([]string{"A1", "2024-01-05", "Maria Souza", "Phone", "-2", "100.00"})
				return table
			}(),
			validate: func(t *testing.T, report domain.ValidationReport) {
				assert.False(t, report.Valid)
				assert.Contains(t, report.Issues, "Missing required columns: [total_price]")
				assert.Contains(t, report.Issues, "Found 1 rows with quantity <= 0")
			},
		},
		{
			name:  "Order_ids duplicados contam todas as linhas envolvidas",
			table: newTable(validRow("A1"), validRow("A1"), validRow("A1"), validRow("A2")),
			validate: func(t *testing.T, report domain.ValidationReport) {
				assert.False(t, report.Valid)
				assert.Contains(t, report.Issues, "Found 3 duplicate order_ids")
			},
		},
		{
			name: "Quantidade não positiva é reportada com contagem",
			table: newTable(
				[]string{"A1", "2024-01-05", "Maria Souza", "Phone", "0", "100.00", "0.00"},
				[]string{"A2", "2024-01-06", "João Lima", "Tablet", "-3", "50.00", "-150.00"},
				validRow("A3"),
			),
			validate: func(t *testing.T, report domain.ValidationReport) {
				assert.False(t, report.Valid)
				assert.Contains(t, report.Issues, "Found 2 rows with quantity <= 0")
				assert.Contains(t, report.Issues, "Found 1 rows with negative total_price")
			},
		},
		{
			name: "Preço unitário negativo é reportado",
			table: newTable(
				[]string{"A1", "2024-01-05", "Maria Souza", "Phone", "1", "-10.00", "-10.00"},
				validRow("A2"),
			),
			validate: func(t *testing.T, report domain.ValidationReport) {
				assert.False(t, report.Valid)
				assert.Contains(t, report.Issues, "Found 1 rows with negative price_per_unit")
				assert.Contains(t, report.Issues, "Found 1 rows with negative total_price")
			},
		},
		{
			name: "Total fora da tolerância é reportado",
			table: newTable(
				[]string{"A1", "2024-01-05", "Maria Souza", "Phone", "2", "100.00", "200.50"},
				validRow("A2"),
			),
			validate: func(t *testing.T, report domain.ValidationReport) {
				assert.False(t, report.Valid)
				assert.Contains(t, report.Issues, "Found 1 rows where total_price doesn't match quantity * price_per_unit")
			},
		},
		{
			name: "Diferença dentro da tolerância de 0.01 não é problema",
			table: newTable(
				[]string{"A1", "2024-01-05", "Maria Souza", "Phone", "2", "100.00", "200.01"},
			),
			validate: func(t *testing.T, report domain.ValidationReport) {
				assert.True(t, report.Valid)
			},
		},
		{
			name: "Ordem das linhas não muda o resultado",
			table: newTable(
				validRow("A3"),
				[]string{"A2", "2024-01-06", "João Lima", "Tablet", "-3", "50.00", "-150.00"},
				[]string{"A1", "2024-01-05", "Maria Souza", "Phone", "0", "100.00", "0.00"},
			),
			validate: func(t *testing.T, report domain.ValidationReport) {
				assert.False(t, report.Valid)
				assert.Contains(t, report.Issues, "Found 2 rows with quantity <= 0")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rowsBefore := make([][]string, len(tt.table.Rows))
			copy(rowsBefore, tt.table.Rows)

			result := service.Validate(tt.table)
			tt.validate(t, result)

			// A validação nunca altera a tabela
			assert.Equal(t, rowsBefore, tt.table.Rows)
			assert.Equal(t, result.Valid, len(result.Issues) == 0)
		})
	}
}
