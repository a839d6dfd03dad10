// Package dataset implementa a tabela em memória que circula entre as etapas
// do pipeline: um cabeçalho ordenado e linhas de células em texto, como lidas
// do CSV. Colunas não reconhecidas pelas etapas passam adiante sem alteração.
package dataset

import (
	"strconv"
	"strings"
)

type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

func New(header []string) *Table {
	t := &Table{Header: append([]string{}, header...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		t.index[name] = i
	}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Append adiciona uma linha; células faltantes viram vazio para manter
// todas as linhas com o mesmo número de colunas.
func (t *Table) Append(cells []string) {
	row := make([]string, len(t.Header))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Get retorna a célula da linha i na coluna name, ou vazio se a coluna
// não existe.
func (t *Table) Get(i int, name string) string {
	col, ok := t.index[name]
	if !ok {
		return ""
	}
	return t.Rows[i][col]
}

func (t *Table) Set(i int, name, value string) {
	col, ok := t.index[name]
	if !ok {
		return
	}
	t.Rows[i][col] = value
}

// IsMissing diz se uma célula representa valor ausente (vazio no CSV).
func IsMissing(cell string) bool {
	return strings.TrimSpace(cell) == ""
}

// ParseFloat converte uma célula numérica; retorna false para célula
// ausente ou não numérica.
func ParseFloat(cell string) (float64, bool) {
	if IsMissing(cell) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
