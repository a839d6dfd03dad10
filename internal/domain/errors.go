package domain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInputNotFound indica que o arquivo de entrada não existe.
	// A operação inteira falha sem produzir saída parcial.
	ErrInputNotFound = errors.New("input not found")

	// ErrEmptyStore indica que a tabela de vendas está vazia no banco.
	ErrEmptyStore = errors.New("no data found in database")
)

// ValidationError bloqueia a carga no banco: os problemas encontrados
// pela validação viajam junto com o erro, nunca são engolidos.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("data validation failed: [%s]", strings.Join(e.Issues, "; "))
}
