package repository

import (
	"context"
	"database/sql/driver"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "Nulo não é erro de conexão",
			err:  nil,
			want: false,
		},
		{
			name: "Erro comum de lote é recuperável",
			err:  errors.New("duplicate key value violates unique constraint"),
			want: false,
		},
		{
			name: "Classe 08 do Postgres é fatal",
			err:  &pq.Error{Code: "08006"},
			want: true,
		},
		{
			name: "Classe 08 embrulhada continua fatal",
			err:  fmt.Errorf("erro no banco de dados: %w", &pq.Error{Code: "08001"}),
			want: true,
		},
		{
			name: "Classe 23 (integridade) não é fatal",
			err:  &pq.Error{Code: "23505"},
			want: false,
		},
		{
			name: "Conexão perdida é fatal",
			err:  errors.Wrap(driver.ErrBadConn, "erro ao executar a query"),
			want: true,
		},
		{
			name: "Contexto cancelado é fatal",
			err:  context.Canceled,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConnectionError(tt.err))
		})
	}
}
