// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-pipeline/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pipeline/internal/domain"
)

const (
	salesTable = "sales"
)

const createSalesTable = `
	CREATE TABLE IF NOT EXISTS sales (
		id SERIAL PRIMARY KEY,
		order_id TEXT NOT NULL UNIQUE,
		date DATE NOT NULL,
		customer_name TEXT NOT NULL,
		product TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price_per_unit NUMERIC(12,2) NOT NULL,
		total_price NUMERIC(12,2) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)
`

type SaleRepository interface {
	EnsureSchema(ctx context.Context) error
	UpsertBatch(ctx context.Context, records []domain.SaleRecord) (int, error)
	Count(ctx context.Context) (int64, error)
	ListOrderedByDate(ctx context.Context) ([]domain.SaleRecord, error)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// EnsureSchema garante que a tabela de vendas exista, com a constraint
// de unicidade em order_id que sustenta o upsert.
func (r *saleRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.conn.ExecContext(ctx, createSalesTable); err != nil {
		return fmt.Errorf("erro ao criar tabela de vendas: %w", err)
	}
	return nil
}

// UpsertBatch grava um lote em uma única transação: insere por order_id e,
// em conflito, sobrescreve todos os demais campos com os valores novos.
func (r *saleRepository) UpsertBatch(ctx context.Context, records []domain.SaleRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	builder := squirrel.StatementBuilder.
		Insert(salesTable).
		Columns("order_id", "date", "customer_name", "product", "quantity", "price_per_unit", "total_price")

	for _, record := range records {
		builder = builder.Values(
			record.OrderID,
			record.Date.Format(time.DateOnly),
			record.CustomerName,
			record.Product,
			record.Quantity,
			record.PricePerUnit,
			record.TotalPrice,
		)
	}

	sqlQuery, args, err := builder.
		Suffix(`
			ON CONFLICT (order_id) DO UPDATE SET
				date = EXCLUDED.date,
				customer_name = EXCLUDED.customer_name,
				product = EXCLUDED.product,
				quantity = EXCLUDED.quantity,
				price_per_unit = EXCLUDED.price_per_unit,
				total_price = EXCLUDED.total_price,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
			}
			return fmt.Errorf("erro ao executar a query: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(records), nil
}

func (r *saleRepository) Count(ctx context.Context) (int64, error) {
	sqlQuery, args, err := squirrel.
		Select("COUNT(*)").
		From(salesTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao contar registros: %w", err)
	}

	return total, nil
}

func (r *saleRepository) ListOrderedByDate(ctx context.Context) ([]domain.SaleRecord, error) {
	sqlQuery, args, err := squirrel.
		Select("order_id", "date", "customer_name", "product", "quantity", "price_per_unit", "total_price").
		From(salesTable).
		OrderBy("date ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []domain.SaleRecord{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.SaleRecord, 0)
	for rows.Next() {
		record, err := r.scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		records = append(records, *record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *saleRepository) scanSale(rows *sql.Rows) (*domain.SaleRecord, error) {
	record := &domain.SaleRecord{}

	err := rows.Scan(
		&record.OrderID,
		&record.Date,
		&record.CustomerName,
		&record.Product,
		&record.Quantity,
		&record.PricePerUnit,
		&record.TotalPrice,
	)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// IsConnectionError separa falhas fatais de conexão (classe 08 do Postgres,
// conexão perdida, contexto cancelado) das falhas recuperáveis de lote.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" {
		return true
	}

	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
