// Package loading persiste um dataset limpo na tabela de vendas, em lotes
// de tamanho fixo com upsert por order_id. A validação é um portão rígido:
// dados inválidos nunca chegam ao banco.
package loading

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-pipeline/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline/internal/dataset"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/usecases/validating"
	"github.com/vfg2006/sales-pipeline/pkg/log"
	"github.com/vfg2006/sales-pipeline/pkg/utils"
)

const defaultBatchSize = 100

type Service struct {
	repo      repository.SaleRepository
	validator *validating.Service
	batchSize int
}

func NewService(repo repository.SaleRepository, validator *validating.Service, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Service{
		repo:      repo,
		validator: validator,
		batchSize: batchSize,
	}
}

// Run carrega o arquivo limpo no banco. Entrada inexistente é fatal.
func (s *Service) Run(ctx context.Context, inputFile string) (domain.LoadReport, error) {
	logger := log.ForContext(ctx)

	logger.Infof("Carregando dados de %s...", inputFile)
	table, err := dataset.ReadCSV(inputFile)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return domain.LoadReport{}, errors.Wrapf(domain.ErrInputNotFound, "%s", inputFile)
		}
		return domain.LoadReport{}, errors.Wrapf(err, "erro ao carregar %s", inputFile)
	}
	logger.Infof("Carregadas %d linhas de %s", table.Len(), inputFile)

	return s.Load(ctx, table)
}

// Load valida o dataset, converte as linhas em registros tipados e grava em
// lotes sequenciais. Um lote que falha é registrado e pulado; erros de
// conexão abortam o restante da carga.
func (s *Service) Load(ctx context.Context, t *dataset.Table) (domain.LoadReport, error) {
	logger := log.ForContext(ctx)

	logger.Info("Validando dados antes da carga...")
	validation := s.validator.Validate(t)
	if !validation.Valid {
		return domain.LoadReport{}, &domain.ValidationError{Issues: validation.Issues}
	}
	logger.Info("Validação dos dados passou")

	records, err := toRecords(t)
	if err != nil {
		return domain.LoadReport{}, errors.Wrap(err, "erro ao preparar registros para a carga")
	}

	if err := s.repo.EnsureSchema(ctx); err != nil {
		return domain.LoadReport{}, err
	}

	report := domain.LoadReport{Attempted: len(records)}

	logger.Infof("Inserindo %d linhas em lotes de %d...", len(records), s.batchSize)
	for start, index := 0, 0; start < len(records); start, index = start+s.batchSize, index+1 {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		rows, err := s.repo.UpsertBatch(ctx, batch)
		result := domain.BatchResult{Index: index, Rows: rows, Err: err}
		report.Batches = append(report.Batches, result)

		if err != nil {
			if repository.IsConnectionError(err) {
				logger.WithError(err).Error("Erro fatal de conexão durante a carga, abortando")
				return report, errors.Wrap(err, "erro de conexão com o banco")
			}
			logger.WithError(err).Errorf("Erro ao inserir lote %d, pulando", index+1)
			continue
		}

		report.Inserted += rows
		logger.Infof("Lote inserido: %d/%d linhas", report.Inserted, report.Attempted)
	}

	logger.Infof("Carga concluída: %d de %d linhas gravadas", report.Inserted, report.Attempted)

	total, err := s.repo.Count(ctx)
	if err != nil {
		logger.WithError(err).Warn("Não foi possível contar os registros no banco")
	} else {
		report.TotalInStore = total
		logger.Infof("Total de registros no banco: %d", total)
	}

	return report, nil
}

// toRecords converte as linhas validadas em registros tipados, com a data
// no formato canônico YYYY-MM-DD. Uma linha que não converte aqui é um erro
// inesperado: a validação já passou.
func toRecords(t *dataset.Table) ([]domain.SaleRecord, error) {
	records := make([]domain.SaleRecord, 0, t.Len())

	for i := 0; i < t.Len(); i++ {
		dateStr := t.Get(i, "date")
		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			date, err = utils.ParseDate(dateStr)
			if err != nil {
				return nil, errors.Wrapf(err, "linha %d", i+1)
			}
		}

		quantity, err := strconv.ParseFloat(t.Get(i, "quantity"), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "linha %d: quantity inválida", i+1)
		}
		price, err := strconv.ParseFloat(t.Get(i, "price_per_unit"), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "linha %d: price_per_unit inválido", i+1)
		}
		total, err := strconv.ParseFloat(t.Get(i, "total_price"), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "linha %d: total_price inválido", i+1)
		}

		records = append(records, domain.SaleRecord{
			OrderID:      t.Get(i, "order_id"),
			Date:         date,
			CustomerName: t.Get(i, "customer_name"),
			Product:      t.Get(i, "product"),
			Quantity:     int(quantity),
			PricePerUnit: price,
			TotalPrice:   total,
		})
	}

	return records, nil
}
