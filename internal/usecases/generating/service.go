// Package generating produz dados sintéticos de vendas para desenvolvimento
// e testes do pipeline.
package generating

import (
	"context"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-pipeline/internal/dataset"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/pkg/log"
	"github.com/vfg2006/sales-pipeline/pkg/utils"
)

var products = []string{"Laptop", "Phone", "Tablet", "Headphones", "Smartwatch"}

type Service struct {
	faker *gofakeit.Faker
}

func NewService() *Service {
	return &Service{
		faker: gofakeit.New(0),
	}
}

// NewServiceWithSeed cria um gerador determinístico, usado nos testes.
func NewServiceWithSeed(seed uint64) *Service {
	return &Service{
		faker: gofakeit.New(seed),
	}
}

// Generate produz n registros sintéticos: order_id curto único, data no
// último ano, cliente e produto aleatórios, quantidade 1-5 e preço unitário
// entre 100 e 2000 com duas casas decimais.
func (s *Service) Generate(n int) (*dataset.Table, error) {
	table := dataset.New(domain.RequiredColumns)

	now := time.Now()
	yearAgo := now.AddDate(-1, 0, 0)

	for i := 0; i < n; i++ {
		orderID, err := utils.GenerateOrderID()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar order_id")
		}

		quantity := s.faker.Number(1, 5)
		price := utils.RoundWithTwoDecimalPlace(s.faker.Float64Range(100, 2000))
		total := utils.RoundWithTwoDecimalPlace(float64(quantity) * price)

		table.Append([]string{
			orderID,
			s.faker.DateRange(yearAgo, now).Format(time.DateOnly),
			s.faker.Name(),
			products[s.faker.Number(0, len(products)-1)],
			strconv.Itoa(quantity),
			utils.FormatMoney(price),
			utils.FormatMoney(total),
		})
	}

	return table, nil
}

// Run gera os registros e grava o CSV bruto.
func (s *Service) Run(ctx context.Context, n int, outputFile string) error {
	logger := log.ForContext(ctx)

	logger.Infof("Gerando %d registros de vendas...", n)
	table, err := s.Generate(n)
	if err != nil {
		return err
	}

	logger.Infof("Salvando dados em %s...", outputFile)
	if err := dataset.WriteCSV(table, outputFile); err != nil {
		return errors.Wrapf(err, "erro ao salvar %s", outputFile)
	}

	logger.Infof("Gerados %d registros em '%s'", table.Len(), outputFile)
	return nil
}
