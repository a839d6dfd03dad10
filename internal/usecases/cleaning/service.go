// Package cleaning transforma um dataset bruto de vendas em um dataset que
// satisfaz as invariantes do pipeline: sem duplicatas exatas, sem valores
// ausentes nas colunas conhecidas, sem datas inválidas e com preços em duas
// casas decimais. A limpeza nunca bloqueia pela própria validação: problemas
// remanescentes são apenas registrados como aviso.
package cleaning

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-pipeline/internal/dataset"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/usecases/validating"
	"github.com/vfg2006/sales-pipeline/pkg/log"
	"github.com/vfg2006/sales-pipeline/pkg/utils"
)

// Colunas preenchidas com valor fixo quando ausentes. quantity recebe 1
// apenas quando ausente: quantidade presente porém inválida sobrevive à
// limpeza e só é apontada pela validação.
var fillDefaults = map[string]string{
	"customer_name": "Unknown",
	"product":       "Unknown",
	"quantity":      "1",
}

type Service struct {
	validator *validating.Service
}

func NewService(validator *validating.Service) *Service {
	return &Service{
		validator: validator,
	}
}

// Run limpa o arquivo de entrada e grava o resultado no arquivo de saída.
// Entrada inexistente é fatal e nenhuma saída é produzida.
func (s *Service) Run(ctx context.Context, inputFile, outputFile string) (domain.CleaningStats, error) {
	logger := log.ForContext(ctx)

	logger.Infof("Carregando dados de %s...", inputFile)
	table, err := dataset.ReadCSV(inputFile)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return domain.CleaningStats{}, errors.Wrapf(domain.ErrInputNotFound, "%s", inputFile)
		}
		return domain.CleaningStats{}, errors.Wrapf(err, "erro ao carregar %s", inputFile)
	}
	logger.Infof("Carregadas %d linhas de %s", table.Len(), inputFile)

	cleaned, stats := s.Clean(ctx, table)

	logger.Infof("Salvando dados limpos em %s...", outputFile)
	if err := dataset.WriteCSV(cleaned, outputFile); err != nil {
		return stats, errors.Wrapf(err, "erro ao salvar %s", outputFile)
	}

	logger.Infof("Limpeza concluída: %s", utils.ToJSON(stats))
	return stats, nil
}

// Clean aplica as etapas de limpeza na ordem fixa: deduplicação, imputação
// de ausentes, recálculo de total_price ausente, normalização de datas,
// descarte de datas inválidas, arredondamento e validação final.
func (s *Service) Clean(ctx context.Context, t *dataset.Table) (*dataset.Table, domain.CleaningStats) {
	logger := log.ForContext(ctx)

	stats := domain.CleaningStats{InitialRows: t.Len()}

	out := dataset.New(t.Header)
	seen := make(map[string]struct{}, t.Len())
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			stats.DuplicatesRemoved++
			continue
		}
		seen[key] = struct{}{}
		out.Append(row)
	}
	if stats.DuplicatesRemoved > 0 {
		logger.Infof("Removidas %d linhas duplicadas", stats.DuplicatesRemoved)
	}

	stats.MissingFilled = s.fillMissing(out)
	if stats.MissingFilled > 0 {
		logger.Infof("Preenchidos %d valores ausentes", stats.MissingFilled)
	}

	s.normalizeDates(out, &stats, logger)

	s.roundDecimals(out)

	logger.Info("Validando dados limpos...")
	report := s.validator.Validate(out)
	if !report.Valid {
		logger.Warnf("Validação encontrou problemas: %v", report.Issues)
	} else {
		logger.Info("Validação dos dados passou")
	}

	stats.FinalRows = out.Len()
	return out, stats
}

// fillMissing imputa os valores ausentes. A média de price_per_unit é
// calculada antes de qualquer preenchimento; se todos os preços estiverem
// ausentes, usa 0. total_price não é imputado aqui: linhas sem total
// recebem quantity * price_per_unit já imputados, arredondado.
func (s *Service) fillMissing(t *dataset.Table) int {
	filled := 0

	meanPrice := 0.0
	if t.HasColumn("price_per_unit") {
		sum, n := 0.0, 0
		for i := 0; i < t.Len(); i++ {
			if p, ok := dataset.ParseFloat(t.Get(i, "price_per_unit")); ok {
				sum += p
				n++
			}
		}
		if n > 0 {
			meanPrice = sum / float64(n)
		}
	}

	for i := 0; i < t.Len(); i++ {
		for col, def := range fillDefaults {
			if t.HasColumn(col) && dataset.IsMissing(t.Get(i, col)) {
				t.Set(i, col, def)
				filled++
			}
		}
		if t.HasColumn("price_per_unit") && dataset.IsMissing(t.Get(i, "price_per_unit")) {
			t.Set(i, "price_per_unit", strconv.FormatFloat(meanPrice, 'f', -1, 64))
			filled++
		}
	}

	if t.HasColumn("total_price") {
		for i := 0; i < t.Len(); i++ {
			if !dataset.IsMissing(t.Get(i, "total_price")) {
				continue
			}
			q, okQ := dataset.ParseFloat(t.Get(i, "quantity"))
			p, okP := dataset.ParseFloat(t.Get(i, "price_per_unit"))
			if okQ && okP {
				t.Set(i, "total_price", utils.FormatMoney(q*p))
				filled++
			}
		}
	}

	return filled
}

// normalizeDates converte a coluna date para o formato canônico YYYY-MM-DD
// e descarta as linhas cuja data não pôde ser interpretada.
func (s *Service) normalizeDates(t *dataset.Table, stats *domain.CleaningStats, logger log.Logger) {
	if !t.HasColumn("date") {
		return
	}

	logger.Info("Convertendo coluna de datas...")

	kept := make([][]string, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		date, err := utils.ParseDate(t.Get(i, "date"))
		if err != nil {
			stats.InvalidDatesDropped++
			continue
		}
		t.Set(i, "date", date.Format(time.DateOnly))
		kept = append(kept, t.Rows[i])
	}
	t.Rows = kept

	if stats.InvalidDatesDropped > 0 {
		logger.Warnf("Descartadas %d linhas com datas inválidas", stats.InvalidDatesDropped)
	}
}

// roundDecimals fixa price_per_unit e total_price em duas casas decimais.
// Células não numéricas ficam como estão; a validação as reporta.
func (s *Service) roundDecimals(t *dataset.Table) {
	for _, col := range []string{"price_per_unit", "total_price"} {
		if !t.HasColumn(col) {
			continue
		}
		for i := 0; i < t.Len(); i++ {
			if v, ok := dataset.ParseFloat(t.Get(i, col)); ok {
				t.Set(i, col, utils.FormatMoney(v))
			}
		}
	}
}
