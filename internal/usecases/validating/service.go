// Package validating verifica a integridade estrutural e semântica de um
// dataset de vendas. A validação é uma função pura: nunca altera a tabela,
// apenas acumula os problemas encontrados.
package validating

import (
	"fmt"
	"math"
	"strings"

	"github.com/vfg2006/sales-pipeline/internal/dataset"
	"github.com/vfg2006/sales-pipeline/internal/domain"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Validate executa as checagens na ordem fixa: colunas obrigatórias, tabela
// vazia (retorno imediato), order_ids duplicados, quantity <= 0, preços
// negativos e consistência de total_price dentro da tolerância. Cada checagem
// contribui com no máximo um problema, com a contagem de linhas afetadas.
func (s *Service) Validate(t *dataset.Table) domain.ValidationReport {
	issues := []string{}

	missing := []string{}
	for _, col := range domain.RequiredColumns {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		issues = append(issues, fmt.Sprintf("Missing required columns: [%s]", strings.Join(missing, ", ")))
	}

	if t.Len() == 0 {
		issues = append(issues, "DataFrame is empty")
		return domain.ValidationReport{Valid: false, Issues: issues}
	}

	if t.HasColumn("order_id") {
		occurrences := make(map[string]int, t.Len())
		for i := 0; i < t.Len(); i++ {
			occurrences[t.Get(i, "order_id")]++
		}

		// Todas as linhas envolvidas contam, não só as excedentes
		duplicates := 0
		for _, n := range occurrences {
			if n > 1 {
				duplicates += n
			}
		}
		if duplicates > 0 {
			issues = append(issues, fmt.Sprintf("Found %d duplicate order_ids", duplicates))
		}
	}

	if t.HasColumn("quantity") {
		invalid := 0
		for i := 0; i < t.Len(); i++ {
			if q, ok := dataset.ParseFloat(t.Get(i, "quantity")); ok && q <= 0 {
				invalid++
			}
		}
		if invalid > 0 {
			issues = append(issues, fmt.Sprintf("Found %d rows with quantity <= 0", invalid))
		}
	}

	if t.HasColumn("price_per_unit") {
		invalid := 0
		for i := 0; i < t.Len(); i++ {
			if p, ok := dataset.ParseFloat(t.Get(i, "price_per_unit")); ok && p < 0 {
				invalid++
			}
		}
		if invalid > 0 {
			issues = append(issues, fmt.Sprintf("Found %d rows with negative price_per_unit", invalid))
		}
	}

	if t.HasColumn("total_price") {
		invalid := 0
		for i := 0; i < t.Len(); i++ {
			if tp, ok := dataset.ParseFloat(t.Get(i, "total_price")); ok && tp < 0 {
				invalid++
			}
		}
		if invalid > 0 {
			issues = append(issues, fmt.Sprintf("Found %d rows with negative total_price", invalid))
		}
	}

	if t.HasColumn("quantity") && t.HasColumn("price_per_unit") && t.HasColumn("total_price") {
		mismatches := 0
		for i := 0; i < t.Len(); i++ {
			q, okQ := dataset.ParseFloat(t.Get(i, "quantity"))
			p, okP := dataset.ParseFloat(t.Get(i, "price_per_unit"))
			tp, okT := dataset.ParseFloat(t.Get(i, "total_price"))
			if !okQ || !okP || !okT {
				continue
			}
			if math.Abs(tp-q*p) > domain.PriceTolerance {
				mismatches++
			}
		}
		if mismatches > 0 {
			issues = append(issues, fmt.Sprintf("Found %d rows where total_price doesn't match quantity * price_per_unit", mismatches))
		}
	}

	return domain.ValidationReport{Valid: len(issues) == 0, Issues: issues}
}
