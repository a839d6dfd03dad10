// Package analyzing lê os dados persistidos, calcula as métricas agregadas
// e produz os artefatos do relatório: quatro gráficos PNG e um CSV de resumo.
// A análise nunca altera os dados de origem.
package analyzing

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-pipeline/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/pkg/log"
	"github.com/vfg2006/sales-pipeline/pkg/utils"
)

// Renderer desenha os gráficos do relatório. A implementação concreta fica
// em infrastructure/chart.
type Renderer interface {
	LineByDate(path, title string, points []domain.DailySales) error
	BarsHorizontal(path, title, valueLabel string, items []domain.LabeledValue) error
	BarsVertical(path, title, valueLabel string, items []domain.LabeledValue) error
}

type Service struct {
	repo     repository.SaleRepository
	renderer Renderer
}

func NewService(repo repository.SaleRepository, renderer Renderer) *Service {
	return &Service{
		repo:     repo,
		renderer: renderer,
	}
}

// Run calcula as métricas e grava gráficos e resumo em outputDir.
// Banco vazio é reportado como erro, sem artefatos.
func (s *Service) Run(ctx context.Context, outputDir string) (*domain.AnalysisReport, error) {
	logger := log.ForContext(ctx)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "erro ao criar diretório %s", outputDir)
	}

	logger.Info("Buscando dados de vendas no banco...")
	records, err := s.repo.ListOrderedByDate(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar vendas")
	}
	if len(records) == 0 {
		return nil, domain.ErrEmptyStore
	}
	logger.Infof("Carregadas %d linhas do banco", len(records))

	report := s.Analyze(records)
	s.logReport(logger, report)

	logger.Info("Gerando visualizações...")
	charts := []struct {
		file   string
		render func(path string) error
	}{
		{"daily_sales_trend.png", func(path string) error {
			return s.renderer.LineByDate(path, "Daily Sales Trend", report.DailySales)
		}},
		{"top_products.png", func(path string) error {
			return s.renderer.BarsHorizontal(path, "Top 5 Best-Selling Products", "Total Sales ($)", report.TopProducts)
		}},
		{"monthly_sales_trend.png", func(path string) error {
			return s.renderer.BarsVertical(path, "Monthly Sales Trend", "Total Sales ($)", report.MonthlySales)
		}},
		{"product_quantity.png", func(path string) error {
			return s.renderer.BarsHorizontal(path, "Total Quantity Sold by Product", "Total Quantity", report.QuantityByProduct)
		}},
	}
	for _, chart := range charts {
		path := filepath.Join(outputDir, chart.file)
		if err := chart.render(path); err != nil {
			return nil, errors.Wrapf(err, "erro ao gerar %s", chart.file)
		}
		logger.Infof("Salvo: %s", path)
	}

	summaryPath := filepath.Join(outputDir, "sales_summary.csv")
	if err := writeSummary(summaryPath, report); err != nil {
		return nil, err
	}
	logger.Infof("Salvo: %s", summaryPath)

	logger.Infof("Análise concluída, artefatos salvos em '%s'", outputDir)
	return report, nil
}

// Analyze agrega os registros já ordenados por data. Os rankings usam a
// ordem de primeira aparição como desempate.
func (s *Service) Analyze(records []domain.SaleRecord) *domain.AnalysisReport {
	report := &domain.AnalysisReport{
		TotalOrders: len(records),
		DateStart:   records[0].Date,
		DateEnd:     records[len(records)-1].Date,
	}

	productTotals := newAccumulator()
	customerTotals := newAccumulator()
	productQuantities := newAccumulator()
	monthlyTotals := newAccumulator()
	dailyTotals := newAccumulator()

	for _, record := range records {
		report.TotalSales += record.TotalPrice

		productTotals.Add(record.Product, record.TotalPrice)
		customerTotals.Add(record.CustomerName, record.TotalPrice)
		productQuantities.Add(record.Product, float64(record.Quantity))
		monthlyTotals.Add(record.Date.Format("2006-01"), record.TotalPrice)
		dailyTotals.Add(record.Date.Format(time.DateOnly), record.TotalPrice)
	}

	report.AverageOrderValue = report.TotalSales / float64(len(records))
	report.UniqueProducts = productTotals.Len()
	report.UniqueCustomers = customerTotals.Len()

	report.TopProducts = productTotals.TopN(5)
	report.TopCustomers = customerTotals.TopN(5)
	report.QuantityByProduct = productQuantities.SortedDesc()
	report.MonthlySales = monthlyTotals.Ordered()

	for _, day := range dailyTotals.Ordered() {
		date, _ := time.Parse(time.DateOnly, day.Label)
		report.DailySales = append(report.DailySales, domain.DailySales{Date: date, Total: day.Value})
	}

	return report
}

func (s *Service) logReport(logger log.Logger, report *domain.AnalysisReport) {
	logger.Infof("Total de vendas: $%.2f", report.TotalSales)
	logger.Infof("Ticket médio: $%.2f", report.AverageOrderValue)
	logger.Infof("Total de pedidos: %d", report.TotalOrders)

	logger.Info("Top 5 produtos por venda:")
	for _, item := range report.TopProducts {
		logger.Infof("   %s: $%.2f", item.Label, item.Value)
	}

	logger.Info("Top 5 clientes por gasto total:")
	for _, item := range report.TopCustomers {
		logger.Infof("   %s: $%.2f", item.Label, item.Value)
	}

	logger.Info("Vendas por mês:")
	for _, item := range report.MonthlySales {
		logger.Infof("   %s: $%.2f", item.Label, item.Value)
	}
}

func writeSummary(path string, report *domain.AnalysisReport) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "erro ao criar %s", path)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	rows := [][]string{
		{"Metric", "Value"},
		{"Total Sales", utils.FormatMoney(report.TotalSales)},
		{"Average Order Value", utils.FormatMoney(report.AverageOrderValue)},
		{"Total Orders", fmt.Sprintf("%d", report.TotalOrders)},
		{"Unique Products", fmt.Sprintf("%d", report.UniqueProducts)},
		{"Unique Customers", fmt.Sprintf("%d", report.UniqueCustomers)},
		{"Date Range Start", report.DateStart.Format(time.DateOnly)},
		{"Date Range End", report.DateEnd.Format(time.DateOnly)},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "erro ao escrever resumo")
		}
	}
	writer.Flush()

	return errors.Wrap(writer.Error(), "erro ao escrever resumo")
}

// accumulator soma valores por chave preservando a ordem de primeira
// aparição, que serve de desempate nos rankings.
type accumulator struct {
	keys   []string
	totals map[string]float64
}

func newAccumulator() *accumulator {
	return &accumulator{totals: make(map[string]float64)}
}

func (a *accumulator) Add(key string, value float64) {
	if _, ok := a.totals[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.totals[key] += value
}

func (a *accumulator) Len() int {
	return len(a.keys)
}

// Ordered devolve os pares na ordem de primeira aparição.
func (a *accumulator) Ordered() []domain.LabeledValue {
	items := make([]domain.LabeledValue, 0, len(a.keys))
	for _, key := range a.keys {
		items = append(items, domain.LabeledValue{Label: key, Value: a.totals[key]})
	}
	return items
}

// SortedDesc devolve os pares por valor decrescente; empates mantêm a
// ordem de primeira aparição (sort estável).
func (a *accumulator) SortedDesc() []domain.LabeledValue {
	items := a.Ordered()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})
	return items
}

func (a *accumulator) TopN(n int) []domain.LabeledValue {
	items := a.SortedDesc()
	if len(items) > n {
		items = items[:n]
	}
	return items
}
