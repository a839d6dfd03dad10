// Package chart renderiza os gráficos PNG do relatório de análise.
package chart

import (
	"image/color"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var barColor = color.RGBA{R: 68, G: 114, B: 196, A: 255}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// LineByDate desenha a série temporal de vendas diárias.
func (r *Renderer) LineByDate(path, title string, points []domain.DailySales) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Total Sales ($)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	for i, point := range points {
		xys[i].X = float64(point.Date.Unix())
		xys[i].Y = point.Total
	}

	line, scatter, err := plotter.NewLinePoints(xys)
	if err != nil {
		return errors.Wrap(err, "erro ao montar série de linha")
	}
	line.Color = barColor
	line.Width = vg.Points(2)
	scatter.Color = barColor
	p.Add(line, scatter)

	return errors.Wrapf(p.Save(12*vg.Inch, 6*vg.Inch, path), "erro ao salvar %s", path)
}

// BarsHorizontal desenha barras horizontais, maior valor no topo.
func (r *Renderer) BarsHorizontal(path, title, valueLabel string, items []domain.LabeledValue) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = valueLabel

	// Invertido: o plot desenha a primeira barra embaixo
	values := make(plotter.Values, len(items))
	labels := make([]string, len(items))
	for i, item := range items {
		j := len(items) - 1 - i
		values[j] = item.Value
		labels[j] = item.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "erro ao montar gráfico de barras")
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(labels...)

	return errors.Wrapf(p.Save(10*vg.Inch, 6*vg.Inch, path), "erro ao salvar %s", path)
}

// BarsVertical desenha barras verticais na ordem recebida.
func (r *Renderer) BarsVertical(path, title, valueLabel string, items []domain.LabeledValue) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = valueLabel

	values := make(plotter.Values, len(items))
	labels := make([]string, len(items))
	for i, item := range items {
		values[i] = item.Value
		labels[i] = item.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return errors.Wrap(err, "erro ao montar gráfico de barras")
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(labels...)

	return errors.Wrapf(p.Save(12*vg.Inch, 6*vg.Inch, path), "erro ao salvar %s", path)
}
