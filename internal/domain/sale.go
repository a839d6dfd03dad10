package domain

import "time"

// RequiredColumns são as colunas obrigatórias de um registro de venda,
// na ordem canônica do CSV.
var RequiredColumns = []string{
	"order_id",
	"date",
	"customer_name",
	"product",
	"quantity",
	"price_per_unit",
	"total_price",
}

// PriceTolerance é a diferença máxima aceita entre total_price e
// quantity * price_per_unit.
const PriceTolerance = 0.01

// SaleRecord representa uma linha de venda já limpa e tipada, pronta
// para ser persistida no banco.
type SaleRecord struct {
	OrderID      string    `json:"order_id"`
	Date         time.Time `json:"date"`
	CustomerName string    `json:"customer_name"`
	Product      string    `json:"product"`
	Quantity     int       `json:"quantity"`
	PricePerUnit float64   `json:"price_per_unit"`
	TotalPrice   float64   `json:"total_price"`
}
