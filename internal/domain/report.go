package domain

import "time"

// ValidationReport é o resultado da validação de um dataset.
// Valid é verdadeiro se e somente se Issues estiver vazio.
type ValidationReport struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// CleaningStats resume o que a limpeza fez com o dataset.
type CleaningStats struct {
	InitialRows         int `json:"initial_rows"`
	DuplicatesRemoved   int `json:"duplicates_removed"`
	MissingFilled       int `json:"missing_filled"`
	InvalidDatesDropped int `json:"invalid_dates_dropped"`
	FinalRows           int `json:"final_rows"`
}

// BatchResult é o resultado tipado de um lote de upsert: ou Rows linhas
// gravadas, ou Err com o motivo da falha.
type BatchResult struct {
	Index int   `json:"index"`
	Rows  int   `json:"rows"`
	Err   error `json:"-"`
}

func (b BatchResult) Ok() bool {
	return b.Err == nil
}

// LoadReport resume uma carga no banco: linhas tentadas, linhas efetivamente
// gravadas e o total presente na tabela ao final.
type LoadReport struct {
	Attempted    int           `json:"attempted"`
	Inserted     int           `json:"inserted"`
	Batches      []BatchResult `json:"batches"`
	TotalInStore int64         `json:"total_in_store"`
}

// LabeledValue é um par rótulo/valor usado nos rankings e nos gráficos.
type LabeledValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DailySales é o total vendido em um dia.
type DailySales struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// AnalysisReport agrega as métricas calculadas sobre os dados persistidos.
type AnalysisReport struct {
	TotalSales        float64        `json:"total_sales"`
	AverageOrderValue float64        `json:"average_order_value"`
	TotalOrders       int            `json:"total_orders"`
	UniqueProducts    int            `json:"unique_products"`
	UniqueCustomers   int            `json:"unique_customers"`
	DateStart         time.Time      `json:"date_start"`
	DateEnd           time.Time      `json:"date_end"`
	TopProducts       []LabeledValue `json:"top_products"`
	TopCustomers      []LabeledValue `json:"top_customers"`
	MonthlySales      []LabeledValue `json:"monthly_sales"`
	DailySales        []DailySales   `json:"daily_sales"`
	QuantityByProduct []LabeledValue `json:"quantity_by_product"`
}
