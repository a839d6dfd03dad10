package utils

import (
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatMoney formata um valor com exatamente duas casas decimais,
// a forma canônica dos preços no CSV.
func FormatMoney(f float64) string {
	return strconv.FormatFloat(RoundWithTwoDecimalPlace(f), 'f', 2, 64)
}
