package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ToJSON serializa um valor para log; em caso de erro devolve vazio,
// nunca interrompe o chamador.
func ToJSON(in any) string {
	out, err := json.Marshal(in)
	if err != nil {
		return "{}"
	}
	return string(out)
}
