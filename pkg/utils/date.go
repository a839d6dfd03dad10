package utils

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Layouts aceitos na conversão de datas, do mais comum para o mais raro.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// ParseDate tenta converter uma data em texto usando os layouts conhecidos.
func ParseDate(dateStr string) (time.Time, error) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, errors.New("data vazia")
	}

	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, s); err == nil {
			return date, nil
		}
	}

	return time.Time{}, errors.Errorf("data inválida: %q", dateStr)
}
