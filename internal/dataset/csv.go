package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ReadCSV carrega um arquivo CSV com linha de cabeçalho em uma Table.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return New(nil), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler cabeçalho de %s", path)
	}

	table := New(header)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao ler linha de %s", path)
		}
		table.Append(record)
	}

	return table, nil
}

// WriteCSV grava a tabela em disco. A escrita passa por um arquivo
// temporário renomeado ao final, para nunca deixar saída parcial.
func WriteCSV(table *Table, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*.csv")
	if err != nil {
		return errors.Wrap(err, "erro ao criar arquivo temporário")
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(table.Header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "erro ao escrever cabeçalho")
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return errors.Wrap(err, "erro ao escrever linha")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "erro ao escrever CSV")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "erro ao fechar arquivo temporário")
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "erro ao gravar %s", path)
	}

	return nil
}
