package csv

import (
	"bytes"
	"encoding/csv"

	"github.com/angelalonso/gtr2/internal/domain"
)

type Exporter struct {
	Comma rune
}

func New() *Exporter { return &Exporter{Comma: ','} }

func (e *Exporter) Format() string { return "csv" }

// Export writes one row per driver with the given column order. Cells for
// columns a row does not carry are left empty.
func (e *Exporter) Export(columns []string, rows []domain.Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if e.Comma != 0 {
		w.Comma = e.Comma
	}
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	cells := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			cells[i] = row[col]
		}
		if err := w.Write(cells); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
