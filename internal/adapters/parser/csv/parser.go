package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/angelalonso/gtr2/internal/domain"
)

// Load reads an edited result table back into rows. The header row defines
// the column order; a Driver column is required, rows without one are skipped.
func Load(data []byte) ([]string, []domain.Row, error) {
	data = stripBOM(data)
	r := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, nil, err
	}
	columns := make([]string, len(header))
	driverIdx := -1
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
		if strings.EqualFold(columns[i], domain.ColDriver) {
			driverIdx = i
		}
	}
	if driverIdx == -1 {
		return nil, nil, errors.New("csv missing 'Driver' column")
	}
	var rows []domain.Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if rec[driverIdx] == "" {
			continue
		}
		row := domain.Row{}
		for i, col := range columns {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
