package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/okian/dreamxi/internal/domain/model"
)

// ParseCSV parses a roster exported as CSV.
func ParseCSV(r io.Reader) (*model.Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: CSV file is empty", model.ErrDataShape)
	}
	return ParseTable(records[0], records[1:])
}
