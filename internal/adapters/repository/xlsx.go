package repository

import (
	"fmt"
	"io"

	"github.com/okian/dreamxi/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// ParseXLSX parses the first sheet of a roster workbook.
func ParseXLSX(r io.Reader) (*model.Roster, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: XLSX file has no sheets", model.ErrDataShape)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", model.ErrDataShape, sheets[0])
	}
	return ParseTable(rows[0], rows[1:])
}
