package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"route-optimizer-service/internal/domain"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported table format")

// LoadFile reads a stop table from a .csv or .xlsx file.
func LoadFile(path string) (domain.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return domain.Table{}, fmt.Errorf("load table: open %q: %w", path, err)
		}
		defer f.Close()
		return LoadCSV(f)
	case ".xlsx", ".xlsm":
		return LoadXLSX(path)
	default:
		return domain.Table{}, fmt.Errorf("load table %q: %w", path, ErrUnsupportedFormat)
	}
}

// LoadCSV reads a header row followed by data rows. Rows may be ragged.
func LoadCSV(r io.Reader) (domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("load csv: %w", err)
	}
	return tableFromRecords(records)
}

// LoadXLSX reads the first sheet of a workbook.
func LoadXLSX(path string) (domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("load xlsx: open %q: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return domain.Table{}, fmt.Errorf("load xlsx %q: no sheets found", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.Table{}, fmt.Errorf("load xlsx %q: reading rows: %w", path, err)
	}
	return tableFromRecords(rows)
}

func tableFromRecords(records [][]string) (domain.Table, error) {
	if len(records) == 0 {
		return domain.Table{}, fmt.Errorf("load table: missing header row: %w", domain.ErrInputShape)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		// Excel-exported CSVs often carry a UTF-8 BOM on the first cell.
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	return domain.Table{Columns: header, Rows: records[1:]}, nil
}
