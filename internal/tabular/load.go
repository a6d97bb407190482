package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"CashflowSuite/api/constants"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ReadTable parses spreadsheet content into a Table. Supported formats:
// csv, xlsx (excelize) and legacy xls. Only the first sheet is read.
func ReadTable(r io.ReadSeeker, ext string) (*Table, error) {
	switch strings.ToLower(ext) {
	case ".csv":
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		records, err := cr.ReadAll()
		if err != nil {
			return nil, err
		}
		return New(records), nil
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, err
		}
		return New(rows), nil
	case ".xls":
		wb, err := xls.OpenReader(r, "utf-8")
		if err != nil {
			return nil, err
		}
		return New(wb.ReadAllCells(65536)), nil
	}
	return nil, errors.New(constants.ErrUnsupportedFileType)
}

// ReadFile parses a spreadsheet file on disk into a Table.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTable(f, filepath.Ext(path))
}
