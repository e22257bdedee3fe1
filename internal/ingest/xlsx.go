package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"scorecard.bizops.dev/internal/kpi"
)

const exportSheet = "KPI"

// ReadXLSX parses the first (or opts.Sheet) worksheet of a workbook.
func ReadXLSX(r io.Reader, opts Options) (_ []kpi.Row, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrMissingColumn)
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return parseRecords(records, opts)
}

// WriteXLSX writes rows to a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []kpi.Row) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	hdr := header()
	for i, h := range hdr {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return err
		}
	}

	for i, r := range rows {
		rowNum := i + 2
		values := []interface{}{r.BusinessUnit, r.Month.String(), string(r.Perspective), r.KPI, r.Subdivision, r.Value}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return err
			}
		}
	}

	_, err = f.WriteTo(w)
	return err
}
