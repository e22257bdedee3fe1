package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"scorecard.bizops.dev/internal/kpi"
)

// ReadCSV parses a flat KPI export. The first record is the header.
func ReadCSV(r io.Reader, opts Options) ([]kpi.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return parseRecords(records, opts)
}

// WriteCSV writes rows with the canonical header.
func WriteCSV(w io.Writer, rows []kpi.Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write(record(r)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
