package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/w-h-a/premind/retriever"
)

// ReadFile loads policyholder records from a CSV file. The first row names
// the record fields; values missing from a row read back as empty strings.
func ReadFile(path string) ([]retriever.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readRecords(f)
}

func readRecords(r io.Reader) ([]retriever.Record, error) {
	reader := stdcsv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv source has no header row")
	}

	header := make([]string, len(rows[0]))
	for i, field := range rows[0] {
		header[i] = strings.TrimSpace(field)
	}

	records := make([]retriever.Record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		rec := make(retriever.Record, len(header))
		for i, field := range header {
			if i < len(row) {
				rec[field] = strings.TrimSpace(row[i])
			} else {
				rec[field] = ""
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
