package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fomezero/models"
)

// RawTable is the source file as read: canonical column names plus rows.
type RawTable struct {
	Labels  []string // header as found in the file
	Columns []string // canonical names, same order as Labels
	Records []models.RawRecord
}

// ReadRawFile reads the whole dataset file into memory.
func ReadRawFile(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return ReadRaw(f)
}

// ReadRaw parses delimited text with a header row. The header is normalized
// and checked for the required columns; rows with a different field count
// than the header are rejected.
func ReadRaw(r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &SchemaError{Reason: "dataset is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns, err := NormalizeColumns(header)
	if err != nil {
		return nil, err
	}
	if err := CheckRequired(columns); err != nil {
		return nil, err
	}

	table := &RawTable{Labels: header, Columns: columns}
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line+1, err)
		}
		line, _ = reader.FieldPos(0)
		if len(row) != len(columns) {
			return nil, &SchemaError{Line: line, Reason: fmt.Sprintf("expected %d fields, got %d", len(columns), len(row))}
		}

		values := make(map[string]string, len(columns))
		for i, c := range columns {
			values[c] = row[i]
		}
		table.Records = append(table.Records, models.RawRecord{Line: line, Values: values})
	}
	return table, nil
}
