package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

// numberPrefix matches the leading numeric part of a cell, so "12.5%" reads as 12.5.
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseReferenceTable parses a comma-separated reference table.
//
// The first row is the header. "A + B" columns are canonicalised to pair keys.
// Metadata columns keep their text (ages become integers); every other cell is
// a percentage divided by 100. Cells that do not parse as numbers become 0 and
// are counted in ZeroedCells. Only a missing header is an error.
func ParseReferenceTable(content []byte) (*domain.ReferenceTable, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimSpace(content)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.NewCalcError(domain.CodeDataFormat, domain.ErrDataFormat,
			"reference data has no header row")
	}
	if err != nil {
		return nil, domain.NewCalcError(domain.CodeDataFormat, domain.ErrDataFormat,
			"reading reference header: %v", err)
	}

	columns := make([]string, len(header))
	blank := true
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if key, ok := domain.ParsePairKey(name); ok {
			name = string(key)
		}
		columns[i] = name
		if name != "" {
			blank = false
		}
	}
	if blank {
		return nil, domain.NewCalcError(domain.CodeDataFormat, domain.ErrDataFormat,
			"reference data header row is empty")
	}

	table := &domain.ReferenceTable{Columns: columns}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewCalcError(domain.CodeDataFormat, domain.ErrDataFormat,
				"reading reference row %d: %v", len(table.Rows)+2, err)
		}
		row, zeroed := parseReferenceRow(columns, record)
		table.Rows = append(table.Rows, row)
		table.ZeroedCells += zeroed
	}

	return table, nil
}

func parseReferenceRow(columns, record []string) (domain.ReferenceRow, int) {
	row := domain.ReferenceRow{
		Values: make(map[string]float64, len(columns)),
	}
	zeroed := 0

	for i, column := range columns {
		value := ""
		if i < len(record) {
			value = strings.TrimSpace(record[i])
		}

		switch column {
		case domain.ColumnAudienceName:
			row.AudienceName = value
		case domain.ColumnGender:
			row.Gender = domain.Gender(value)
		case domain.ColumnIncomeGroup:
			row.IncomeGroup = domain.IncomeGroup(value)
		case domain.ColumnAgeMin:
			n, ok := parseNumber(value)
			if !ok {
				zeroed++
			}
			row.AgeMin = int(n)
		case domain.ColumnAgeMax:
			n, ok := parseNumber(value)
			if !ok {
				zeroed++
			}
			row.AgeMax = int(n)
		case "":
			continue
		default:
			n, ok := parseNumber(value)
			if !ok {
				zeroed++
			}
			row.Values[column] = n / 100
		}
	}

	return row, zeroed
}

// parseNumber reads a decimal with either '.' or ',' as separator.
// Unparseable input yields 0 and false.
func parseNumber(value string) (float64, bool) {
	value = strings.Replace(value, ",", ".", 1)
	match := numberPrefix.FindString(value)
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatReferenceTable writes a table back to the comma-separated format
// read by ParseReferenceTable. Fractions are written as percentages.
func FormatReferenceTable(w io.Writer, table *domain.ReferenceTable) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range table.Rows {
		row := &table.Rows[i]
		record := make([]string, len(table.Columns))
		for j, column := range table.Columns {
			switch column {
			case domain.ColumnAudienceName:
				record[j] = row.AudienceName
			case domain.ColumnGender:
				record[j] = string(row.Gender)
			case domain.ColumnIncomeGroup:
				record[j] = string(row.IncomeGroup)
			case domain.ColumnAgeMin:
				record[j] = strconv.Itoa(row.AgeMin)
			case domain.ColumnAgeMax:
				record[j] = strconv.Itoa(row.AgeMax)
			case "":
			default:
				record[j] = strconv.FormatFloat(row.Values[column]*100, 'f', -1, 64)
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
