package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/telemetry_insights/domain/models"
)

// Dataset is a parsed tabular file ready for analysis.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []models.Row
}

type HeaderAnalysis struct {
	Headers        []string
	FirstRowIsData bool
	FirstDataRow   []string
}

// LoadCSVFile reads a CSV file from disk into a Dataset.
func LoadCSVFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	name := strings.TrimSuffix(strings.ToLower(filepath.Base(path)), ".csv")
	return LoadCSV(file, name)
}

// LoadCSV parses CSV data into typed rows. The first line is used as a
// header when most of its fields look like column names, otherwise
// column_N names are generated and the line is kept as data.
func LoadCSV(r io.Reader, name string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	// Ragged rows happen in the wild, missing cells become nulls.
	reader.FieldsPerRecord = -1

	first, err := reader.Read()
	if err == io.EOF {
		return &Dataset{Name: name}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	analysis := AnalyzeHeaders(first)
	ds := &Dataset{Name: name, Columns: analysis.Headers}

	if analysis.FirstRowIsData {
		ds.Rows = append(ds.Rows, recordToRow(analysis.Headers, analysis.FirstDataRow))
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(ds.Rows)+1, err)
		}
		ds.Rows = append(ds.Rows, recordToRow(analysis.Headers, record))
	}
	return ds, nil
}

// AnalyzeHeaders decides whether the first CSV line is a header and
// produces clean unique column names either way.
func AnalyzeHeaders(firstRow []string) *HeaderAnalysis {
	result := &HeaderAnalysis{
		Headers:      make([]string, len(firstRow)),
		FirstDataRow: firstRow,
	}
	if len(firstRow) == 0 {
		return result
	}

	headerLikeCount := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLikeCount++
		}
	}

	if float64(headerLikeCount)/float64(len(firstRow)) >= 0.5 {
		for i, header := range firstRow {
			result.Headers[i] = cleanHeaderName(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}

	result.Headers = ValidateHeaders(result.Headers)
	return result
}

func recordToRow(headers []string, record []string) models.Row {
	row := make(models.Row, len(headers))
	for i, name := range headers {
		if i < len(record) {
			row[name] = parseValue(record[i])
		} else {
			row[name] = models.Null()
		}
	}
	return row
}

// parseValue keeps the raw text for anything that is not clearly a
// number or a boolean; date detection happens later during analysis.
func parseValue(s string) models.Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Null()
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return models.Number(n)
	}
	switch strings.ToLower(s) {
	case "true":
		return models.Boolean(true)
	case "false":
		return models.Boolean(false)
	}
	return models.Text(s)
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}(\.\d+)?$`),
}

// isLikelyHeader reports whether a field reads as a column name rather
// than a data value.
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	for _, pattern := range datePatterns {
		if pattern.MatchString(text) {
			return false
		}
	}

	letters := 0
	totalChars := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		totalChars++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if totalChars == 0 {
		return false
	}
	return letters > 0 && float64(letters)/float64(totalChars) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// cleanHeaderName transliterates and normalizes a header so it is safe
// to use both as a map key and as a warehouse column name.
func cleanHeaderName(header string, index int) string {
	header = strings.TrimSpace(header)
	if header == "" || !isLikelyHeader(header) {
		return generateColumnName(index)
	}

	cleaned := replaceSpecialSymbols(unidecode.Unidecode(header))
	if cleaned == "" {
		return generateColumnName(index)
	}
	return strings.ToLower(cleaned)
}

// ValidateHeaders appends numeric suffixes to duplicate names.
func ValidateHeaders(headers []string) []string {
	seen := map[string]bool{}
	result := make([]string, len(headers))
	for i, header := range headers {
		name := header
		for counter := 1; seen[name]; counter++ {
			name = fmt.Sprintf("%s_%d", header, counter)
		}
		seen[name] = true
		result[i] = name
	}
	return result
}
