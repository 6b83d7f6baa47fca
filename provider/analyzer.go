package provider

import (
	"github.com/pivolan/telemetry_insights/domain/models"
)

// maxAnalyzeRows bounds the sample inspected per column; small datasets are
// analyzed in full.
const maxAnalyzeRows = 10000

// maxSampleValues caps the representative values kept per column.
const maxSampleValues = 5

// numericShareThreshold: a column is numeric (or date) when at least this
// share of its non-null values matches.
const numericShareThreshold = 0.8

// AnalyzeColumn inspects a sample of rows for one column and classifies it
// by value shape. Pure: same rows and name always give the same stats. A
// column absent from every row comes back categorical with zero uniques.
func AnalyzeColumn(rows []models.Row, name string) models.ColumnStats {
	stats := models.ColumnStats{Name: name, Type: models.TypeCategorical}

	limit := len(rows)
	if limit > maxAnalyzeRows {
		limit = maxAnalyzeRows
	}

	values := make([]models.Value, 0, limit)
	uniq := map[string]bool{}
	for _, row := range rows[:limit] {
		v, ok := row[name]
		if !ok || v.IsNull() {
			continue
		}
		values = append(values, v)
		if !uniq[v.Key()] {
			uniq[v.Key()] = true
			if len(stats.Samples) < maxSampleValues {
				stats.Samples = append(stats.Samples, v.Display())
			}
		}
	}
	stats.UniqueValues = len(uniq)
	if len(values) == 0 {
		return stats
	}

	numericCount := 0
	dateCount := 0
	var sum, min, max float64
	for _, v := range values {
		if f, ok := v.AsNumber(); ok {
			if numericCount == 0 {
				min, max = f, f
			}
			if f < min {
				min = f
			}
			if f > max {
				max = f
			}
			sum += f
			numericCount++
			continue
		}
		if _, ok := v.AsTime(); ok {
			dateCount++
		}
	}

	threshold := numericShareThreshold * float64(len(values))
	switch {
	case float64(numericCount) >= threshold:
		stats.Type = models.TypeNumeric
		stats.Min = min
		stats.Max = max
		stats.Avg = sum / float64(numericCount)
	case float64(dateCount) >= threshold:
		stats.Type = models.TypeDate
	default:
		stats.Type = models.TypeCategorical
	}
	return stats
}
