package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/telemetry_insights/domain/models"
)

func TestAnalyzeHeadersDetectsHeaderRow(t *testing.T) {
	analysis := AnalyzeHeaders([]string{"user_id", "event", "revenue"})
	assert.False(t, analysis.FirstRowIsData)
	assert.Equal(t, []string{"user_id", "event", "revenue"}, analysis.Headers)
}

func TestAnalyzeHeadersGeneratesNamesForDataRow(t *testing.T) {
	analysis := AnalyzeHeaders([]string{"123", "2024-01-01", "45.5"})
	assert.True(t, analysis.FirstRowIsData)
	assert.Equal(t, []string{"column_1", "column_2", "column_3"}, analysis.Headers)
}

func TestAnalyzeHeadersMixedRow(t *testing.T) {
	// Half header-like is enough to treat the row as a header.
	analysis := AnalyzeHeaders([]string{"user_id", "42"})
	assert.False(t, analysis.FirstRowIsData)
	assert.Equal(t, "user_id", analysis.Headers[0])
	// The numeric field gets a generated name.
	assert.Equal(t, "column_2", analysis.Headers[1])
}

func TestCleanHeaderName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"User ID (new)", "user_id_new"},
		{"Revenue", "revenue"},
		{"", "column_1"},
		{"///", "column_1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, cleanHeaderName(tt.in, 0), "header %q", tt.in)
	}
}

func TestValidateHeadersDeduplicates(t *testing.T) {
	headers := ValidateHeaders([]string{"name", "name", "name"})
	assert.Equal(t, []string{"name", "name_1", "name_2"}, headers)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, models.Number(42), parseValue("42"))
	assert.Equal(t, models.Number(-3.5), parseValue("-3.5"))
	assert.Equal(t, models.Boolean(true), parseValue("TRUE"))
	assert.Equal(t, models.Text("hello"), parseValue("hello"))
	assert.Equal(t, models.Text("2024-01-01"), parseValue("2024-01-01"))
	assert.Equal(t, models.Null(), parseValue(""))
	assert.Equal(t, models.Null(), parseValue("   "))
}

func TestLoadCSV(t *testing.T) {
	data := `user_id,event,revenue,active
u1,login,0.0,true
u2,purchase,9.99,false
u1,purchase,,true
`
	ds, err := LoadCSV(strings.NewReader(data), "events")
	require.NoError(t, err)
	assert.Equal(t, "events", ds.Name)
	assert.Equal(t, []string{"user_id", "event", "revenue", "active"}, ds.Columns)
	require.Len(t, ds.Rows, 3)

	assert.Equal(t, models.Text("u1"), ds.Rows[0]["user_id"])
	assert.Equal(t, models.Number(9.99), ds.Rows[1]["revenue"])
	assert.Equal(t, models.Boolean(false), ds.Rows[1]["active"])
	assert.True(t, ds.Rows[2]["revenue"].IsNull())
}

func TestLoadCSVHeaderlessFile(t *testing.T) {
	data := "1,100.5\n2,200.5\n"
	ds, err := LoadCSV(strings.NewReader(data), "raw")
	require.NoError(t, err)
	assert.Equal(t, []string{"column_1", "column_2"}, ds.Columns)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, models.Number(100.5), ds.Rows[0]["column_2"])
}

func TestLoadCSVShortRecordPadsWithNulls(t *testing.T) {
	data := "a,b\n1,2\n3\n"
	ds, err := LoadCSV(strings.NewReader(data), "short")
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, models.Number(3), ds.Rows[1]["a"])
	assert.True(t, ds.Rows[1]["b"].IsNull())
}

func TestLoadCSVEmptyInput(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader(""), "empty")
	require.NoError(t, err)
	assert.Empty(t, ds.Rows)
	assert.Empty(t, ds.Columns)
}
