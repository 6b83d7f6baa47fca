package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/telemetry_insights/domain/models"
)

func TestClickhouseColumnType(t *testing.T) {
	assert.Equal(t, "Nullable(Float64)", clickhouseColumnType(models.TypeNumeric))
	assert.Equal(t, "Nullable(DateTime64)", clickhouseColumnType(models.TypeDate))
	assert.Equal(t, "Nullable(String)", clickhouseColumnType(models.TypeCategorical))
	assert.Equal(t, "Nullable(String)", clickhouseColumnType(models.TypeUnknown))
}

func TestReplaceSpecialSymbols(t *testing.T) {
	assert.Equal(t, "user_id", replaceSpecialSymbols("user id"))
	assert.Equal(t, "a_b_c", replaceSpecialSymbols("a.b.c"))
	assert.Equal(t, "name", replaceSpecialSymbols("__name__"))
}

func TestExportTableName(t *testing.T) {
	ds := &Dataset{
		Name:    "sales",
		Columns: []string{"user_id", "event", "revenue", "extra"},
	}
	name := exportTableName(ds)
	assert.True(t, strings.HasPrefix(name, "user_id_event_revenue_"))
	assert.Equal(t, getMD5String("sales")[:6], name[len(name)-6:])

	// Same dataset name gives the same table, re-export overwrites.
	assert.Equal(t, name, exportTableName(ds))
}

func TestBuildCreateTableSQL(t *testing.T) {
	ds := &Dataset{
		Name:    "events",
		Columns: []string{"user_id", "revenue"},
	}
	stats := map[string]models.ColumnStats{
		"user_id": {Name: "user_id", Type: models.TypeCategorical},
		"revenue": {Name: "revenue", Type: models.TypeNumeric},
	}

	ddl, types := buildCreateTableSQL(ds, stats, "events_abc123")
	assert.Contains(t, ddl, "CREATE TABLE events_abc123")
	assert.Contains(t, ddl, "id UInt64,")
	assert.Contains(t, ddl, "user_id Nullable(String)")
	assert.Contains(t, ddl, "revenue Nullable(Float64)")
	assert.Contains(t, ddl, "ENGINE = ReplacingMergeTree")
	assert.Equal(t, []string{"Nullable(String)", "Nullable(Float64)"}, types)
}

func TestBuildCreateTableSQLKeepsExistingID(t *testing.T) {
	ds := &Dataset{
		Name:    "events",
		Columns: []string{"id", "revenue"},
	}
	stats := map[string]models.ColumnStats{
		"id":      {Name: "id", Type: models.TypeNumeric},
		"revenue": {Name: "revenue", Type: models.TypeNumeric},
	}

	ddl, _ := buildCreateTableSQL(ds, stats, "t")
	assert.NotContains(t, ddl, "id UInt64,")
}

func TestWarehouseCell(t *testing.T) {
	assert.Equal(t, `\N`, warehouseCell(models.Null()))
	assert.Equal(t, `\N`, warehouseCell(models.Text("  ")))
	assert.Equal(t, "42", warehouseCell(models.Number(42)))
	assert.Equal(t, "9.99", warehouseCell(models.Number(9.99)))
	assert.Equal(t, "login", warehouseCell(models.Text("login")))
	assert.Equal(t, "true", warehouseCell(models.Boolean(true)))
}
