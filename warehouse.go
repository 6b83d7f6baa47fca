package main

import (
	"bytes"
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/pivolan/go_utils"
	"github.com/pivolan/telemetry_insights/config"
	"github.com/pivolan/telemetry_insights/domain/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const exportBatchSize = 5000

func getMD5String(input string) string {
	hasher := md5.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

var specialSymbolsRe = regexp.MustCompile("[^a-zA-Z0-9]+")

func replaceSpecialSymbols(input string) string {
	processed := specialSymbolsRe.ReplaceAllString(input, "_")
	processed = strings.ReplaceAll(processed, "__", "_")
	return strings.Trim(processed, "_")
}

// clickhouseColumnType maps an inferred column type to a warehouse type.
// Every column is nullable because uploads routinely have gaps.
func clickhouseColumnType(t models.ColumnType) string {
	switch t {
	case models.TypeNumeric:
		return "Nullable(Float64)"
	case models.TypeDate:
		return "Nullable(DateTime64)"
	default:
		return "Nullable(String)"
	}
}

func isQuotedWarehouseType(t string) bool {
	return go_utils.InArray(t, []string{"Nullable(String)", "Nullable(DateTime64)", "String", "DateTime64", "Date"})
}

// exportTableName builds a readable unique table name from the first
// columns plus a hash of the dataset name.
func exportTableName(ds *Dataset) string {
	columns := ds.Columns
	if len(columns) > 3 {
		columns = columns[:3]
	}
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, replaceSpecialSymbols(c))
	}
	return strings.Join(parts, "_") + "_" + getMD5String(ds.Name)[:6]
}

func openWarehouse() (*gorm.DB, error) {
	cfg := config.GetConfig()
	if cfg.DbDsn == "" {
		return nil, fmt.Errorf("DB_DSN is not configured")
	}
	return gorm.Open(mysql.Open(cfg.DbDsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
}

// ExportToWarehouse creates a ClickHouse table shaped after the inferred
// column types and streams the dataset into it in CSV batches. Returns
// the created table name.
func ExportToWarehouse(ds *Dataset, stats map[string]models.ColumnStats) (string, error) {
	if len(ds.Rows) == 0 {
		return "", fmt.Errorf("nothing to export, dataset is empty")
	}

	db, err := openWarehouse()
	if err != nil {
		return "", err
	}

	tableName := exportTableName(ds)
	ddl, types := buildCreateTableSQL(ds, stats, tableName)

	if tx := db.Exec("DROP TABLE IF EXISTS " + tableName); tx.Error != nil {
		return "", tx.Error
	}
	if tx := db.Exec(ddl); tx.Error != nil {
		return "", fmt.Errorf("create table %s: %w", tableName, tx.Error)
	}

	if err := insertRows(db, ds, types, tableName); err != nil {
		return "", err
	}
	return tableName, nil
}

// buildCreateTableSQL emits the DDL and returns the per-column warehouse
// types in dataset column order. An id column is added when the upload
// does not carry one.
func buildCreateTableSQL(ds *Dataset, stats map[string]models.ColumnStats, tableName string) (string, []string) {
	idExists := go_utils.InArray("id", ds.Columns)

	fields := []string{}
	types := make([]string, len(ds.Columns))
	for i, column := range ds.Columns {
		t := clickhouseColumnType(stats[column].Type)
		types[i] = t
		fields = append(fields, fmt.Sprintf("%s %s", column, t))
	}

	sql := "CREATE TABLE " + tableName + " ("
	if !idExists {
		sql += "id UInt64,"
	}
	sql += strings.Join(fields, ",\n")
	sql += ") ENGINE = ReplacingMergeTree PRIMARY KEY (id) SETTINGS index_granularity = 8192"
	return sql, types
}

func insertRows(db *gorm.DB, ds *Dataset, types []string, tableName string) error {
	idExists := go_utils.InArray("id", ds.Columns)

	b := bytes.NewBufferString("")
	csvWriter := csv.NewWriter(b)
	count := 0
	for i, row := range ds.Rows {
		record := make([]string, 0, len(ds.Columns)+1)
		if !idExists {
			record = append(record, fmt.Sprintf("%d", i))
		}
		for _, column := range ds.Columns {
			record = append(record, warehouseCell(row[column]))
		}
		csvWriter.Write(record)
		count++

		if count%exportBatchSize == 0 {
			csvWriter.Flush()
			if err := flushBatch(db, tableName, b); err != nil {
				return err
			}
		}
	}
	csvWriter.Flush()
	if b.Len() > 0 {
		if err := flushBatch(db, tableName, b); err != nil {
			return err
		}
	}
	log.Printf("export done, table=%s rows=%d", tableName, count)
	return nil
}

func flushBatch(db *gorm.DB, tableName string, b *bytes.Buffer) error {
	sql := fmt.Sprintf("INSERT INTO %s FORMAT CSV\n%s", tableName, b.String())
	b.Reset()
	if tx := db.Exec(sql); tx.Error != nil {
		return fmt.Errorf("insert batch into %s: %w", tableName, tx.Error)
	}
	return nil
}

// warehouseCell renders a value for the CSV insert. Nulls become \N so
// ClickHouse keeps them null instead of zero.
func warehouseCell(v models.Value) string {
	if v.IsNull() {
		return `\N`
	}
	return v.Display()
}
