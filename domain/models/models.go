package models

import (
	"strconv"
	"strings"
	"time"
)

// ValueKind tags the scalar variants a cell can hold.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindText
	KindBool
)

// Value is one cell of an uploaded dataset. Any column can hold any scalar,
// so coercions are explicit instead of duck-typed.
type Value struct {
	Kind ValueKind
	Num  float64
	Text string
	Bool bool
}

func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }
func Text(s string) Value    { return Value{Kind: KindText, Text: s} }
func Boolean(b bool) Value   { return Value{Kind: KindBool, Bool: b} }
func Null() Value            { return Value{} }

// IsNull reports a missing cell. Empty text counts as missing.
func (v Value) IsNull() bool {
	return v.Kind == KindNull || (v.Kind == KindText && strings.TrimSpace(v.Text) == "")
}

// AsNumber coerces the value to a float64: numbers directly, text only when
// it parses as a number. Bools and nulls do not coerce.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02.01.2006",
}

// AsTime parses text values against the known layouts.
func (v Value) AsTime() (time.Time, bool) {
	if v.Kind != KindText {
		return time.Time{}, false
	}
	s := strings.TrimSpace(v.Text)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Key renders the raw value for uniqueness and grouping. No coercion: text
// "7" and number 7 are distinct keys on purpose.
func (v Value) Key() string {
	switch v.Kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindText:
		return "t:" + v.Text
	case KindBool:
		return "b:" + strconv.FormatBool(v.Bool)
	}
	return ""
}

// Display renders the value for labels and equality conditions.
func (v Value) Display() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Text
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}

// Row is one uploaded record, column name to cell. Rows are immutable once
// handed to a provider.
type Row map[string]Value

// ColumnType is the shape of a column's values.
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeDate        ColumnType = "date"
	TypeUnknown     ColumnType = "unknown"
)

// ColumnStats is the one-time summary computed per column at construction.
// Min/Max/Avg are meaningful only when Type is numeric.
type ColumnStats struct {
	Name         string
	Type         ColumnType
	UniqueValues int
	Samples      []string
	Min          float64
	Max          float64
	Avg          float64
}

// ColumnRole is the inferred semantic meaning of a column.
type ColumnRole string

const (
	RoleUserID      ColumnRole = "user_id"
	RoleTimestamp   ColumnRole = "timestamp"
	RoleInstallDate ColumnRole = "install_date"
	RoleRetention   ColumnRole = "retention"
	RoleCohort      ColumnRole = "cohort"
	RoleEvent       ColumnRole = "event"
	RoleLevel       ColumnRole = "level"
	RoleSession     ColumnRole = "session"
	RoleRevenue     ColumnRole = "revenue"
	RolePurchase    ColumnRole = "purchase"
	RoleLTV         ColumnRole = "ltv"
	RoleDuration    ColumnRole = "duration"
	RoleCount       ColumnRole = "count"
	RoleGeo         ColumnRole = "geo"
	RolePlatform    ColumnRole = "platform"
	RoleSegment     ColumnRole = "segment"
	RoleUnknown     ColumnRole = "unknown"
)

// MappedRole is the coarse role vocabulary an analyst can assign upstream.
type MappedRole string

const (
	MappedIdentifier MappedRole = "identifier"
	MappedTimestamp  MappedRole = "timestamp"
	MappedMetric     MappedRole = "metric"
	MappedDimension  MappedRole = "dimension"
	MappedNoise      MappedRole = "noise"
	MappedUnknown    MappedRole = "unknown"
)

// ColumnMapping is a prior analyst-provided mapping for one column. When
// present it overrides the name heuristics.
type ColumnMapping struct {
	OriginalName string
	Role         MappedRole
	DataType     string // string|number|boolean|date
}

// RetentionData is the retention curve plus the fixed industry benchmark,
// both aligned with Days.
type RetentionData struct {
	Days      []string
	Values    []float64
	Benchmark []float64
}

// FunnelStep is one named stage: absolute count, percentage of the baseline,
// and drop-off from the previous stage.
type FunnelStep struct {
	Name       string
	Value      int
	Percentage float64
	DropOff    float64
}

// FunnelStepDef defines one stage for explicit funnels: match by exact event
// value, or by field-equality conditions compared against Display forms.
type FunnelStepDef struct {
	Name      string
	Event     string
	Condition map[string]string
}

// KPICard keeps the exact value and a pre-abbreviated display string.
type KPICard struct {
	Title   string
	Value   float64
	Display string
}

type RevenuePoint struct {
	Date  string
	Value float64
}

type TimePoint struct {
	Date  string
	Value float64
}

type SegmentSlice struct {
	Name       string
	Count      int
	Percentage float64
}

// SpenderTier buckets users by cumulative revenue.
type SpenderTier struct {
	Name       string
	Users      int
	Revenue    float64
	Percentage float64
}

type ChannelStat struct {
	Channel    string
	Users      int
	Revenue    float64
	Percentage float64
}

type SessionMetrics struct {
	AvgSessionLength float64
	SessionsPerUser  float64
}

// Period selects the bucket size for revenue time series.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Genre selects a demo dataset for the no-data state.
type Genre string

const (
	GenreCasual   Genre = "casual"
	GenreMidcore  Genre = "midcore"
	GenreHardcore Genre = "hardcore"
)
