package provider

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pivolan/telemetry_insights/domain/models"
)

// retentionBenchmark is the fixed industry curve shown next to computed
// retention, truncated to the number of day labels.
var retentionBenchmark = []float64{100, 40, 28, 20, 12, 7}

// retentionDayTargets are the day offsets used when retention has to be
// derived from first-seen/last-seen dates.
var retentionDayTargets = []int{0, 1, 3, 7, 14, 30}

// RealDataProvider derives every analytics view from an immutable row
// snapshot. Column stats and roles are computed once at construction; all
// query methods are pure reads after that, so concurrent callers are safe.
type RealDataProvider struct {
	rows    []models.Row
	columns []string
	stats   map[string]models.ColumnStats
	roles   map[string]models.ColumnRole
	now     time.Time
}

// NewRealDataProvider analyzes the dataset once and resolves a role for
// every column. Analyst mappings, when present, win over name heuristics.
func NewRealDataProvider(rows []models.Row, mappings []models.ColumnMapping) *RealDataProvider {
	p := &RealDataProvider{
		rows:  rows,
		stats: map[string]models.ColumnStats{},
		roles: map[string]models.ColumnRole{},
		now:   time.Now(),
	}

	mapped := map[string]models.ColumnMapping{}
	for _, m := range mappings {
		if _, ok := mapped[m.OriginalName]; !ok {
			mapped[m.OriginalName] = m
			p.columns = append(p.columns, m.OriginalName)
		}
	}
	if len(rows) > 0 {
		extra := []string{}
		for name := range rows[0] {
			if _, ok := mapped[name]; !ok {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		p.columns = append(p.columns, extra...)
	}

	for _, name := range p.columns {
		stats := AnalyzeColumn(rows, name)
		p.stats[name] = stats
		if m, ok := mapped[name]; ok {
			p.roles[name] = TranslateMapping(m, stats)
		} else {
			p.roles[name] = DetectColumnRole(name, stats)
		}
	}
	return p
}

// --- role lookups -----------------------------------------------------

func (p *RealDataProvider) columnsByRole(role models.ColumnRole) []string {
	var out []string
	for _, name := range p.columns {
		if p.roles[name] == role {
			out = append(out, name)
		}
	}
	return out
}

func (p *RealDataProvider) firstByRole(roles ...models.ColumnRole) (string, bool) {
	for _, role := range roles {
		if cols := p.columnsByRole(role); len(cols) > 0 {
			return cols[0], true
		}
	}
	return "", false
}

func (p *RealDataProvider) temporalColumn() (string, bool) {
	return p.firstByRole(models.RoleTimestamp, models.RoleInstallDate)
}

func (p *RealDataProvider) revenueColumn() (string, bool) {
	return p.firstByRole(models.RoleRevenue, models.RoleLTV)
}

// userKey identifies a user for aggregation; without a user_id column each
// row counts as its own user.
func (p *RealDataProvider) userKey(row models.Row, idx int, userCol string) string {
	if userCol != "" {
		if v, ok := row[userCol]; ok && !v.IsNull() {
			return v.Key()
		}
	}
	return "row:" + strconv.Itoa(idx)
}

func (p *RealDataProvider) uniqueUserCount() int {
	userCol, ok := p.firstByRole(models.RoleUserID)
	if !ok {
		return len(p.rows)
	}
	seen := map[string]bool{}
	for i, row := range p.rows {
		seen[p.userKey(row, i, userCol)] = true
	}
	return len(seen)
}

func (p *RealDataProvider) totalRevenue(col string) float64 {
	total := 0.0
	for _, row := range p.rows {
		if f, ok := row[col].AsNumber(); ok {
			total += f
		}
	}
	return total
}

// --- retention ---------------------------------------------------------

func retentionDayLabel(name string) string {
	digits := regexp.MustCompile(`\d+`).FindString(name)
	if digits != "" {
		return "Day " + digits
	}
	return name
}

func (p *RealDataProvider) RetentionData() models.RetentionData {
	if cols := p.columnsByRole(models.RoleRetention); len(cols) > 0 {
		sorted := append([]string{}, cols...)
		sort.Strings(sorted)
		rd := models.RetentionData{}
		for _, name := range sorted {
			rd.Days = append(rd.Days, retentionDayLabel(name))
			rd.Values = append(rd.Values, math.Round(p.stats[name].Avg*100))
		}
		rd.Benchmark = truncateBenchmark(len(rd.Days))
		return rd
	}

	userCol, hasUser := p.firstByRole(models.RoleUserID)
	tempCol, hasTime := p.temporalColumn()
	if hasUser && hasTime {
		type span struct{ first, last time.Time }
		spans := map[string]*span{}
		for i, row := range p.rows {
			t, ok := row[tempCol].AsTime()
			if !ok {
				continue
			}
			key := p.userKey(row, i, userCol)
			s, seen := spans[key]
			if !seen {
				spans[key] = &span{first: t, last: t}
				continue
			}
			if t.Before(s.first) {
				s.first = t
			}
			if t.After(s.last) {
				s.last = t
			}
		}
		if len(spans) > 0 {
			rd := models.RetentionData{}
			for _, target := range retentionDayTargets {
				retained := 0
				for _, s := range spans {
					if int(s.last.Sub(s.first).Hours()/24) >= target {
						retained++
					}
				}
				rd.Days = append(rd.Days, fmt.Sprintf("Day %d", target))
				rd.Values = append(rd.Values, float64(retained)/float64(len(spans))*100)
			}
			rd.Benchmark = truncateBenchmark(len(rd.Days))
			return rd
		}
	}

	return models.RetentionData{
		Days:      []string{"Day 0", "Day 1", "Day 7", "Day 30"},
		Values:    []float64{100, 0, 0, 0},
		Benchmark: truncateBenchmark(4),
	}
}

func truncateBenchmark(n int) []float64 {
	if n > len(retentionBenchmark) {
		n = len(retentionBenchmark)
	}
	return append([]float64{}, retentionBenchmark[:n]...)
}

func (p *RealDataProvider) RetentionDay(day int) float64 {
	rd := p.RetentionData()
	want := strconv.Itoa(day)
	for i, label := range rd.Days {
		l := strings.ToLower(strings.TrimSpace(label))
		l = strings.TrimPrefix(l, "day")
		l = strings.TrimPrefix(l, "d")
		if strings.TrimSpace(l) == want && i < len(rd.Values) {
			return rd.Values[i] / 100
		}
	}
	return 0
}

// --- funnel ------------------------------------------------------------

func (p *RealDataProvider) FunnelData() []models.FunnelStep {
	if levelCol, ok := p.firstByRole(models.RoleLevel); ok {
		if steps := p.levelFunnel(levelCol); len(steps) > 0 {
			return steps
		}
	}
	if eventCol, ok := p.firstByRole(models.RoleEvent); ok {
		if steps := p.frequencyFunnel(eventCol); len(steps) > 0 {
			return steps
		}
	}
	for _, name := range p.columns {
		s := p.stats[name]
		if s.Type == models.TypeCategorical && s.UniqueValues >= 3 && s.UniqueValues <= 10 {
			if steps := p.frequencyFunnel(name); len(steps) > 0 {
				return steps
			}
		}
	}
	return nil
}

// levelFunnel buckets users by the highest level they reached and reports
// users-at-or-above a spread of up to six representative levels.
func (p *RealDataProvider) levelFunnel(levelCol string) []models.FunnelStep {
	userCol, _ := p.firstByRole(models.RoleUserID)
	maxLevel := map[string]float64{}
	for i, row := range p.rows {
		f, ok := row[levelCol].AsNumber()
		if !ok {
			continue
		}
		key := p.userKey(row, i, userCol)
		if cur, seen := maxLevel[key]; !seen || f > cur {
			maxLevel[key] = f
		}
	}
	if len(maxLevel) == 0 {
		return nil
	}

	distinct := map[float64]bool{}
	for _, l := range maxLevel {
		distinct[l] = true
	}
	levels := make([]float64, 0, len(distinct))
	for l := range distinct {
		levels = append(levels, l)
	}
	sort.Float64s(levels)

	picked := pickSpread(levels, 6)
	total := float64(len(maxLevel))
	steps := make([]models.FunnelStep, 0, len(picked))
	prevPct := 0.0
	for i, level := range picked {
		atOrAbove := 0
		for _, l := range maxLevel {
			if l >= level {
				atOrAbove++
			}
		}
		pct := float64(atOrAbove) / total * 100
		drop := 0.0
		if i > 0 {
			drop = prevPct - pct
		}
		steps = append(steps, models.FunnelStep{
			Name:       "Level " + formatLevel(level),
			Value:      atOrAbove,
			Percentage: pct,
			DropOff:    drop,
		})
		prevPct = pct
	}
	return steps
}

// pickSpread keeps up to k values evenly spaced across a sorted slice,
// always including the first and last.
func pickSpread(sorted []float64, k int) []float64 {
	n := len(sorted)
	if n <= k {
		return sorted
	}
	out := make([]float64, 0, k)
	for i := 0; i < k; i++ {
		idx := i * (n - 1) / (k - 1)
		out = append(out, sorted[idx])
	}
	return out
}

func formatLevel(level float64) string {
	if level == math.Trunc(level) {
		return strconv.FormatInt(int64(level), 10)
	}
	return strconv.FormatFloat(level, 'f', -1, 64)
}

// frequencyFunnel reports the top six values of a column by row frequency,
// percentage relative to the most frequent, ties broken by first-seen order.
func (p *RealDataProvider) frequencyFunnel(col string) []models.FunnelStep {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0
	for _, row := range p.rows {
		v, ok := row[col]
		if !ok || v.IsNull() {
			continue
		}
		name := v.Display()
		if _, seen := counts[name]; !seen {
			firstSeen[name] = order
			order++
		}
		counts[name]++
	}
	if len(counts) == 0 {
		return nil
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return firstSeen[names[i]] < firstSeen[names[j]]
	})
	if len(names) > 6 {
		names = names[:6]
	}

	top := float64(counts[names[0]])
	steps := make([]models.FunnelStep, 0, len(names))
	prevPct := 0.0
	for i, name := range names {
		pct := float64(counts[name]) / top * 100
		drop := 0.0
		if i > 0 {
			drop = prevPct - pct
		}
		steps = append(steps, models.FunnelStep{
			Name:       name,
			Value:      counts[name],
			Percentage: pct,
			DropOff:    drop,
		})
		prevPct = pct
	}
	return steps
}

// FunnelSteps evaluates an explicit funnel definition: per step the number
// of unique users matching an exact event value or a field-equality
// condition, each percentage relative to the previous step.
func (p *RealDataProvider) FunnelSteps(defs []models.FunnelStepDef) []models.FunnelStep {
	eventCol, hasEvent := p.firstByRole(models.RoleEvent)
	userCol, hasUser := p.firstByRole(models.RoleUserID)
	if !hasEvent || !hasUser || len(defs) == 0 {
		return nil
	}

	steps := make([]models.FunnelStep, 0, len(defs))
	prevCount := 0
	prevPct := 0.0
	for i, def := range defs {
		users := map[string]bool{}
		for rowIdx, row := range p.rows {
			if !matchesStep(row, def, eventCol) {
				continue
			}
			users[p.userKey(row, rowIdx, userCol)] = true
		}
		count := len(users)
		pct := 100.0
		if i > 0 {
			if prevCount == 0 {
				pct = 0
			} else {
				pct = float64(count) / float64(prevCount) * 100
			}
		}
		drop := 0.0
		if i > 0 {
			drop = prevPct - pct
		}
		name := def.Name
		if name == "" {
			name = def.Event
		}
		steps = append(steps, models.FunnelStep{Name: name, Value: count, Percentage: pct, DropOff: drop})
		prevCount = count
		prevPct = pct
	}
	return steps
}

func matchesStep(row models.Row, def models.FunnelStepDef, eventCol string) bool {
	if def.Event != "" {
		v, ok := row[eventCol]
		return ok && v.Display() == def.Event
	}
	if len(def.Condition) == 0 {
		return false
	}
	for field, want := range def.Condition {
		v, ok := row[field]
		if !ok || v.Display() != want {
			return false
		}
	}
	return true
}

// --- KPIs --------------------------------------------------------------

const maxKPICards = 4

func (p *RealDataProvider) KPIData() []models.KPICard {
	if len(p.rows) == 0 {
		return nil
	}
	cards := []models.KPICard{}
	used := map[string]bool{}

	if _, ok := p.firstByRole(models.RoleUserID); ok {
		users := float64(p.uniqueUserCount())
		cards = append(cards, kpi("Total Users", users))
	} else {
		cards = append(cards, kpi("Total Rows", float64(len(p.rows))))
	}

	if revCol, ok := p.revenueColumn(); ok {
		used[revCol] = true
		total := p.totalRevenue(revCol)
		cards = append(cards, kpi("Total Revenue", total))
		if len(cards) < maxKPICards {
			cards = append(cards, kpi("Avg. Revenue", total/float64(len(p.rows))))
		}
	}
	if durCol, ok := p.firstByRole(models.RoleDuration); ok && len(cards) < maxKPICards {
		if s := p.stats[durCol]; s.Type == models.TypeNumeric {
			used[durCol] = true
			cards = append(cards, kpi("Avg. Duration", s.Avg))
		}
	}
	if levelCol, ok := p.firstByRole(models.RoleLevel); ok && len(cards) < maxKPICards {
		if s := p.stats[levelCol]; s.Type == models.TypeNumeric {
			used[levelCol] = true
			cards = append(cards, kpi("Max Level", s.Max))
		}
	}

	// Backfill with any numeric column not already represented.
	for _, name := range p.columns {
		if len(cards) >= maxKPICards {
			break
		}
		s := p.stats[name]
		role := p.roles[name]
		if used[name] || s.Type != models.TypeNumeric {
			continue
		}
		if role == models.RoleUserID || role == models.RoleTimestamp ||
			role == models.RoleInstallDate || role == models.RoleRetention {
			continue
		}
		used[name] = true
		cards = append(cards, kpi("Avg "+name, s.Avg))
	}

	if len(cards) > maxKPICards {
		cards = cards[:maxKPICards]
	}
	return cards
}

func kpi(title string, value float64) models.KPICard {
	return models.KPICard{Title: title, Value: value, Display: AbbreviateNumber(value)}
}

// AbbreviateNumber shortens large values for display (12.3K, 4.5M). The
// exact value stays on the card.
func AbbreviateNumber(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return strconv.FormatFloat(v/1e6, 'f', 1, 64) + "M"
	case abs >= 1e3:
		return strconv.FormatFloat(v/1e3, 'f', 1, 64) + "K"
	case v == math.Trunc(v):
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// --- revenue -----------------------------------------------------------

func (p *RealDataProvider) RevenueData() []models.RevenuePoint {
	revCol, ok := p.revenueColumn()
	if !ok {
		return nil
	}
	if _, hasTime := p.temporalColumn(); hasTime {
		series := p.RevenueTimeSeries(models.PeriodDay)
		if len(series) > 7 {
			series = series[len(series)-7:]
		}
		points := make([]models.RevenuePoint, 0, len(series))
		for _, pt := range series {
			points = append(points, models.RevenuePoint{Date: pt.Date, Value: pt.Value})
		}
		if len(points) > 0 {
			return points
		}
	}
	return []models.RevenuePoint{{Date: "Total", Value: p.totalRevenue(revCol)}}
}

func (p *RealDataProvider) RevenueTimeSeries(period models.Period) []models.TimePoint {
	revCol, hasRev := p.revenueColumn()
	tempCol, hasTime := p.temporalColumn()
	if !hasRev || !hasTime {
		return nil
	}

	buckets := map[string]float64{}
	for _, row := range p.rows {
		t, ok := row[tempCol].AsTime()
		if !ok {
			continue
		}
		f, ok := row[revCol].AsNumber()
		if !ok {
			continue
		}
		buckets[periodKey(t, period)] += f
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	points := make([]models.TimePoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, models.TimePoint{Date: k, Value: buckets[k]})
	}
	return points
}

// periodKey formats a bucket label: calendar day, ISO week start (Monday),
// or year-month. All three sort chronologically as strings.
func periodKey(t time.Time, period models.Period) string {
	switch period {
	case models.PeriodWeek:
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return t.AddDate(0, 0, -(weekday - 1)).Format("2006-01-02")
	case models.PeriodMonth:
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

func (p *RealDataProvider) HistoricalGrowthRate() float64 {
	const defaultRate = 0.02
	series := p.RevenueTimeSeries(models.PeriodDay)
	if len(series) > 7 {
		series = series[len(series)-7:]
	}
	if len(series) < 2 || series[0].Value == 0 {
		return defaultRate
	}
	first := series[0].Value
	last := series[len(series)-1].Value
	rate := (last - first) / first / float64(len(series))
	if rate > 0.5 {
		return 0.5
	}
	if rate < -0.5 {
		return -0.5
	}
	return rate
}

// --- audiences ---------------------------------------------------------

func (p *RealDataProvider) SegmentData() []models.SegmentSlice {
	col, ok := p.firstByRole(models.RoleSegment, models.RolePlatform, models.RoleGeo)
	if !ok {
		for _, name := range p.columns {
			s := p.stats[name]
			if s.Type == models.TypeCategorical && s.UniqueValues >= 2 && s.UniqueValues <= 8 {
				col = name
				ok = true
				break
			}
		}
	}
	if !ok {
		return nil
	}

	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0
	for _, row := range p.rows {
		v, has := row[col]
		if !has || v.IsNull() {
			continue
		}
		name := v.Display()
		if _, seen := counts[name]; !seen {
			firstSeen[name] = order
			order++
		}
		counts[name]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return firstSeen[names[i]] < firstSeen[names[j]]
	})
	if len(names) > 6 {
		names = names[:6]
	}
	total := float64(len(p.rows))
	slices := make([]models.SegmentSlice, 0, len(names))
	for _, name := range names {
		slices = append(slices, models.SegmentSlice{
			Name:       name,
			Count:      counts[name],
			Percentage: float64(counts[name]) / total * 100,
		})
	}
	return slices
}

// activeUsers counts unique users whose temporal value falls inside the
// window; an empty windowed set falls back to all-time unique users, which
// keeps datasets without recent activity from showing zero.
func (p *RealDataProvider) activeUsers(from, to time.Time) int {
	userCol, hasUser := p.firstByRole(models.RoleUserID)
	if !hasUser {
		return len(p.rows)
	}
	tempCol, hasTime := p.temporalColumn()
	all := map[string]bool{}
	windowed := map[string]bool{}
	for i, row := range p.rows {
		key := p.userKey(row, i, userCol)
		all[key] = true
		if !hasTime {
			continue
		}
		if t, ok := row[tempCol].AsTime(); ok && !t.Before(from) && !t.After(to) {
			windowed[key] = true
		}
	}
	if len(windowed) > 0 {
		return len(windowed)
	}
	return len(all)
}

func (p *RealDataProvider) DAU() int {
	dayStart := time.Date(p.now.Year(), p.now.Month(), p.now.Day(), 0, 0, 0, 0, p.now.Location())
	return p.activeUsers(dayStart, dayStart.AddDate(0, 0, 1))
}

func (p *RealDataProvider) MAU() int {
	return p.activeUsers(p.now.AddDate(0, 0, -30), p.now)
}

func (p *RealDataProvider) ARPU() float64 {
	revCol, ok := p.revenueColumn()
	if !ok {
		return 0
	}
	users := p.uniqueUserCount()
	if users == 0 {
		return 0
	}
	return p.totalRevenue(revCol) / float64(users)
}

func (p *RealDataProvider) PayerConversion() float64 {
	revCol, hasRev := p.firstByRole(models.RoleRevenue, models.RoleLTV, models.RolePurchase)
	userCol, hasUser := p.firstByRole(models.RoleUserID)
	if !hasRev || !hasUser {
		return 0
	}
	all := map[string]bool{}
	payers := map[string]bool{}
	for i, row := range p.rows {
		key := p.userKey(row, i, userCol)
		all[key] = true
		if f, ok := row[revCol].AsNumber(); ok && f > 0 {
			payers[key] = true
		}
	}
	if len(all) == 0 {
		return 0
	}
	return float64(len(payers)) / float64(len(all))
}

func (p *RealDataProvider) SpenderTiers() []models.SpenderTier {
	revCol, ok := p.revenueColumn()
	if !ok {
		return nil
	}
	userCol, _ := p.firstByRole(models.RoleUserID)

	perUser := map[string]float64{}
	for i, row := range p.rows {
		key := p.userKey(row, i, userCol)
		if _, seen := perUser[key]; !seen {
			perUser[key] = 0
		}
		if f, has := row[revCol].AsNumber(); has {
			perUser[key] += f
		}
	}

	tiers := []models.SpenderTier{
		{Name: "Whale"},
		{Name: "Dolphin"},
		{Name: "Minnow"},
		{Name: "Non-Payer"},
	}
	for _, total := range perUser {
		switch {
		case total >= 100:
			tiers[0].Users++
			tiers[0].Revenue += total
		case total >= 20:
			tiers[1].Users++
			tiers[1].Revenue += total
		case total > 0:
			tiers[2].Users++
			tiers[2].Revenue += total
		default:
			tiers[3].Users++
			tiers[3].Revenue += total
		}
	}
	totalUsers := float64(len(perUser))
	if totalUsers > 0 {
		for i := range tiers {
			tiers[i].Percentage = float64(tiers[i].Users) / totalUsers * 100
		}
	}
	return tiers
}

// channelKeywords mark source/utm-like columns for attribution grouping.
var channelKeywords = []string{"source", "channel", "utm", "campaign", "medium", "referrer", "acquisition"}

func (p *RealDataProvider) AttributionChannels() []models.ChannelStat {
	channelCol := ""
	for _, name := range p.columns {
		if containsAny(strings.ToLower(name), channelKeywords...) {
			channelCol = name
			break
		}
	}
	if channelCol == "" {
		return nil
	}

	userCol, _ := p.firstByRole(models.RoleUserID)
	revCol, hasRev := p.revenueColumn()
	users := map[string]map[string]bool{}
	revenue := map[string]float64{}
	for i, row := range p.rows {
		v, ok := row[channelCol]
		if !ok || v.IsNull() {
			continue
		}
		channel := v.Display()
		if users[channel] == nil {
			users[channel] = map[string]bool{}
		}
		users[channel][p.userKey(row, i, userCol)] = true
		if hasRev {
			if f, has := row[revCol].AsNumber(); has {
				revenue[channel] += f
			}
		}
	}

	totalUsers := float64(p.uniqueUserCount())
	stats := make([]models.ChannelStat, 0, len(users))
	for channel, set := range users {
		cs := models.ChannelStat{Channel: channel, Users: len(set), Revenue: revenue[channel]}
		if totalUsers > 0 {
			cs.Percentage = float64(len(set)) / totalUsers * 100
		}
		stats = append(stats, cs)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Users != stats[j].Users {
			return stats[i].Users > stats[j].Users
		}
		return stats[i].Channel < stats[j].Channel
	})
	if len(stats) > 10 {
		stats = stats[:10]
	}
	return stats
}

// --- sessions ----------------------------------------------------------

func (p *RealDataProvider) SessionMetrics() models.SessionMetrics {
	m := models.SessionMetrics{}
	if durCol, ok := p.firstByRole(models.RoleDuration); ok {
		if s := p.stats[durCol]; s.Type == models.TypeNumeric {
			m.AvgSessionLength = s.Avg
		}
	}
	sessCol, hasSess := p.firstByRole(models.RoleSession)
	userCol, hasUser := p.firstByRole(models.RoleUserID)
	if hasSess && hasUser {
		sessions := map[string]bool{}
		userSet := map[string]bool{}
		for i, row := range p.rows {
			if v, ok := row[sessCol]; ok && !v.IsNull() {
				sessions[v.Key()] = true
			}
			userSet[p.userKey(row, i, userCol)] = true
		}
		if len(userSet) > 0 {
			m.SessionsPerUser = float64(len(sessions)) / float64(len(userSet))
		}
	}
	return m
}

// --- introspection for the bot/report layer ----------------------------

// ColumnStats exposes the one-time analysis for formatting.
func (p *RealDataProvider) ColumnStats() []models.ColumnStats {
	out := make([]models.ColumnStats, 0, len(p.columns))
	for _, name := range p.columns {
		out = append(out, p.stats[name])
	}
	return out
}

// ColumnRoles exposes the resolved role per column, in column order.
func (p *RealDataProvider) ColumnRoles() map[string]models.ColumnRole {
	out := make(map[string]models.ColumnRole, len(p.roles))
	for name, role := range p.roles {
		out[name] = role
	}
	return out
}

// RowCount reports the snapshot size.
func (p *RealDataProvider) RowCount() int {
	return len(p.rows)
}
