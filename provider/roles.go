package provider

import (
	"regexp"
	"strings"

	"github.com/pivolan/go_utils"
	"github.com/pivolan/telemetry_insights/domain/models"
)

// Role detection is an ordered cascade: the first matching rule wins, so the
// precedence is data, not code order. Matching is case-insensitive and
// substring-based over the column name.

type roleRule struct {
	role  models.ColumnRole
	match func(name string) bool
}

var retentionDayPattern = regexp.MustCompile(`^(d|day_?)\d+$`)

func containsAny(name string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

var roleRules = []roleRule{
	{models.RoleUserID, func(n string) bool {
		return (strings.Contains(n, "user") && strings.Contains(n, "id")) ||
			go_utils.InArray(n, []string{"uid", "player_id"})
	}},
	// install_date before plain timestamp: "install_date" matches both.
	{models.RoleInstallDate, func(n string) bool {
		return containsAny(n, "install", "creat") &&
			(containsAny(n, "date", "timestamp") || n == "time" || n == "day")
	}},
	{models.RoleInstallDate, func(n string) bool {
		return n == "install_date" || n == "installed_at" || n == "created_at"
	}},
	{models.RoleTimestamp, func(n string) bool {
		return containsAny(n, "date", "timestamp") || n == "time" || n == "day"
	}},
	{models.RoleRetention, func(n string) bool {
		return strings.Contains(n, "retention") || retentionDayPattern.MatchString(n)
	}},
	{models.RoleCohort, func(n string) bool { return strings.Contains(n, "cohort") }},
	{models.RoleEvent, func(n string) bool { return containsAny(n, "event", "action") }},
	{models.RoleLevel, func(n string) bool { return containsAny(n, "level", "stage") }},
	{models.RoleSession, func(n string) bool { return strings.Contains(n, "session") }},
	{models.RoleRevenue, func(n string) bool { return containsAny(n, "revenue", "price", "amount") }},
	{models.RolePurchase, func(n string) bool { return containsAny(n, "purchase", "transaction") }},
	{models.RoleLTV, func(n string) bool { return containsAny(n, "iap", "ltv") }},
	{models.RoleDuration, func(n string) bool { return containsAny(n, "duration", "time_spent", "playtime") }},
	{models.RoleCount, func(n string) bool { return containsAny(n, "count", "frequency") }},
	{models.RoleGeo, func(n string) bool { return containsAny(n, "country", "region") }},
	{models.RolePlatform, func(n string) bool { return containsAny(n, "platform", "device") }},
	{models.RoleSegment, func(n string) bool { return containsAny(n, "segment", "tier", "group") }},
}

// DetectColumnRole resolves the semantic role for a column name. Stats are
// the fallback: a date-shaped column with no name match is still temporal.
func DetectColumnRole(name string, stats models.ColumnStats) models.ColumnRole {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, rule := range roleRules {
		if rule.match(n) {
			return rule.role
		}
	}
	if stats.Type == models.TypeDate {
		return models.RoleTimestamp
	}
	return models.RoleUnknown
}

// TranslateMapping turns an analyst-provided coarse mapping into a concrete
// role, refining by the same keyword checks the cascade uses. A metric
// mapping with no keyword hit falls back to the full cascade; that can
// disagree with the pure heuristic path for the same name, which matches
// the upstream behavior.
func TranslateMapping(mapping models.ColumnMapping, stats models.ColumnStats) models.ColumnRole {
	n := strings.ToLower(strings.TrimSpace(mapping.OriginalName))
	switch mapping.Role {
	case models.MappedIdentifier:
		return models.RoleUserID
	case models.MappedTimestamp:
		if containsAny(n, "install", "creat") {
			return models.RoleInstallDate
		}
		return models.RoleTimestamp
	case models.MappedMetric:
		switch {
		case containsAny(n, "revenue", "price", "amount", "iap", "ltv"):
			return models.RoleRevenue
		case containsAny(n, "level", "stage"):
			return models.RoleLevel
		case containsAny(n, "duration", "time_spent", "playtime"):
			return models.RoleDuration
		case strings.Contains(n, "retention") || retentionDayPattern.MatchString(n):
			return models.RoleRetention
		}
		return DetectColumnRole(mapping.OriginalName, stats)
	case models.MappedDimension:
		switch {
		case containsAny(n, "country", "region", "geo"):
			return models.RoleGeo
		case containsAny(n, "platform", "device"):
			return models.RolePlatform
		case containsAny(n, "event", "action"):
			return models.RoleEvent
		}
		return models.RoleSegment
	case models.MappedNoise:
		return models.RoleUnknown
	}
	return DetectColumnRole(mapping.OriginalName, stats)
}
