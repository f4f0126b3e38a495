package constants

// Defaults applied to profile fields when a value is missing or non-numeric.
const (
	DefaultDailyHours = 8.0
	DefaultLoad       = 90.0
)

// Metric identifies one of the three dashboard tables.
type Metric string

const (
	MetricStoryPoints   Metric = "sp"
	MetricDevelopHours  Metric = "dev"
	MetricMaintainHours Metric = "maintain"
)

// Metrics is the display order of the dashboard tables.
var Metrics = []Metric{MetricStoryPoints, MetricDevelopHours, MetricMaintainHours}

// Title returns the human table title for a metric.
func (m Metric) Title() string {
	switch m {
	case MetricStoryPoints:
		return "SP Load"
	case MetricDevelopHours:
		return "Dev h"
	case MetricMaintainHours:
		return "Maintain h"
	}
	return string(m)
}

// IsValidMetric returns true if m names one of the dashboard tables.
func IsValidMetric(m string) bool {
	for _, known := range Metrics {
		if string(known) == m {
			return true
		}
	}
	return false
}

// FilterAll is the wildcard value for team/sprint/weekday/week filters.
const FilterAll = "All"

// IPSubstring marks the interval's innovation/hardening sprint by name.
const IPSubstring = "IP"
