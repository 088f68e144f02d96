// Package projector turns a per-severity policy report into the display model
// of the policies-by-severity chart.
package projector

import "github.com/complyview/complyview/internal/domain"

// Project counts evaluated policies (fail, error and pass) for every severity
// in fixed order and returns the total together with the chart entries.
func Project(report domain.SeverityReport) (int, []domain.SeverityDisplayEntry) {
	return ProjectStatuses(report, nil)
}

// ProjectStatuses is Project restricted to a subset of statuses. A nil or
// empty subset counts every status.
func ProjectStatuses(report domain.SeverityReport, statuses []domain.Status) (int, []domain.SeverityDisplayEntry) {
	if len(statuses) == 0 {
		statuses = domain.Statuses()
	}

	severities := domain.Severities()
	entries := make([]domain.SeverityDisplayEntry, 0, len(severities))
	total := 0
	for _, sev := range severities {
		value := domain.CountPoliciesBySeverityAndStatus(report, sev, statuses)
		entries = append(entries, domain.SeverityDisplayEntry{
			Severity: sev,
			Label:    domain.Capitalize(string(sev)),
			Value:    value,
			Color:    domain.SeverityColor(sev),
		})
		total += value
	}
	return total, entries
}

// Chart wraps Project in a titled chart model.
func Chart(report domain.SeverityReport) domain.SeverityChart {
	return ChartStatuses(report, nil)
}

// ChartStatuses wraps ProjectStatuses in a titled chart model.
func ChartStatuses(report domain.SeverityReport, statuses []domain.Status) domain.SeverityChart {
	total, entries := ProjectStatuses(report, statuses)
	return domain.SeverityChart{
		Title:        domain.ChartTitle,
		Total:        total,
		SummaryColor: domain.ChartSummaryColor,
		Entries:      entries,
	}
}
