package domain

import (
	"sort"
	"time"
)

// ResourceOutcome is the result of one policy against one resource.
type ResourceOutcome struct {
	Resource string   `json:"resource"`
	Status   Status   `json:"status"`
	Messages []string `json:"messages,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// PolicyResult is the rolled-up result of one policy across all resources.
type PolicyResult struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Severity  Severity          `json:"severity"`
	Status    Status            `json:"status"`
	File      string            `json:"file,omitempty"`
	Resources []ResourceOutcome `json:"resources,omitempty"`
}

// Evaluation is a full run of every policy against every resource.
type Evaluation struct {
	EvaluatedAt time.Time      `json:"evaluated_at"`
	Policies    []PolicyResult `json:"policies"`
	Resources   int            `json:"resources"`
	Report      SeverityReport `json:"report"`
}

// RollupStatus folds per-resource outcomes into a single policy status:
// any error wins, then any failure, otherwise pass.
func RollupStatus(outcomes []ResourceOutcome) Status {
	status := StatusPass
	for _, o := range outcomes {
		switch o.Status {
		case StatusError:
			return StatusError
		case StatusFail:
			status = StatusFail
		}
	}
	return status
}

// ReportFromResults counts each policy once under its severity and status.
func ReportFromResults(results []PolicyResult) SeverityReport {
	var report SeverityReport
	for _, r := range results {
		counts := report.For(r.Severity)
		switch r.Status {
		case StatusPass:
			counts.Pass++
		case StatusFail:
			counts.Fail++
		case StatusError:
			counts.Error++
		}
		report = report.With(r.Severity, counts)
	}
	return report
}

// SortResults orders results by severity, then status (error, fail, pass),
// then ID.
func SortResults(results []PolicyResult) {
	statusRank := map[Status]int{StatusError: 0, StatusFail: 1, StatusPass: 2}
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Severity != b.Severity {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		if a.Status != b.Status {
			return statusRank[a.Status] < statusRank[b.Status]
		}
		return a.ID < b.ID
	})
}
