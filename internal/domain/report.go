package domain

import (
	"unicode"
	"unicode/utf8"
)

// StatusCounts holds how many policies ended in each evaluation status.
type StatusCounts struct {
	Pass  int `json:"pass"  yaml:"pass"`
	Fail  int `json:"fail"  yaml:"fail"`
	Error int `json:"error" yaml:"error"`
}

// Get returns the count for a single status. Unknown statuses count as zero.
func (c StatusCounts) Get(st Status) int {
	switch st {
	case StatusPass:
		return c.Pass
	case StatusFail:
		return c.Fail
	case StatusError:
		return c.Error
	}
	return 0
}

// SeverityReport is the per-severity breakdown of policy statuses for an
// organization. It is produced upstream and never mutated here.
type SeverityReport struct {
	Critical StatusCounts `json:"critical" yaml:"critical"`
	High     StatusCounts `json:"high"     yaml:"high"`
	Medium   StatusCounts `json:"medium"   yaml:"medium"`
	Low      StatusCounts `json:"low"      yaml:"low"`
	Info     StatusCounts `json:"info"     yaml:"info"`
}

// For returns the counts recorded for sev. Unknown severities yield zero counts.
func (r SeverityReport) For(sev Severity) StatusCounts {
	switch sev {
	case SeverityCritical:
		return r.Critical
	case SeverityHigh:
		return r.High
	case SeverityMedium:
		return r.Medium
	case SeverityLow:
		return r.Low
	case SeverityInfo:
		return r.Info
	}
	return StatusCounts{}
}

// With returns a copy of r with the counts for sev replaced.
func (r SeverityReport) With(sev Severity, counts StatusCounts) SeverityReport {
	switch sev {
	case SeverityCritical:
		r.Critical = counts
	case SeverityHigh:
		r.High = counts
	case SeverityMedium:
		r.Medium = counts
	case SeverityLow:
		r.Low = counts
	case SeverityInfo:
		r.Info = counts
	}
	return r
}

// CountPoliciesBySeverityAndStatus sums the counts of the given statuses for
// one severity. A policy is recorded under exactly one status upstream, so the
// statuses are added rather than deduplicated.
func CountPoliciesBySeverityAndStatus(report SeverityReport, sev Severity, statuses []Status) int {
	counts := report.For(sev)
	total := 0
	for _, st := range statuses {
		total += counts.Get(st)
	}
	return total
}

// Capitalize upper-cases the first letter of s and leaves the rest unchanged.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
